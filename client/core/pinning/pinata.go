// Package pinning uploads file buffers to a content-addressed pinning service.
package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ipfs/go-cid"

	"github.com/weisyn/nftmarket/pkg/utils"
)

// ErrUploadFailed 上传失败（网络、服务端错误或响应无效）
var ErrUploadFailed = errors.New("upload failed")

const (
	// DefaultEndpoint Pinata API 地址
	DefaultEndpoint = "https://api.pinata.cloud"

	// DefaultGateway Pinata 公共网关
	DefaultGateway = "https://gateway.pinata.cloud/ipfs"

	pinFilePath = "/pinning/pinFileToIPFS"
	refScheme   = "ipfs://"
)

// Uploader 内容上传接口
type Uploader interface {
	// Upload 上传字节内容，返回内容引用 ipfs://<cid>
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// Config Pinata 客户端配置
type Config struct {
	Endpoint   string
	JWT        string
	CIDVersion int
	Timeout    time.Duration
}

// PinataClient Pinata pinFileToIPFS 客户端
type PinataClient struct {
	http       *resty.Client
	cidVersion int
}

var _ Uploader = (*PinataClient)(nil)

// pinResponse pinFileToIPFS 的响应体
type pinResponse struct {
	IpfsHash    string `json:"IpfsHash"`
	PinSize     int64  `json:"PinSize"`
	Timestamp   string `json:"Timestamp"`
	IsDuplicate bool   `json:"isDuplicate"`
}

// NewPinataClient 创建 Pinata 客户端
func NewPinataClient(cfg Config) *PinataClient {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	c := resty.New().
		SetBaseURL(endpoint).
		SetHeader("Accept", "application/json")
	if cfg.JWT != "" {
		c.SetAuthToken(cfg.JWT)
	}
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}

	return &PinataClient{http: c, cidVersion: cfg.CIDVersion}
}

// Upload 以 multipart 表单上传文件
//
// 不做重试；空内容由调用方负责拦截。
func (p *PinataClient) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" {
		name = "upload"
	}

	contentType := utils.DetectMimeType(data, name)
	options, err := json.Marshal(map[string]int{"cidVersion": p.cidVersion})
	if err != nil {
		return "", fmt.Errorf("%w: encode options: %w", ErrUploadFailed, err)
	}
	metadata, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"keyvalues": map[string]string{"contentType": contentType},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode metadata: %w", ErrUploadFailed, err)
	}

	resp, err := p.http.R().
		SetContext(ctx).
		SetMultipartField("file", name, contentType, bytes.NewReader(data)).
		SetMultipartFormData(map[string]string{
			"pinataOptions":  string(options),
			"pinataMetadata": string(metadata),
		}).
		SetResult(&pinResponse{}).
		Post(pinFilePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, resp.StatusCode(), truncate(resp.String(), 200))
	}

	out, ok := resp.Result().(*pinResponse)
	if !ok || out.IpfsHash == "" {
		return "", fmt.Errorf("%w: response missing IpfsHash", ErrUploadFailed)
	}
	if _, err := cid.Decode(out.IpfsHash); err != nil {
		return "", fmt.Errorf("%w: invalid cid %q: %v", ErrUploadFailed, out.IpfsHash, err)
	}

	return refScheme + out.IpfsHash, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
