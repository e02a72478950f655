package pinning

import (
	"strings"

	"github.com/ipfs/go-cid"
)

// Gateway 将内容引用解析为可通过 HTTP 访问的地址
type Gateway struct {
	base string
}

// NewGateway 创建网关解析器，base 为空时使用 DefaultGateway
func NewGateway(base string) Gateway {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = DefaultGateway
	}
	return Gateway{base: base}
}

// Resolve 解析内容引用
//
//	ipfs://abc123 → https://gateway.pinata.cloud/ipfs/abc123
//
// 裸 CID 拼接到网关地址；其他引用（http(s)、ar:// 等）原样返回。
func (g Gateway) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, refScheme):
		return g.base + "/" + strings.TrimPrefix(ref, refScheme)
	case isCID(ref):
		return g.base + "/" + ref
	default:
		return ref
	}
}

func isCID(ref string) bool {
	_, err := cid.Decode(ref)
	return err == nil
}

// Base 返回网关基础地址
func (g Gateway) Base() string {
	return g.base
}
