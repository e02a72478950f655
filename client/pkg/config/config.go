// Package config provides configuration management for the marketplace client.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/nftmarket/client/core/pinning"
	"github.com/weisyn/nftmarket/client/core/registry"
	logconfig "github.com/weisyn/nftmarket/internal/config/log"
)

// 环境变量名
const (
	EnvRPCURL     = "NFTMARKET_RPC_URL"
	EnvWSURL      = "NFTMARKET_WS_URL"
	EnvContract   = "NFTMARKET_CONTRACT"
	EnvKeystore   = "NFTMARKET_KEYSTORE"
	EnvAccount    = "NFTMARKET_ACCOUNT"
	EnvMnemonic   = "NFTMARKET_MNEMONIC"
	EnvPassword   = "NFTMARKET_PASSWORD"
	EnvPinataJWT  = "PINATA_JWT"
	EnvListenAddr = "NFTMARKET_LISTEN"
)

// ErrInvalidConfig 配置无效
var ErrInvalidConfig = errors.New("invalid config")

// Config 客户端配置
type Config struct {
	// 链配置
	RPCURL          string `json:"rpc_url"`          // JSON-RPC 端点
	WSURL           string `json:"ws_url,omitempty"` // 事件订阅端点（watch 使用）
	ContractAddress string `json:"contract_address"` // 注册合约地址

	// 内容存储配置
	PinataEndpoint string `json:"pinata_endpoint"`
	GatewayURL     string `json:"gateway_url"`
	CIDVersion     int    `json:"cid_version"`
	UploadTimeout  int    `json:"upload_timeout_seconds"`

	// 钱包配置
	KeystoreDir    string `json:"keystore_dir"`
	Account        string `json:"account,omitempty"` // 默认账户，空则使用第一个
	DerivationPath string `json:"derivation_path,omitempty"`

	// 本地视图
	ListenAddr string `json:"listen_addr"`

	Log logconfig.LogOptions `json:"log"`

	// 以下只从环境变量读取，不写入文件
	PinataJWT string `json:"-"`
	Mnemonic  string `json:"-"`
	Password  string `json:"-"`

	path string
}

// DefaultDir 返回默认数据目录 ~/.nftmarket
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".nftmarket")
}

// DefaultPath 返回默认配置文件路径
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.json")
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	dataDir := DefaultDir()

	return &Config{
		RPCURL:          "http://localhost:8545",
		ContractAddress: registry.DefaultAddress,
		PinataEndpoint:  pinning.DefaultEndpoint,
		GatewayURL:      pinning.DefaultGateway,
		CIDVersion:      0,
		UploadTimeout:   120,
		KeystoreDir:     filepath.Join(dataDir, "keystore"),
		ListenAddr:      "127.0.0.1:8088",
		Log: logconfig.LogOptions{
			Level:    "info",
			FilePath: filepath.Join(dataDir, "logs", "nftmarket.log"),
			Compress: true,
		},
	}
}

// Load 从默认路径加载配置
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom 加载配置文件并应用环境变量覆盖
//
// 文件不存在时写入默认配置。
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshaling config: %w", err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv 应用环境变量覆盖
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.RPCURL, EnvRPCURL)
	set(&c.WSURL, EnvWSURL)
	set(&c.ContractAddress, EnvContract)
	set(&c.KeystoreDir, EnvKeystore)
	set(&c.Account, EnvAccount)
	set(&c.ListenAddr, EnvListenAddr)
	set(&c.PinataJWT, EnvPinataJWT)
	set(&c.Mnemonic, EnvMnemonic)

	// 密码可能包含首尾空格，不做裁剪
	if v := getenv(EnvPassword); v != "" {
		c.Password = v
	}
}

// Validate 检查地址与端点格式
func (c *Config) Validate() error {
	if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("%w: contract_address %q is not a hex address", ErrInvalidConfig, c.ContractAddress)
	}
	if err := checkURL("rpc_url", c.RPCURL, "http", "https", "ws", "wss"); err != nil {
		return err
	}
	if c.WSURL != "" {
		if err := checkURL("ws_url", c.WSURL, "ws", "wss"); err != nil {
			return err
		}
	}
	if err := checkURL("pinata_endpoint", c.PinataEndpoint, "http", "https"); err != nil {
		return err
	}
	if err := checkURL("gateway_url", c.GatewayURL, "http", "https"); err != nil {
		return err
	}
	if c.CIDVersion != 0 && c.CIDVersion != 1 {
		return fmt.Errorf("%w: cid_version must be 0 or 1", ErrInvalidConfig)
	}
	return nil
}

func checkURL(field, raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: %s %q is not a valid url", ErrInvalidConfig, field, raw)
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s scheme %q not allowed", ErrInvalidConfig, field, u.Scheme)
}

// Path 返回配置文件路径
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// Save 保存配置（不含密钥类字段）
func (c *Config) Save() error {
	path := c.Path()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Reset 用默认配置覆盖 path，profile 非空时叠加其中的字段
func Reset(path string, profile []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, cfg); err != nil {
			return nil, fmt.Errorf("unmarshaling profile: %w", err)
		}
	}
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}
