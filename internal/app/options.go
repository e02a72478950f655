package app

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/nftmarket/client/core/wallet"
	"github.com/weisyn/nftmarket/client/pkg/config"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
type options struct {
	// 用户配置
	config *config.Config

	// HTTP 监听地址，覆盖配置文件
	listenAddr string

	// 指标注册表，nil 时创建新的注册表
	registry *prometheus.Registry

	// 签名确认，默认自动签名
	approver wallet.Approver

	// 事件订阅开关（需要 ws_url）
	enableWatch bool
}

// WithConfig 设置用户配置
func WithConfig(c *config.Config) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithListenAddr 设置 HTTP 监听地址
func WithListenAddr(addr string) Option {
	return func(o *options) {
		o.listenAddr = addr
	}
}

// WithRegistry 使用指定的指标注册表
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithApprover 设置签名确认方式
func WithApprover(a wallet.Approver) Option {
	return func(o *options) {
		o.approver = a
	}
}

// WithWatch 启用合约事件订阅
func WithWatch(enable bool) Option {
	return func(o *options) {
		o.enableWatch = enable
	}
}

// newOptions 创建应用选项
func newOptions(opts ...Option) *options {
	o := &options{
		approver: wallet.AutoApprove,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.config == nil {
		o.config = config.DefaultConfig()
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}
	if o.listenAddr == "" {
		o.listenAddr = o.config.ListenAddr
	}
	return o
}
