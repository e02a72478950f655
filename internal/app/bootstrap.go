package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/fx"

	"github.com/weisyn/nftmarket/client/core/market"
	"github.com/weisyn/nftmarket/client/core/notify"
	"github.com/weisyn/nftmarket/client/core/pinning"
	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/client/pkg/config"
	"github.com/weisyn/nftmarket/internal/api"
	httpapi "github.com/weisyn/nftmarket/internal/api/http"
	"github.com/weisyn/nftmarket/internal/core/infrastructure/event"
	corelog "github.com/weisyn/nftmarket/internal/core/infrastructure/log"
	eventiface "github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
)

// Framework layers
const (
	// 基础设施层
	LayerInfrastructure = "infrastructure"
	// 通信与数据层
	LayerCommunication = "communication"
	// 业务逻辑层
	LayerBusiness = "business"
	// 应用层
	LayerApplication = "application"
)

// startTimeout 启动超时
const startTimeout = 30 * time.Second

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts   *options
	fxApp  *fx.App
	server *httpapi.Server
	ctrl   *market.Controller
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// SetupInfrastructureLayer 配置、日志与事件总线
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Supply(b.opts.config, &b.opts.config.Log),
		corelog.Module(),
		event.Module(),
	}
}

// SetupCommunicationLayer 节点连接、注册合约与上传服务
func (b *Bootstrap) SetupCommunicationLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(
			provideChain,
			func(eth *ethclient.Client, c *config.Config, l log.Logger) (*registry.Client, error) {
				return NewRegistryClient(eth, c, l)
			},
			NewUploader,
			NewGateway,
			func(bus eventiface.EventBus) (*notify.Hub, error) {
				return notify.NewHub(bus)
			},
		),
	}
}

// SetupBusinessLayer 钱包连接器、控制器与事件订阅
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	opts := []fx.Option{
		fx.Provide(
			func() *market.Metrics {
				return market.NewMetrics(b.opts.registry)
			},
			func(c *config.Config, eth *ethclient.Client) market.Connector {
				return NewConnector(c, eth, b.opts.approver)
			},
			func(reg *registry.Client, up pinning.Uploader, gw pinning.Gateway, conn market.Connector,
				hub *notify.Hub, m *market.Metrics, l log.Logger) *market.Controller {
				return NewController(ControllerParams{
					Registry:  reg,
					Uploader:  up,
					Gateway:   gw,
					Connector: conn,
					Hub:       hub,
					Metrics:   m,
					Logger:    l,
				})
			},
		),
	}
	if b.opts.enableWatch && b.opts.config.WSURL != "" {
		opts = append(opts, fx.Invoke(registerWatcher))
	}
	return opts
}

// SetupApplicationLayer 本地 HTTP 视图
func (b *Bootstrap) SetupApplicationLayer() []fx.Option {
	return []fx.Option{
		fx.Supply(httpapi.Options{
			ListenAddr: b.opts.listenAddr,
			Registry:   b.opts.registry,
		}),
		api.Module(),
		fx.Populate(&b.server, &b.ctrl),
	}
}

// CreateFxApp 按层组装模块
func (b *Bootstrap) CreateFxApp() error {
	var modules []fx.Option
	modules = append(modules, b.SetupInfrastructureLayer()...)
	modules = append(modules, b.SetupCommunicationLayer()...)
	modules = append(modules, b.SetupBusinessLayer()...)
	modules = append(modules, b.SetupApplicationLayer()...)

	b.fxApp = fx.New(
		fx.Options(modules...),
		fx.NopLogger,
	)
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("assemble app: %w", err)
	}
	return nil
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("start app: %w", err)
	}
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("stop app: %w", err)
	}
	return nil
}

// BootstrapApp 执行完整的引导过程并返回已启动的应用
func BootstrapApp(options ...Option) (App, error) {
	opts := newOptions(options...)
	if err := opts.config.Validate(); err != nil {
		return nil, err
	}

	bootstrap := NewBootstrap(opts)
	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := bootstrap.StartApp(ctx); err != nil {
		return nil, err
	}

	return &internalApp{bootstrap: bootstrap}, nil
}

// ========== 生命周期组件 ==========

// provideChain 连接节点，停止时关闭连接
func provideChain(lc fx.Lifecycle, c *config.Config) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	eth, err := DialChain(ctx, c.RPCURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			eth.Close()
			return nil
		},
	})
	return eth, nil
}

// registerWatcher 启动后在后台订阅合约事件
func registerWatcher(lc fx.Lifecycle, c *config.Config, ctrl *market.Controller, l log.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	wl := corelog.WithModule(l, "watcher")

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				watchLoop(ctx, c, ctrl, wl)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
