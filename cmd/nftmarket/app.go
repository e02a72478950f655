package main

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/weisyn/nftmarket/client/core/market"
	"github.com/weisyn/nftmarket/client/core/notify"
	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/client/core/wallet"
	"github.com/weisyn/nftmarket/client/pkg/config"
	"github.com/weisyn/nftmarket/client/pkg/ux/ui"
	"github.com/weisyn/nftmarket/internal/app"
	coreevent "github.com/weisyn/nftmarket/internal/core/infrastructure/event"
)

// marketApp 单次命令使用的组件集合
type marketApp struct {
	eth      *ethclient.Client
	registry *registry.Client
	hub      *notify.Hub
	ctrl     *market.Controller
}

// newMarketApp 连接节点并组装控制器
func newMarketApp(ctx context.Context, c *config.Config, approver wallet.Approver) (*marketApp, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	eth, err := app.DialChain(ctx, c.RPCURL)
	if err != nil {
		return nil, err
	}
	reg, err := app.NewRegistryClient(eth, c, logger)
	if err != nil {
		eth.Close()
		return nil, err
	}
	hub, err := notify.NewHub(coreevent.New(logger))
	if err != nil {
		eth.Close()
		return nil, err
	}

	return &marketApp{
		eth:      eth,
		registry: reg,
		hub:      hub,
		ctrl: app.NewController(app.ControllerParams{
			Registry:  reg,
			Uploader:  app.NewUploader(c),
			Gateway:   app.NewGateway(c),
			Connector: app.NewConnector(c, eth, approver),
			Hub:       hub,
			Metrics:   market.NewMetrics(nil),
			Logger:    logger,
		}),
	}, nil
}

// Close 关闭节点连接
func (a *marketApp) Close() {
	a.eth.Close()
}

// printNotifications 把控制器通知输出到终端（非表格模式输出到 stderr）
func (a *marketApp) printNotifications() (cancel func()) {
	return a.hub.OnNotification(func(n notify.Notification) {
		if formatter.IsTable() {
			_ = ui.ShowNotification(components, n)
			return
		}
		switch n.Level {
		case notify.LevelSuccess:
			formatter.PrintSuccess(n.Message)
		case notify.LevelWarning, notify.LevelError:
			formatter.PrintWarning(n.Message)
		default:
			formatter.PrintInfo(n.Message)
		}
	})
}

// cliApprover --yes 时自动签名，否则交互确认
func cliApprover() wallet.Approver {
	if globalFlags.Yes {
		return wallet.AutoApprove
	}
	return ui.NewConfirmApprover(components)
}

// configuredAccount 配置中指定的账户，用于标记自己的代币
func configuredAccount(c *config.Config) common.Address {
	if common.IsHexAddress(c.Account) {
		return common.HexToAddress(c.Account)
	}
	if c.Mnemonic == "" {
		return common.Address{}
	}
	// 助记词账户无需授权提示，直接派生
	opts := app.ProviderOptions(c)
	opts.KeystoreDir = ""
	provider, err := wallet.DetectProvider(opts)
	if err != nil {
		return common.Address{}
	}
	ctx := context.Background()
	if err := provider.Enable(ctx); err != nil {
		return common.Address{}
	}
	accounts, err := provider.Accounts(ctx)
	if err != nil || len(accounts) == 0 {
		return common.Address{}
	}
	return accounts[0]
}
