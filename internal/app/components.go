package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/weisyn/nftmarket/client/core/market"
	"github.com/weisyn/nftmarket/client/core/notify"
	"github.com/weisyn/nftmarket/client/core/pinning"
	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/client/core/wallet"
	"github.com/weisyn/nftmarket/client/pkg/config"
	"github.com/weisyn/nftmarket/client/pkg/ux/ui"
	corelog "github.com/weisyn/nftmarket/internal/core/infrastructure/log"
	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
)

// ========== 组件构造（CLI 与 serve 共用） ==========

// DialChain 连接以太坊节点，支持 http(s) 与 ws(s)
func DialChain(ctx context.Context, url string) (*ethclient.Client, error) {
	eth, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return eth, nil
}

// NewRegistryClient 创建配置中合约地址的注册合约客户端
func NewRegistryClient(backend registry.Backend, c *config.Config, l log.Logger) (*registry.Client, error) {
	return registry.New(backend, common.HexToAddress(c.ContractAddress), corelog.WithModule(l, "registry"))
}

// NewUploader 创建 Pinata 上传客户端
func NewUploader(c *config.Config) pinning.Uploader {
	return pinning.NewPinataClient(pinning.Config{
		Endpoint:   c.PinataEndpoint,
		JWT:        c.PinataJWT,
		CIDVersion: c.CIDVersion,
		Timeout:    time.Duration(c.UploadTimeout) * time.Second,
	})
}

// NewGateway 创建内容网关
func NewGateway(c *config.Config) pinning.Gateway {
	return pinning.NewGateway(c.GatewayURL)
}

// ProviderOptions 钱包探测配置，配置了密码时不再提示
func ProviderOptions(c *config.Config) wallet.ProviderOptions {
	var prompter wallet.Prompter = ui.TermPrompter{}
	if c.Password != "" {
		prompter = wallet.StaticPassphrase(c.Password)
	}
	return wallet.ProviderOptions{
		KeystoreDir:    c.KeystoreDir,
		Account:        c.Account,
		Mnemonic:       c.Mnemonic,
		DerivationPath: c.DerivationPath,
		Prompter:       prompter,
	}
}

// NewConnector 创建钱包连接器，每次连接时重新探测提供者
func NewConnector(c *config.Config, chain wallet.ChainIDReader, approver wallet.Approver) market.Connector {
	opts := ProviderOptions(c)
	return &market.WalletConnector{
		Detect:   func() (wallet.Provider, error) { return wallet.DetectProvider(opts) },
		Chain:    chain,
		Approver: approver,
	}
}

// ControllerParams 控制器依赖
type ControllerParams struct {
	Registry  market.Registry
	Uploader  pinning.Uploader
	Gateway   pinning.Gateway
	Connector market.Connector
	Hub       *notify.Hub
	Metrics   *market.Metrics
	Logger    log.Logger
}

// NewController 创建控制器
func NewController(p ControllerParams) *market.Controller {
	return market.NewController(market.Options{
		Registry:  p.Registry,
		Uploader:  p.Uploader,
		Gateway:   p.Gateway,
		Connector: p.Connector,
		Hub:       p.Hub,
		Metrics:   p.Metrics,
		Logger:    corelog.WithModule(p.Logger, "market"),
	})
}
