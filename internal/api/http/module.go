// Package http serves the local single-page marketplace view and its JSON API.
package http

import (
	"context"

	"go.uber.org/fx"

	"github.com/weisyn/nftmarket/client/core/market"
	"github.com/weisyn/nftmarket/client/core/notify"
	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
)

// ModuleParams HTTP 模块依赖
type ModuleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Options    Options
	Controller *market.Controller
	Hub        *notify.Hub
	Logger     log.Logger
}

// Module HTTP 视图模块
func Module() fx.Option {
	return fx.Module("http",
		fx.Provide(ProvideServer),
	)
}

// ProvideServer 创建服务器并挂载生命周期
func ProvideServer(p ModuleParams) *Server {
	server := NewServer(p.Options, p.Controller, p.Hub, p.Logger)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			return server.Stop(ctx)
		},
	})
	return server
}
