// Package api assembles the local HTTP view.
package api

import (
	"go.uber.org/fx"

	"github.com/weisyn/nftmarket/internal/api/http"
)

// Module API 模块，启动时实例化 HTTP 服务器
func Module() fx.Option {
	return fx.Module("api",
		http.Module(),
		fx.Invoke(func(*http.Server) {}),
	)
}
