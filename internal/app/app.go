// Package app assembles the long-running marketplace view with fx.
package app

import (
	"context"
	"time"

	"github.com/weisyn/nftmarket/client/core/market"
)

// stopTimeout 停止超时
const stopTimeout = 15 * time.Second

// App 已启动的应用
type App interface {
	// Addr HTTP 服务实际监听地址
	Addr() string

	// Controller 视图控制器
	Controller() *market.Controller

	// Wait 阻塞直到 ctx 取消，然后停止应用
	Wait(ctx context.Context) error

	// Stop 停止应用
	Stop() error
}

// internalApp App 的实现
type internalApp struct {
	bootstrap *Bootstrap
}

var _ App = (*internalApp)(nil)

func (a *internalApp) Addr() string {
	return a.bootstrap.server.Addr()
}

func (a *internalApp) Controller() *market.Controller {
	return a.bootstrap.ctrl
}

func (a *internalApp) Wait(ctx context.Context) error {
	<-ctx.Done()
	return a.Stop()
}

func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}
