package app

import (
	"context"
	"fmt"
	"time"

	"github.com/weisyn/nftmarket/client/core/market"
	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/client/pkg/config"
	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
)

// watchRetryDelay 订阅断开后的重连间隔
const watchRetryDelay = 5 * time.Second

// WatchActivity 在 ws_url 连接上订阅合约事件直到 ctx 取消
//
// 每个事件先交给 sink，再触发控制器完整同步。
func WatchActivity(ctx context.Context, c *config.Config, ctrl *market.Controller, l log.Logger, sink func(registry.Activity)) error {
	if c.WSURL == "" {
		return fmt.Errorf("%w: ws_url is required to watch events", config.ErrInvalidConfig)
	}
	eth, err := DialChain(ctx, c.WSURL)
	if err != nil {
		return err
	}
	defer eth.Close()

	reg, err := NewRegistryClient(eth, c, l)
	if err != nil {
		return err
	}
	return reg.WatchActivity(ctx, func(a registry.Activity) {
		if sink != nil {
			sink(a)
		}
		ctrl.OnActivity(ctx, a)
	})
}

// watchLoop 订阅失败时按固定间隔重试，直到 ctx 取消
func watchLoop(ctx context.Context, c *config.Config, ctrl *market.Controller, l log.Logger) {
	for {
		err := WatchActivity(ctx, c, ctrl, l, nil)
		if ctx.Err() != nil {
			return
		}
		l.Warnf("activity subscription ended: %v, retrying in %s", err, watchRetryDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(watchRetryDelay):
		}
	}
}
