package registry

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

// ActivityKind 合约事件类型
type ActivityKind string

const (
	ActivityMinted ActivityKind = "Minted"
	ActivityBought ActivityKind = "Bought"
	ActivityListed ActivityKind = "Listed"
)

// Activity 解码后的合约事件
type Activity struct {
	Kind    ActivityKind   `json:"kind"`
	TokenID *big.Int       `json:"token_id"`
	Account common.Address `json:"account,omitempty"` // Minted 为创建者，Bought 为买家
	Price   *big.Int       `json:"price"`
	URI     string         `json:"uri,omitempty"`
	TxHash  common.Hash    `json:"tx_hash"`
	Block   uint64         `json:"block"`
}

type mintedEvent struct {
	TokenId *big.Int
	Creator common.Address
	Uri     string
	Price   *big.Int
}

type boughtEvent struct {
	TokenId *big.Int
	Buyer   common.Address
	Price   *big.Int
}

type listedEvent struct {
	TokenId *big.Int
	Price   *big.Int
}

// WatchActivity 订阅 Minted/Bought/Listed 事件，直到 ctx 取消或订阅出错
//
// 需要支持订阅的节点连接（websocket 或 IPC）。
func (c *Client) WatchActivity(ctx context.Context, sink func(Activity)) error {
	// 返回时结束所有转发协程
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	kinds := []ActivityKind{ActivityMinted, ActivityBought, ActivityListed}
	logs := make(chan types.Log, 64)
	errc := make(chan error, len(kinds))

	for _, kind := range kinds {
		ch, sub, err := c.contract.WatchLogs(&bind.WatchOpts{Context: ctx}, string(kind))
		if err != nil {
			return fmt.Errorf("%w: watch %s: %w", ErrQueryFailed, kind, err)
		}
		go func(ch chan types.Log, sub event.Subscription) {
			defer sub.Unsubscribe()
			for {
				select {
				case l := <-ch:
					select {
					case logs <- l:
					case <-ctx.Done():
						return
					}
				case err := <-sub.Err():
					if err != nil {
						errc <- err
					}
					return
				case <-ctx.Done():
					return
				}
			}
		}(ch, sub)
	}

	for {
		select {
		case l := <-logs:
			a, err := c.decodeActivity(l)
			if err != nil {
				c.logger.Warnf("skip undecodable log tx=%s: %v", l.TxHash.Hex(), err)
				continue
			}
			sink(a)
		case err := <-errc:
			return fmt.Errorf("%w: subscription: %w", ErrQueryFailed, err)
		case <-ctx.Done():
			return nil
		}
	}
}

// decodeActivity 根据事件签名解码日志
func (c *Client) decodeActivity(l types.Log) (Activity, error) {
	parsed, err := ABI()
	if err != nil {
		return Activity{}, err
	}
	if len(l.Topics) == 0 {
		return Activity{}, fmt.Errorf("log without topics")
	}

	base := Activity{TxHash: l.TxHash, Block: l.BlockNumber}
	switch l.Topics[0] {
	case parsed.Events[string(ActivityMinted)].ID:
		var ev mintedEvent
		if err := c.contract.UnpackLog(&ev, string(ActivityMinted), l); err != nil {
			return Activity{}, err
		}
		base.Kind, base.TokenID, base.Account, base.URI, base.Price = ActivityMinted, ev.TokenId, ev.Creator, ev.Uri, ev.Price
	case parsed.Events[string(ActivityBought)].ID:
		var ev boughtEvent
		if err := c.contract.UnpackLog(&ev, string(ActivityBought), l); err != nil {
			return Activity{}, err
		}
		base.Kind, base.TokenID, base.Account, base.Price = ActivityBought, ev.TokenId, ev.Buyer, ev.Price
	case parsed.Events[string(ActivityListed)].ID:
		var ev listedEvent
		if err := c.contract.UnpackLog(&ev, string(ActivityListed), l); err != nil {
			return Activity{}, err
		}
		base.Kind, base.TokenID, base.Price = ActivityListed, ev.TokenId, ev.Price
	default:
		return Activity{}, fmt.Errorf("unknown event %s", l.Topics[0].Hex())
	}
	return base, nil
}
