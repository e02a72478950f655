package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/weisyn/nftmarket/client/core/wallet"
)

// WalletConnector 探测钱包提供者并建立会话
type WalletConnector struct {
	Detect   func() (wallet.Provider, error)
	Chain    wallet.ChainIDReader
	Approver wallet.Approver
}

var _ Connector = (*WalletConnector)(nil)

// Connect 实现 Connector
func (w *WalletConnector) Connect(ctx context.Context) (*wallet.Session, error) {
	provider, err := w.Detect()
	if errors.Is(err, wallet.ErrProviderUnavailable) {
		return nil, err
	}
	if err != nil {
		// 提供者配置错误（助记词、派生路径）按拒绝连接处理
		return nil, fmt.Errorf("%w: %v", wallet.ErrConnectionRejected, err)
	}
	return wallet.Connect(ctx, provider, w.Chain, w.Approver)
}
