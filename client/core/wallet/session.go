package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Session 已连接的钱包会话
//
// 持有当前账户与签名句柄，供合约调用使用。
type Session struct {
	Account  common.Address
	ChainID  *big.Int
	Provider ProviderType

	signer   bind.SignerFn
	approver Approver
}

// Connect 建立钱包会话
//
// provider 为 nil 时返回 ErrProviderUnavailable；
// 授权失败、没有账户或无法读取链 ID 时返回 ErrConnectionRejected。
func Connect(ctx context.Context, provider Provider, chain ChainIDReader, approver Approver) (*Session, error) {
	if provider == nil {
		return nil, ErrProviderUnavailable
	}
	if approver == nil {
		approver = AutoApprove
	}

	if err := provider.Enable(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionRejected, err)
	}

	accounts, err := provider.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionRejected, err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrConnectionRejected, ErrNoAccounts)
	}
	account := accounts[0]

	chainID, err := chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read chain id: %v", ErrConnectionRejected, err)
	}

	signer, err := provider.SignerFn(account, chainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionRejected, err)
	}

	return &Session{
		Account:  account,
		ChainID:  chainID,
		Provider: provider.Type(),
		signer:   signer,
		approver: approver,
	}, nil
}

// NewSession 直接由签名函数构造会话（测试与嵌入场景）
func NewSession(account common.Address, chainID *big.Int, signer bind.SignerFn, approver Approver) *Session {
	if approver == nil {
		approver = AutoApprove
	}
	return &Session{Account: account, ChainID: chainID, signer: signer, approver: approver}
}

// TransactOpts 构造一次交易的签名选项
//
// 签名前会先征求 Approver 同意，拒绝时返回 ErrUserRejected。
func (s *Session) TransactOpts(ctx context.Context, method string, value *big.Int) *bind.TransactOpts {
	return &bind.TransactOpts{
		From:    s.Account,
		Context: ctx,
		Value:   value,
		Signer: func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
			ok, err := s.approver.Approve(ctx, SignRequest{
				Method: method,
				From:   addr,
				To:     tx.To(),
				Value:  tx.Value(),
				Gas:    tx.Gas(),
			})
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUserRejected, err)
			}
			if !ok {
				return nil, ErrUserRejected
			}
			return s.signer(addr, tx)
		},
	}
}
