// Package wallet provides the wallet session used to sign registry transactions.
package wallet

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrProviderUnavailable 环境中没有可用的钱包提供者（未配置 keystore 或助记词）
	ErrProviderUnavailable = errors.New("wallet provider unavailable")

	// ErrConnectionRejected 用户拒绝授权或提供者返回错误
	ErrConnectionRejected = errors.New("wallet connection rejected")

	// ErrUserRejected 用户拒绝签名
	ErrUserRejected = errors.New("user rejected signing request")

	// ErrNoAccounts 提供者没有任何账户
	ErrNoAccounts = errors.New("no accounts available")
)

// ProviderType 钱包提供者类型
type ProviderType string

const (
	ProviderTypeKeystore ProviderType = "keystore" // 加密 keystore 目录
	ProviderTypeMnemonic ProviderType = "mnemonic" // BIP39 助记词
)

// Provider 钱包提供者接口
//
// 对应浏览器环境中的注入式钱包：先 Enable 授权，再读取账户，
// 最后按账户提供签名原语。
type Provider interface {
	// Enable 请求授权（可能提示用户输入密码）
	Enable(ctx context.Context) error

	// Accounts 返回已授权的账户，第一个为当前账户
	Accounts(ctx context.Context) ([]common.Address, error)

	// SignerFn 返回指定账户在指定链上的签名函数
	SignerFn(account common.Address, chainID *big.Int) (bind.SignerFn, error)

	// Type 返回提供者类型
	Type() ProviderType
}

// ChainIDReader 读取链 ID（ethclient.Client 满足此接口）
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// SignRequest 待用户确认的签名请求
type SignRequest struct {
	Method string
	From   common.Address
	To     *common.Address
	Value  *big.Int
	Gas    uint64
}

// Approver 签名确认器
type Approver interface {
	Approve(ctx context.Context, req SignRequest) (bool, error)
}

// ApproverFunc 函数形式的 Approver
type ApproverFunc func(ctx context.Context, req SignRequest) (bool, error)

// Approve 实现 Approver
func (f ApproverFunc) Approve(ctx context.Context, req SignRequest) (bool, error) {
	return f(ctx, req)
}

// AutoApprove 自动同意所有签名请求
var AutoApprove Approver = ApproverFunc(func(context.Context, SignRequest) (bool, error) {
	return true, nil
})
