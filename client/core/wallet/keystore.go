package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Prompter 密码提示器
type Prompter interface {
	Passphrase(ctx context.Context, account common.Address) (string, error)
}

// StaticPassphrase 固定密码（来自环境变量或测试）
type StaticPassphrase string

// Passphrase 实现 Prompter
func (s StaticPassphrase) Passphrase(context.Context, common.Address) (string, error) {
	return string(s), nil
}

// KeystoreProvider 基于加密 keystore 目录的钱包提供者
type KeystoreProvider struct {
	ks       *keystore.KeyStore
	prompter Prompter
	want     string // 指定账户地址，为空时使用第一个账户

	mu       sync.RWMutex
	selected *accounts.Account
}

var _ Provider = (*KeystoreProvider)(nil)

// NewKeystoreProvider 创建 keystore 提供者
func NewKeystoreProvider(dir, account string, prompter Prompter) *KeystoreProvider {
	return newKeystoreProvider(keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP), account, prompter)
}

func newKeystoreProvider(ks *keystore.KeyStore, account string, prompter Prompter) *KeystoreProvider {
	return &KeystoreProvider{
		ks:       ks,
		prompter: prompter,
		want:     strings.TrimSpace(account),
	}
}

// Enable 选择账户并用提示得到的密码解锁
func (p *KeystoreProvider) Enable(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	all := p.ks.Accounts()
	if len(all) == 0 {
		return ErrNoAccounts
	}

	acc := all[0]
	if p.want != "" {
		if !common.IsHexAddress(p.want) {
			return fmt.Errorf("invalid account address: %s", p.want)
		}
		found, err := p.ks.Find(accounts.Account{Address: common.HexToAddress(p.want)})
		if err != nil {
			return fmt.Errorf("find account %s: %w", p.want, err)
		}
		acc = found
	}

	if p.prompter == nil {
		return errors.New("no passphrase prompter configured")
	}
	pass, err := p.prompter.Passphrase(ctx, acc.Address)
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}
	if err := p.ks.Unlock(acc, pass); err != nil {
		return fmt.Errorf("unlock %s: %w", acc.Address.Hex(), err)
	}

	p.selected = &acc
	return nil
}

// Accounts 返回已解锁的账户
func (p *KeystoreProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.selected == nil {
		return nil, errors.New("keystore provider not enabled")
	}
	return []common.Address{p.selected.Address}, nil
}

// SignerFn 返回签名函数，账户被锁定时返回 keystore.ErrLocked
func (p *KeystoreProvider) SignerFn(account common.Address, chainID *big.Int) (bind.SignerFn, error) {
	acc := accounts.Account{Address: account}
	if !p.ks.HasAddress(account) {
		return nil, fmt.Errorf("account %s not in keystore", account.Hex())
	}
	return func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if addr != account {
			return nil, bind.ErrNotAuthorized
		}
		return p.ks.SignTx(acc, tx, chainID)
	}, nil
}

// Type 返回提供者类型
func (p *KeystoreProvider) Type() ProviderType {
	return ProviderTypeKeystore
}

// Lock 重新锁定已选账户
func (p *KeystoreProvider) Lock() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.selected == nil {
		return nil
	}
	return p.ks.Lock(p.selected.Address)
}

// ========== 账户管理 ==========

// NewAccount 在 keystore 目录中创建新账户
func NewAccount(dir, passphrase string) (common.Address, error) {
	if passphrase == "" {
		return common.Address{}, errors.New("passphrase is required")
	}
	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
	acc, err := ks.NewAccount(passphrase)
	if err != nil {
		return common.Address{}, fmt.Errorf("create account: %w", err)
	}
	return acc.Address, nil
}

// ImportAccount 导入十六进制私钥到 keystore 目录
func ImportAccount(dir, hexKey, passphrase string) (common.Address, error) {
	if passphrase == "" {
		return common.Address{}, errors.New("passphrase is required")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("parse private key: %w", err)
	}
	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
	acc, err := ks.ImportECDSA(key, passphrase)
	if err != nil {
		return common.Address{}, fmt.Errorf("import key: %w", err)
	}
	return acc.Address, nil
}

// ListAccounts 列出 keystore 目录中的账户
func ListAccounts(dir string) []common.Address {
	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
	all := ks.Accounts()
	out := make([]common.Address, len(all))
	for i, a := range all {
		out[i] = a.Address
	}
	return out
}
