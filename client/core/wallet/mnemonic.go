package wallet

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// MnemonicStrength 助记词强度（熵的位数）
type MnemonicStrength int

const (
	Mnemonic12Words MnemonicStrength = 128
	Mnemonic24Words MnemonicStrength = 256
)

// ErrInvalidMnemonic 助记词无效
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// GenerateMnemonic 生成新的 BIP39 助记词
func GenerateMnemonic(strength MnemonicStrength) (string, error) {
	switch strength {
	case Mnemonic12Words, Mnemonic24Words:
	default:
		return "", fmt.Errorf("invalid mnemonic strength: %d, must be 128 or 256", strength)
	}

	entropy := make([]byte, int(strength)/8)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic 验证助记词（单词与校验和）
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalizeSpaces(mnemonic))
}

// normalizeSpaces 将多个连续空白规范为单个空格
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DeriveKey 从助记词按路径派生私钥
func DeriveKey(mnemonic, passphrase string, path *DerivationPath) (*ecdsa.PrivateKey, error) {
	mnemonic = normalizeSpaces(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	seed := bip39.NewSeed(mnemonic, passphrase)

	// chaincfg 参数只影响扩展密钥序列化，不影响派生结果
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	for _, idx := range path.ToUint32Array() {
		key, err = key.Derive(idx)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", path, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("extract private key: %w", err)
	}
	return crypto.ToECDSA(priv.Serialize())
}

// MnemonicProvider 基于助记词的钱包提供者
type MnemonicProvider struct {
	mnemonic   string
	passphrase string
	path       *DerivationPath

	mu  sync.RWMutex
	key *ecdsa.PrivateKey
}

var _ Provider = (*MnemonicProvider)(nil)

// NewMnemonicProvider 创建助记词提供者，path 为 nil 时使用 m/44'/60'/0'/0/0
func NewMnemonicProvider(mnemonic, passphrase string, path *DerivationPath) (*MnemonicProvider, error) {
	if !ValidateMnemonic(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	if path == nil {
		path = DefaultDerivationPath()
	}
	return &MnemonicProvider{
		mnemonic:   normalizeSpaces(mnemonic),
		passphrase: passphrase,
		path:       path,
	}, nil
}

// Enable 派生私钥
func (p *MnemonicProvider) Enable(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.key != nil {
		return nil
	}
	key, err := DeriveKey(p.mnemonic, p.passphrase, p.path)
	if err != nil {
		return err
	}
	p.key = key
	return nil
}

// Accounts 返回派生出的唯一账户
func (p *MnemonicProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.key == nil {
		return nil, errors.New("mnemonic provider not enabled")
	}
	return []common.Address{crypto.PubkeyToAddress(p.key.PublicKey)}, nil
}

// SignerFn 返回签名函数
func (p *MnemonicProvider) SignerFn(account common.Address, chainID *big.Int) (bind.SignerFn, error) {
	p.mu.RLock()
	key := p.key
	p.mu.RUnlock()

	if key == nil {
		return nil, errors.New("mnemonic provider not enabled")
	}
	if crypto.PubkeyToAddress(key.PublicKey) != account {
		return nil, fmt.Errorf("account %s not managed by mnemonic provider", account.Hex())
	}

	signer := types.LatestSignerForChainID(chainID)
	return func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if addr != account {
			return nil, bind.ErrNotAuthorized
		}
		return types.SignTx(tx, signer, key)
	}, nil
}

// Type 返回提供者类型
func (p *MnemonicProvider) Type() ProviderType {
	return ProviderTypeMnemonic
}
