package main

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmarket/client/core/price"
	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/client/core/wallet"
	"github.com/weisyn/nftmarket/client/pkg/config"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func sampleTokens() []registry.Token {
	return []registry.Token{
		{ID: big.NewInt(0), URI: "https://gateway.pinata.cloud/ipfs/a", Price: price.MustParseEther("0.5"), Creator: alice},
		{ID: big.NewInt(1), URI: "https://gateway.pinata.cloud/ipfs/b", Price: price.MustParseEther("1"), Creator: bob},
	}
}

func TestParseTokenID(t *testing.T) {
	id, err := parseTokenID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.Int64())

	for _, bad := range []string{"", "abc", "-1", "0x10"} {
		_, err := parseTokenID(bad)
		assert.Error(t, err, bad)
	}
}

func TestBuyAmount(t *testing.T) {
	tokens := sampleTokens()

	t.Run("使用挂单价格", func(t *testing.T) {
		wei, err := buyAmount(tokens, big.NewInt(1), "")
		require.NoError(t, err)
		assert.Equal(t, price.MustParseEther("1"), wei)

		// 返回副本，修改不影响视图
		wei.SetInt64(0)
		assert.Equal(t, price.MustParseEther("1"), tokens[1].Price)
	})

	t.Run("显式金额原样发送", func(t *testing.T) {
		wei, err := buyAmount(tokens, big.NewInt(1), "123")
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(123), wei)
	})

	t.Run("无效金额", func(t *testing.T) {
		_, err := buyAmount(tokens, big.NewInt(1), "1.5")
		assert.ErrorIs(t, err, price.ErrInvalidAmount)
	})

	t.Run("未知代币", func(t *testing.T) {
		_, err := buyAmount(tokens, big.NewInt(7), "")
		assert.Error(t, err)
	})
}

func TestOwnTokens(t *testing.T) {
	mine := ownTokens(sampleTokens(), alice)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(0), mine[0].ID.Int64())

	assert.Empty(t, ownTokens(sampleTokens(), common.Address{}))
}

func TestMnemonicStrength(t *testing.T) {
	s, err := mnemonicStrength(12)
	require.NoError(t, err)
	assert.Equal(t, wallet.Mnemonic12Words, s)

	s, err = mnemonicStrength(24)
	require.NoError(t, err)
	assert.Equal(t, wallet.Mnemonic24Words, s)

	_, err = mnemonicStrength(18)
	assert.Error(t, err)
}

func TestConfiguredAccount(t *testing.T) {
	c := config.DefaultConfig()
	assert.Equal(t, common.Address{}, configuredAccount(c))

	c.Account = alice.Hex()
	assert.Equal(t, alice, configuredAccount(c))

	// 未配置 account 时从助记词派生第一个账户
	c.Account = ""
	c.Mnemonic = "test test test test test test test test test test test junk"
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), configuredAccount(c))

	c.Mnemonic = "not a mnemonic"
	assert.Equal(t, common.Address{}, configuredAccount(c))
}

func TestConfigPairs_HidesSecrets(t *testing.T) {
	c := config.DefaultConfig()
	c.PinataJWT = "eyJhbGciOi"
	c.Mnemonic = "test test test test test test test test test test test junk"

	pairs := configPairs(c)
	assert.Equal(t, "set", pairs["PINATA_JWT"])
	assert.Equal(t, "set", pairs["mnemonic"])
	for _, v := range pairs {
		assert.NotContains(t, v, "eyJhbGciOi")
		assert.NotContains(t, v, "junk")
	}
}

type ctxKey struct{}

func TestDetached_IgnoresInterrupt(t *testing.T) {
	parent, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "v"))
	ctx := detached(parent)
	cancel()

	assert.Error(t, parent.Err())
	assert.NoError(t, ctx.Err())
	select {
	case <-ctx.Done():
		t.Fatal("中断不应取消进行中的交易")
	default:
	}
	assert.Equal(t, "v", ctx.Value(ctxKey{}))
}
