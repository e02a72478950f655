package wallet

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 公开的开发助记词，对应账户 0xf39F...2266
const devMnemonic = "test test test test test test test test test test test junk"

var devAccount = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func TestGenerateMnemonic(t *testing.T) {
	tests := []struct {
		name      string
		strength  MnemonicStrength
		wantWords int
		wantErr   bool
	}{
		{"12 words", Mnemonic12Words, 12, false},
		{"24 words", Mnemonic24Words, 24, false},
		{"invalid strength", MnemonicStrength(100), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := GenerateMnemonic(tt.strength)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GenerateMnemonic() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := len(strings.Fields(m)); got != tt.wantWords {
				t.Errorf("GenerateMnemonic() got %d words, want %d", got, tt.wantWords)
			}
			if !ValidateMnemonic(m) {
				t.Error("GenerateMnemonic() generated invalid mnemonic")
			}
		})
	}
}

func TestValidateMnemonic(t *testing.T) {
	assert.True(t, ValidateMnemonic(devMnemonic))
	assert.True(t, ValidateMnemonic("  test test test test test  test test test test test test junk "))
	assert.False(t, ValidateMnemonic(""))
	assert.False(t, ValidateMnemonic("test test test"))
	assert.False(t, ValidateMnemonic("test test test test test test test test test test test notaword"))
}

func TestMnemonicProvider_DerivesKnownAccount(t *testing.T) {
	p, err := NewMnemonicProvider(devMnemonic, "", nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, p.Enable(ctx))

	accounts, err := p.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, devAccount, accounts[0])
	assert.Equal(t, ProviderTypeMnemonic, p.Type())
}

func TestMnemonicProvider_SignerFn(t *testing.T) {
	p, err := NewMnemonicProvider(devMnemonic, "", nil)
	require.NoError(t, err)
	require.NoError(t, p.Enable(context.Background()))

	chainID := big.NewInt(31337)
	signFn, err := p.SignerFn(devAccount, chainID)
	require.NoError(t, err)

	to := common.HexToAddress("0x4aD564E281161ada8f31A9Ef71D826d567E5B89E")
	tx := types.NewTx(&types.LegacyTx{Nonce: 1, To: &to, Value: big.NewInt(1), Gas: 21000, GasPrice: big.NewInt(1)})

	signed, err := signFn(devAccount, tx)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, devAccount, sender)

	_, err = signFn(common.HexToAddress("0x01"), tx)
	assert.Error(t, err)
}

func TestNewMnemonicProvider_Invalid(t *testing.T) {
	_, err := NewMnemonicProvider("not a mnemonic", "", nil)
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}
