package wallet

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chainIDFunc func(ctx context.Context) (*big.Int, error)

func (f chainIDFunc) ChainID(ctx context.Context) (*big.Int, error) { return f(ctx) }

func fixedChain(id int64) ChainIDReader {
	return chainIDFunc(func(context.Context) (*big.Int, error) { return big.NewInt(id), nil })
}

func devProvider(t *testing.T) Provider {
	t.Helper()
	p, err := NewMnemonicProvider(devMnemonic, "", nil)
	require.NoError(t, err)
	return p
}

func TestConnect_NoProvider(t *testing.T) {
	s, err := Connect(context.Background(), nil, fixedChain(1), nil)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestConnect_Success(t *testing.T) {
	s, err := Connect(context.Background(), devProvider(t), fixedChain(31337), nil)
	require.NoError(t, err)
	assert.Equal(t, devAccount, s.Account)
	assert.Equal(t, int64(31337), s.ChainID.Int64())
	assert.Equal(t, ProviderTypeMnemonic, s.Provider)
}

func TestConnect_ChainUnreachable(t *testing.T) {
	chain := chainIDFunc(func(context.Context) (*big.Int, error) { return nil, errors.New("dial refused") })
	_, err := Connect(context.Background(), devProvider(t), chain, nil)
	assert.ErrorIs(t, err, ErrConnectionRejected)
}

func TestConnect_EnableRejected(t *testing.T) {
	ks, _ := newLightKeystore(t, "secret")
	p := newKeystoreProvider(ks, "", StaticPassphrase("nope"))

	_, err := Connect(context.Background(), p, fixedChain(1), nil)
	assert.ErrorIs(t, err, ErrConnectionRejected)
}

func TestSession_TransactOptsApproval(t *testing.T) {
	to := common.HexToAddress("0x4aD564E281161ada8f31A9Ef71D826d567E5B89E")
	tx := types.NewTx(&types.LegacyTx{To: &to, Gas: 100000, GasPrice: big.NewInt(1), Value: big.NewInt(5)})

	var seen SignRequest
	approve := ApproverFunc(func(_ context.Context, req SignRequest) (bool, error) {
		seen = req
		return true, nil
	})
	s, err := Connect(context.Background(), devProvider(t), fixedChain(31337), approve)
	require.NoError(t, err)

	opts := s.TransactOpts(context.Background(), "buyNFT", big.NewInt(5))
	assert.Equal(t, devAccount, opts.From)
	assert.Equal(t, int64(5), opts.Value.Int64())

	signed, err := opts.Signer(devAccount, tx)
	require.NoError(t, err)
	assert.NotNil(t, signed)
	assert.Equal(t, "buyNFT", seen.Method)
	assert.Equal(t, &to, seen.To)

	deny := ApproverFunc(func(context.Context, SignRequest) (bool, error) { return false, nil })
	s2, err := Connect(context.Background(), devProvider(t), fixedChain(31337), deny)
	require.NoError(t, err)
	_, err = s2.TransactOpts(context.Background(), "mintNFT", nil).Signer(devAccount, tx)
	assert.ErrorIs(t, err, ErrUserRejected)
}
