package registry

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmarket/client/core/wallet"
	corelog "github.com/weisyn/nftmarket/internal/core/infrastructure/log"
)

var (
	contractAddr = common.HexToAddress(DefaultAddress)
	alice        = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
)

type transactCall struct {
	method string
	params []interface{}
	value  *big.Int
}

// fakeContract 记录调用并返回预置结果
type fakeContract struct {
	*bind.BoundContract

	calls       []transactCall
	transactErr error
	callResults map[string][]interface{}
	callErr     error
	watch       func(opts *bind.WatchOpts, name string) (chan types.Log, event.Subscription, error)
}

func newFakeContract(t *testing.T) *fakeContract {
	t.Helper()
	parsed, err := ABI()
	require.NoError(t, err)
	return &fakeContract{
		BoundContract: bind.NewBoundContract(contractAddr, parsed, nil, nil, nil),
		callResults:   map[string][]interface{}{},
	}
}

func (f *fakeContract) Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error {
	if f.callErr != nil {
		return f.callErr
	}
	*results = f.callResults[method]
	return nil
}

func (f *fakeContract) Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error) {
	if f.transactErr != nil {
		return nil, f.transactErr
	}
	to := contractAddr
	tx := types.NewTx(&types.LegacyTx{Nonce: uint64(len(f.calls)), To: &to, Value: opts.Value, Gas: 100000, GasPrice: big.NewInt(1)})
	signed, err := opts.Signer(opts.From, tx)
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, transactCall{method: method, params: params, value: opts.Value})
	return signed, nil
}

func (f *fakeContract) WatchLogs(opts *bind.WatchOpts, name string, query ...[]interface{}) (chan types.Log, event.Subscription, error) {
	if f.watch != nil {
		return f.watch(opts, name)
	}
	return nil, nil, errors.New("not supported")
}

func okWaiter(status uint64) Waiter {
	return func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
		return &types.Receipt{Status: status, BlockNumber: big.NewInt(12), GasUsed: 21000, TxHash: tx.Hash()}, nil
	}
}

func passthroughSigner(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
	return tx, nil
}

func newSession(approver wallet.Approver) *wallet.Session {
	return wallet.NewSession(alice, big.NewInt(1337), passthroughSigner, approver)
}

func newTestClient(f *fakeContract, w Waiter) *Client {
	return newClient(contractAddr, f, w, corelog.NewNop())
}

func TestABI_HasRegistryMethods(t *testing.T) {
	parsed, err := ABI()
	require.NoError(t, err)
	for _, m := range []string{"mintNFT", "buyNFT", "listNFT", "getAllNFTs", "ownerOf", "name", "symbol", "listedMap"} {
		_, ok := parsed.Methods[m]
		assert.True(t, ok, m)
	}
	assert.True(t, parsed.Methods["buyNFT"].IsPayable())
	for _, e := range []string{"Minted", "Bought", "Listed"} {
		_, ok := parsed.Events[e]
		assert.True(t, ok, e)
	}
}

func TestClient_Mint(t *testing.T) {
	f := newFakeContract(t)
	c := newTestClient(f, okWaiter(types.ReceiptStatusSuccessful))

	price := big.NewInt(1_500_000_000_000_000_000)
	rcpt, err := c.Mint(context.Background(), newSession(nil), "https://gateway.pinata.cloud/ipfs/abc123", price)
	require.NoError(t, err)

	require.Len(t, f.calls, 1)
	assert.Equal(t, "mintNFT", f.calls[0].method)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/abc123", f.calls[0].params[0])
	assert.Equal(t, price, f.calls[0].params[1])
	assert.Nil(t, f.calls[0].value)
	assert.Equal(t, uint64(12), rcpt.BlockNumber)
	assert.Equal(t, uint64(21000), rcpt.GasUsed)
}

func TestClient_BuySendsPriceAsValue(t *testing.T) {
	f := newFakeContract(t)
	c := newTestClient(f, okWaiter(types.ReceiptStatusSuccessful))

	price := big.NewInt(2_000_000_000_000_000_000)
	_, err := c.Buy(context.Background(), newSession(nil), big.NewInt(7), price)
	require.NoError(t, err)

	require.Len(t, f.calls, 1)
	assert.Equal(t, "buyNFT", f.calls[0].method)
	assert.Equal(t, big.NewInt(7), f.calls[0].params[0])
	assert.Equal(t, price, f.calls[0].value)
}

func TestClient_List(t *testing.T) {
	f := newFakeContract(t)
	c := newTestClient(f, okWaiter(types.ReceiptStatusSuccessful))

	_, err := c.List(context.Background(), newSession(nil), big.NewInt(3), big.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, "listNFT", f.calls[0].method)
	assert.Equal(t, []interface{}{big.NewInt(3), big.NewInt(10)}, f.calls[0].params)
}

func TestClient_TransactErrors(t *testing.T) {
	deny := wallet.ApproverFunc(func(context.Context, wallet.SignRequest) (bool, error) { return false, nil })

	tests := []struct {
		name        string
		session     *wallet.Session
		transactErr error
		waiter      Waiter
		want        error
	}{
		{"user declined", newSession(deny), nil, okWaiter(types.ReceiptStatusSuccessful), ErrTransactionRejected},
		{"wallet locked", newSession(nil), keystore.ErrLocked, okWaiter(types.ReceiptStatusSuccessful), ErrTransactionRejected},
		{"no session", nil, nil, okWaiter(types.ReceiptStatusSuccessful), ErrTransactionRejected},
		{"estimate reverted", newSession(nil), errors.New("execution reverted: not listed"), okWaiter(types.ReceiptStatusSuccessful), ErrTransactionFailed},
		{"receipt reverted", newSession(nil), nil, okWaiter(types.ReceiptStatusFailed), ErrTransactionFailed},
		{"wait error", newSession(nil), nil, func(context.Context, *types.Transaction) (*types.Receipt, error) {
			return nil, errors.New("connection reset")
		}, ErrTransactionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeContract(t)
			f.transactErr = tt.transactErr
			c := newTestClient(f, tt.waiter)

			_, err := c.Buy(context.Background(), tt.session, big.NewInt(1), big.NewInt(1))
			assert.ErrorIs(t, err, tt.want)
			if tt.want == ErrTransactionRejected {
				assert.NotErrorIs(t, err, ErrTransactionFailed)
			}
		})
	}
}

func TestClient_ListAll(t *testing.T) {
	f := newFakeContract(t)
	type tuple = struct {
		Id      *big.Int
		Uri     string
		Price   *big.Int
		Creator common.Address
	}
	f.callResults["getAllNFTs"] = []interface{}{[]tuple{
		{Id: big.NewInt(1), Uri: "https://gateway.pinata.cloud/ipfs/a", Price: big.NewInt(100), Creator: alice},
		{Id: big.NewInt(2), Uri: "https://gateway.pinata.cloud/ipfs/b", Price: big.NewInt(200), Creator: alice},
	}}
	c := newTestClient(f, nil)

	tokens, err := c.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, int64(1), tokens[0].ID.Int64())
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/b", tokens[1].URI)
	assert.Equal(t, int64(200), tokens[1].Price.Int64())
	assert.Equal(t, alice, tokens[1].Creator)
}

func TestClient_ListAllEmpty(t *testing.T) {
	f := newFakeContract(t)
	f.callResults["getAllNFTs"] = []interface{}{[]struct {
		Id      *big.Int
		Uri     string
		Price   *big.Int
		Creator common.Address
	}{}}

	tokens, err := newTestClient(f, nil).ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestClient_QueryErrors(t *testing.T) {
	f := newFakeContract(t)
	f.callErr = errors.New("dial tcp: connection refused")
	c := newTestClient(f, nil)

	_, err := c.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrQueryFailed)

	_, err = c.OwnerOf(context.Background(), big.NewInt(1))
	assert.ErrorIs(t, err, ErrQueryFailed)

	f.callErr = nil
	f.callResults["getAllNFTs"] = []interface{}{"garbage"}
	_, err = c.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestClient_SingleValueQueries(t *testing.T) {
	f := newFakeContract(t)
	f.callResults["ownerOf"] = []interface{}{alice}
	f.callResults["listedMap"] = []interface{}{true}
	f.callResults["name"] = []interface{}{"Marketplace"}
	f.callResults["symbol"] = []interface{}{"MKT"}
	c := newTestClient(f, nil)

	owner, err := c.OwnerOf(context.Background(), big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	listed, err := c.IsListed(context.Background(), big.NewInt(1))
	require.NoError(t, err)
	assert.True(t, listed)

	info, err := c.Collection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Collection{Address: contractAddr, Name: "Marketplace", Symbol: "MKT"}, info)
}
