// Package registry is the client for the on-chain token registry contract.
package registry

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"

	"github.com/weisyn/nftmarket/client/core/wallet"
	corelog "github.com/weisyn/nftmarket/internal/core/infrastructure/log"
	logInterface "github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
)

// DefaultAddress 已部署的注册合约地址
const DefaultAddress = "0x4aD564E281161ada8f31A9Ef71D826d567E5B89E"

//go:embed abi.json
var abiJSON []byte

var (
	// ErrTransactionRejected 用户拒绝签名或钱包已锁定
	ErrTransactionRejected = errors.New("transaction rejected")

	// ErrTransactionFailed 交易发送失败、预估时回滚或回执状态为失败
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrQueryFailed 只读调用失败
	ErrQueryFailed = errors.New("query failed")
)

var (
	parsedABI     abi.ABI
	parsedABIErr  error
	parsedABIOnce sync.Once
)

// ABI 返回内嵌的合约 ABI
func ABI() (abi.ABI, error) {
	parsedABIOnce.Do(func() {
		parsedABI, parsedABIErr = abi.JSON(bytes.NewReader(abiJSON))
	})
	return parsedABI, parsedABIErr
}

// boundContract 绑定合约所需的最小能力（*bind.BoundContract 满足此接口）
type boundContract interface {
	Call(opts *bind.CallOpts, results *[]interface{}, method string, params ...interface{}) error
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
	WatchLogs(opts *bind.WatchOpts, name string, query ...[]interface{}) (chan types.Log, event.Subscription, error)
	UnpackLog(out interface{}, event string, log types.Log) error
}

// Waiter 等待交易被打包并返回回执
type Waiter func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)

// Client 注册合约客户端
type Client struct {
	address  common.Address
	contract boundContract
	wait     Waiter
	logger   logInterface.Logger
}

// Backend 连接节点所需的能力（ethclient.Client 满足此接口）
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// New 创建注册合约客户端
func New(backend Backend, address common.Address, logger logInterface.Logger) (*Client, error) {
	parsed, err := ABI()
	if err != nil {
		return nil, fmt.Errorf("parse registry abi: %w", err)
	}
	bound := bind.NewBoundContract(address, parsed, backend, backend, backend)
	wait := func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
		return bind.WaitMined(ctx, backend, tx)
	}
	return newClient(address, bound, wait, logger), nil
}

func newClient(address common.Address, contract boundContract, wait Waiter, logger logInterface.Logger) *Client {
	if logger == nil {
		logger = corelog.NewNop()
	}
	return &Client{
		address:  address,
		contract: contract,
		wait:     wait,
		logger:   logger,
	}
}

// Address 返回合约地址
func (c *Client) Address() common.Address {
	return c.address
}

// ========== 交易调用 ==========

// Mint 铸造新代币：mintNFT(uri, price)
func (c *Client) Mint(ctx context.Context, session *wallet.Session, uri string, price *big.Int) (*Receipt, error) {
	return c.transact(ctx, session, nil, "mintNFT", uri, price)
}

// Buy 购买代币：buyNFT(id)，附带 price 作为转账金额（单位 wei，原样发送）
func (c *Client) Buy(ctx context.Context, session *wallet.Session, id, price *big.Int) (*Receipt, error) {
	return c.transact(ctx, session, price, "buyNFT", id)
}

// List 以新价格重新挂单：listNFT(id, price)
func (c *Client) List(ctx context.Context, session *wallet.Session, id, price *big.Int) (*Receipt, error) {
	return c.transact(ctx, session, nil, "listNFT", id, price)
}

// transact 签名、广播并等待一次确认
func (c *Client) transact(ctx context.Context, session *wallet.Session, value *big.Int, method string, params ...interface{}) (*Receipt, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: %s: no wallet session", ErrTransactionRejected, method)
	}

	tx, err := c.contract.Transact(session.TransactOpts(ctx, method, value), method, params...)
	if err != nil {
		if isRejection(err) {
			c.logger.Warnf("%s rejected by signer: %v", method, err)
			return nil, fmt.Errorf("%w: %s: %w", ErrTransactionRejected, method, err)
		}
		c.logger.Errorf("%s send failed: %v", method, err)
		return nil, fmt.Errorf("%w: %s: %w", ErrTransactionFailed, method, err)
	}
	c.logger.Infof("%s submitted tx=%s", method, tx.Hash().Hex())

	receipt, err := c.wait(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: wait for receipt: %w", ErrTransactionFailed, method, err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		c.logger.Errorf("%s reverted tx=%s block=%v", method, tx.Hash().Hex(), receipt.BlockNumber)
		return nil, fmt.Errorf("%w: %s: reverted in tx %s", ErrTransactionFailed, method, tx.Hash().Hex())
	}

	c.logger.Infof("%s confirmed tx=%s block=%v gas=%d", method, tx.Hash().Hex(), receipt.BlockNumber, receipt.GasUsed)
	return newReceipt(tx, receipt), nil
}

func isRejection(err error) bool {
	return errors.Is(err, wallet.ErrUserRejected) || errors.Is(err, keystore.ErrLocked)
}

// ========== 只读调用 ==========

// ListAll 返回合约中的全部代币，保持合约返回的顺序
func (c *Client) ListAll(ctx context.Context) ([]Token, error) {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAllNFTs"); err != nil {
		return nil, fmt.Errorf("%w: getAllNFTs: %w", ErrQueryFailed, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: getAllNFTs: empty result", ErrQueryFailed)
	}

	var records []nftRecord
	if err := convert(out[0], &records); err != nil {
		return nil, fmt.Errorf("%w: getAllNFTs: %w", ErrQueryFailed, err)
	}

	tokens := make([]Token, len(records))
	for i, r := range records {
		tokens[i] = r.token()
	}
	return tokens, nil
}

// OwnerOf 查询代币当前持有人
func (c *Client) OwnerOf(ctx context.Context, id *big.Int) (common.Address, error) {
	var owner common.Address
	if err := c.call(ctx, &owner, "ownerOf", id); err != nil {
		return common.Address{}, err
	}
	return owner, nil
}

// IsListed 查询代币是否在售
func (c *Client) IsListed(ctx context.Context, id *big.Int) (bool, error) {
	var listed bool
	if err := c.call(ctx, &listed, "listedMap", id); err != nil {
		return false, err
	}
	return listed, nil
}

// Collection 查询合约的名称与符号
func (c *Client) Collection(ctx context.Context) (Collection, error) {
	var info Collection
	if err := c.call(ctx, &info.Name, "name"); err != nil {
		return Collection{}, err
	}
	if err := c.call(ctx, &info.Symbol, "symbol"); err != nil {
		return Collection{}, err
	}
	info.Address = c.address
	return info, nil
}

// call 执行单返回值的只读调用
func (c *Client) call(ctx context.Context, dst interface{}, method string, params ...interface{}) error {
	var out []interface{}
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrQueryFailed, method, err)
	}
	if len(out) == 0 {
		return fmt.Errorf("%w: %s: empty result", ErrQueryFailed, method)
	}
	if err := convert(out[0], dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrQueryFailed, method, err)
	}
	return nil
}

// convert 将 ABI 解码结果转换为目标类型；abi.ConvertType 类型不匹配时会 panic
func convert(in interface{}, dst interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected result type %T: %v", in, r)
		}
	}()
	abi.ConvertType(in, dst)
	return nil
}
