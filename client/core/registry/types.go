package registry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Token 注册合约中的一条代币记录
type Token struct {
	ID      *big.Int       `json:"id"`
	URI     string         `json:"uri"`
	Price   *big.Int       `json:"price"` // 单位 wei
	Creator common.Address `json:"creator"`
}

// nftRecord getAllNFTs 返回的元组，字段顺序与 ABI 一致
type nftRecord struct {
	Id      *big.Int
	Uri     string
	Price   *big.Int
	Creator common.Address
}

func (r nftRecord) token() Token {
	return Token{ID: r.Id, URI: r.Uri, Price: r.Price, Creator: r.Creator}
}

// Receipt 交易确认结果
type Receipt struct {
	TxHash      common.Hash `json:"tx_hash"`
	BlockNumber uint64      `json:"block_number"`
	GasUsed     uint64      `json:"gas_used"`
}

func newReceipt(tx *types.Transaction, r *types.Receipt) *Receipt {
	out := &Receipt{TxHash: tx.Hash(), GasUsed: r.GasUsed}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	return out
}

// Collection 合约元信息
type Collection struct {
	Address common.Address `json:"address"`
	Name    string         `json:"name"`
	Symbol  string         `json:"symbol"`
}
