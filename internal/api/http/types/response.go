// Package types provides HTTP response type definitions.
package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/nftmarket/client/core/price"
	"github.com/weisyn/nftmarket/client/core/registry"
)

// SuccessResponse 统一成功响应格式
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	Message   string      `json:"message,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{Data: data}
}

// WithRequestID 添加请求ID
func (r *SuccessResponse) WithRequestID(requestID string) *SuccessResponse {
	r.RequestID = requestID
	return r
}

// WithMessage 添加提示消息
func (r *SuccessResponse) WithMessage(msg string) *SuccessResponse {
	r.Message = msg
	return r
}

// Token 代币视图，大整数以十进制字符串表示
type Token struct {
	ID       string `json:"id"`
	URI      string `json:"uri"`
	PriceWei string `json:"priceWei"`
	Price    string `json:"price"` // ETH
	Creator  string `json:"creator"`
	Yours    bool   `json:"yours"`
}

// NewTokens 转换代币列表
func NewTokens(tokens []registry.Token, account common.Address) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, Token{
			ID:       bigString(t.ID),
			URI:      t.URI,
			PriceWei: bigString(t.Price),
			Price:    price.FormatEther(t.Price),
			Creator:  t.Creator.Hex(),
			Yours:    account != (common.Address{}) && t.Creator == account,
		})
	}
	return out
}

// Session 会话信息
type Session struct {
	Connected bool   `json:"connected"`
	Account   string `json:"account,omitempty"`
	ChainID   string `json:"chainId,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

// Staged 暂存文件信息
type Staged struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	ContentType string `json:"contentType"`
}

// View 页面渲染与推送使用的完整视图
type View struct {
	Session  Session   `json:"session"`
	Tokens   []Token   `json:"tokens"`
	Staged   *Staged   `json:"staged,omitempty"`
	SyncedAt time.Time `json:"syncedAt"`
}

// TxResponse 交易结果
type TxResponse struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}

// NewTxResponse 转换交易回执
func NewTxResponse(r *registry.Receipt) *TxResponse {
	if r == nil {
		return nil
	}
	return &TxResponse{TxHash: r.TxHash.Hex(), BlockNumber: r.BlockNumber, GasUsed: r.GasUsed}
}

// PriceRequest mint/list 请求体
type PriceRequest struct {
	Price string `json:"price" form:"price" binding:"required"`
}

// BuyRequest buy 请求体，省略 priceWei 时使用挂单价格
type BuyRequest struct {
	PriceWei string `json:"priceWei" form:"priceWei"`
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
