// Package handlers provides the HTTP handlers of the local marketplace view.
package handlers

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/nftmarket/client/core/market"
	"github.com/weisyn/nftmarket/internal/api/http/middleware"
	"github.com/weisyn/nftmarket/internal/api/http/types"
	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/nftmarket/pkg/utils"
)

// maxUploadSize 单个暂存文件的上限
const maxUploadSize = 100 << 20

// MarketHandlers 市场视图 API
type MarketHandlers struct {
	ctrl   *market.Controller
	logger log.Logger
}

// NewMarketHandlers 创建市场处理器
func NewMarketHandlers(ctrl *market.Controller, logger log.Logger) *MarketHandlers {
	return &MarketHandlers{ctrl: ctrl, logger: logger}
}

// RegisterRoutes 注册 /api/v1 下的路由
func (h *MarketHandlers) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/session", h.GetSession)
	v1.POST("/connect", h.Connect)
	v1.GET("/tokens", h.GetTokens)
	v1.POST("/refresh", h.Refresh)
	v1.POST("/files", h.UploadFile)
	v1.POST("/mint", h.Mint)
	v1.POST("/tokens/:id/buy", h.Buy)
	v1.POST("/tokens/:id/list", h.List)
	v1.GET("/actions", h.GetActions)
}

// BuildView 构造当前完整视图
func BuildView(ctrl *market.Controller) types.View {
	snap := ctrl.View().Snapshot()
	addr, _ := ctrl.View().Account()

	v := types.View{
		Session:  sessionInfo(ctrl),
		Tokens:   types.NewTokens(snap.Tokens, addr),
		SyncedAt: snap.SyncedAt,
	}
	if snap.Staged != nil {
		v.Staged = &types.Staged{Name: snap.Staged.Name, Size: snap.Staged.Size, ContentType: snap.Staged.ContentType}
	}
	return v
}

func sessionInfo(ctrl *market.Controller) types.Session {
	s := ctrl.Session()
	if s == nil {
		return types.Session{}
	}
	out := types.Session{
		Connected: true,
		Account:   s.Account.Hex(),
		Provider:  string(s.Provider),
	}
	if s.ChainID != nil {
		out.ChainID = s.ChainID.String()
	}
	return out
}

// ========== 查询 ==========

// GetSession 返回会话信息
func (h *MarketHandlers) GetSession(c *gin.Context) {
	ok(c, sessionInfo(h.ctrl), "")
}

// GetTokens 返回视图中的代币（不触发查询）
func (h *MarketHandlers) GetTokens(c *gin.Context) {
	ok(c, BuildView(h.ctrl).Tokens, "")
}

// GetActions 返回操作历史
func (h *MarketHandlers) GetActions(c *gin.Context) {
	ok(c, h.ctrl.Actions(), "")
}

// Refresh 重新同步代币列表
func (h *MarketHandlers) Refresh(c *gin.Context) {
	if _, err := h.ctrl.Refresh(detach(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, BuildView(h.ctrl).Tokens, "")
}

// ========== 操作 ==========

// Connect 连接钱包（服务端配置的提供者）
func (h *MarketHandlers) Connect(c *gin.Context) {
	if _, err := h.ctrl.Connect(detach(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, sessionInfo(h.ctrl), "Wallet connected")
}

// UploadFile 暂存 multipart 字段 file
func (h *MarketHandlers) UploadFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		abort(c, http.StatusBadRequest, types.ErrInvalidArgument, "multipart field \"file\" is required")
		return
	}
	if fh.Size > maxUploadSize {
		abort(c, http.StatusRequestEntityTooLarge, types.ErrInvalidArgument, fmt.Sprintf("file exceeds %d bytes", maxUploadSize))
		return
	}

	f, err := fh.Open()
	if err != nil {
		abort(c, http.StatusBadRequest, types.ErrInvalidArgument, err.Error())
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		abort(c, http.StatusBadRequest, types.ErrInvalidArgument, err.Error())
		return
	}

	h.ctrl.SelectFile(fh.Filename, data)
	staged := BuildView(h.ctrl).Staged
	msg := "File staged"
	if staged != nil && !utils.IsMediaType(staged.ContentType) {
		msg = fmt.Sprintf("File staged (%s is not an image, audio or video type)", staged.ContentType)
	}
	ok(c, staged, msg)
}

// Mint 上传暂存文件并铸造
func (h *MarketHandlers) Mint(c *gin.Context) {
	var req types.PriceRequest
	if err := c.ShouldBind(&req); err != nil {
		abort(c, http.StatusBadRequest, types.ErrInvalidArgument, "price is required")
		return
	}
	if !h.requireSession(c) {
		return
	}
	if staged := h.ctrl.View().Staged(); staged == nil || len(staged.Data) == 0 {
		abort(c, http.StatusBadRequest, types.ErrInvalidArgument, "no file staged")
		return
	}

	rcpt, err := h.ctrl.Mint(detach(c), req.Price)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, types.NewTxResponse(rcpt), "NFT minted successfully")
}

// Buy 以挂单价格购买
func (h *MarketHandlers) Buy(c *gin.Context) {
	id, good := tokenID(c)
	if !good {
		return
	}
	var req types.BuyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBind(&req); err != nil {
			abort(c, http.StatusBadRequest, types.ErrInvalidArgument, err.Error())
			return
		}
	}
	if !h.requireSession(c) {
		return
	}

	priceWei, good := h.buyPrice(c, id, req.PriceWei)
	if !good {
		return
	}

	rcpt, err := h.ctrl.Buy(detach(c), id, priceWei)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, types.NewTxResponse(rcpt), "NFT bought successfully")
}

// List 以新价格重新挂单
func (h *MarketHandlers) List(c *gin.Context) {
	id, good := tokenID(c)
	if !good {
		return
	}
	var req types.PriceRequest
	if err := c.ShouldBind(&req); err != nil {
		abort(c, http.StatusBadRequest, types.ErrInvalidArgument, "price is required")
		return
	}
	if !h.requireSession(c) {
		return
	}

	rcpt, err := h.ctrl.List(detach(c), id, req.Price)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, types.NewTxResponse(rcpt), "NFT listed successfully")
}

// ========== 辅助函数 ==========

func (h *MarketHandlers) requireSession(c *gin.Context) bool {
	if h.ctrl.Session() == nil {
		abort(c, http.StatusConflict, types.ErrNotConnected, "wallet is not connected")
		return false
	}
	return true
}

// buyPrice 显式价格优先，否则取视图中的挂单价格
func (h *MarketHandlers) buyPrice(c *gin.Context, id *big.Int, explicit string) (*big.Int, bool) {
	if explicit != "" {
		v, good := new(big.Int).SetString(explicit, 10)
		if !good || v.Sign() < 0 {
			abort(c, http.StatusBadRequest, types.ErrInvalidArgument, fmt.Sprintf("invalid priceWei %q", explicit))
			return nil, false
		}
		return v, true
	}
	t, found := h.ctrl.View().Token(id.String())
	if !found || t.Price == nil {
		abort(c, http.StatusNotFound, types.ErrNotFound, fmt.Sprintf("token %s is not in the current view", id))
		return nil, false
	}
	return t.Price, true
}

func tokenID(c *gin.Context) (*big.Int, bool) {
	raw := c.Param("id")
	id, good := new(big.Int).SetString(raw, 10)
	if !good || id.Sign() < 0 {
		abort(c, http.StatusBadRequest, types.ErrInvalidArgument, fmt.Sprintf("invalid token id %q", raw))
		return nil, false
	}
	return id, true
}

// detach 操作运行至完成，不随请求取消
func detach(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func ok(c *gin.Context, data interface{}, msg string) {
	c.JSON(http.StatusOK, types.NewSuccessResponse(data).
		WithMessage(msg).
		WithRequestID(middleware.GetRequestID(c)))
}

func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, types.NewErrorResponse(code, msg, nil).
		WithRequestID(middleware.GetRequestID(c)))
}

func fail(c *gin.Context, err error) {
	status, code := ErrorStatus(err)
	_ = c.Error(err)
	abort(c, status, code, err.Error())
}
