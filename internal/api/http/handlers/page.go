package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weisyn/nftmarket/client/core/market"
	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// PageHandler 单页视图
type PageHandler struct {
	ctrl   *market.Controller
	logger log.Logger
}

// NewPageHandler 创建页面处理器
func NewPageHandler(ctrl *market.Controller, logger log.Logger) *PageHandler {
	return &PageHandler{ctrl: ctrl, logger: logger}
}

// Index 渲染当前视图
func (h *PageHandler) Index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pageTemplate.Execute(c.Writer, BuildView(h.ctrl)); err != nil {
		h.logger.Errorf("render page: %v", err)
	}
}
