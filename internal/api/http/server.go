package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weisyn/nftmarket/client/core/market"
	"github.com/weisyn/nftmarket/client/core/notify"
	"github.com/weisyn/nftmarket/internal/api/http/handlers"
	"github.com/weisyn/nftmarket/internal/api/http/middleware"
	"github.com/weisyn/nftmarket/internal/api/websocket"
	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
)

// DefaultListenAddr 默认监听地址
const DefaultListenAddr = "127.0.0.1:8088"

// Options HTTP 服务器配置
type Options struct {
	ListenAddr string
	Registry   *prometheus.Registry // 为 nil 时不暴露 /metrics
}

// Server 本地单页视图与 JSON API
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	opts       Options
	logger     log.Logger
	ctrl       *market.Controller
	ws         *websocket.Server
	addr       string
}

// NewServer 创建服务器并注册路由
func NewServer(opts Options, ctrl *market.Controller, hub *notify.Hub, logger log.Logger) *Server {
	if opts.ListenAddr == "" {
		opts.ListenAddr = DefaultListenAddr
	}

	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger))
	if opts.Registry != nil {
		router.Use(middleware.NewMetrics(opts.Registry).Middleware())
	}

	s := &Server{
		router: router,
		opts:   opts,
		logger: logger,
		ctrl:   ctrl,
		ws: websocket.NewServer(logger.GetZapLogger(), hub, func() interface{} {
			return handlers.BuildView(ctrl)
		}),
	}
	s.setupRoutes()
	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	page := handlers.NewPageHandler(s.ctrl, s.logger)
	s.router.GET("/", page.Index)

	v1 := s.router.Group("/api/v1")
	handlers.NewMarketHandlers(s.ctrl, s.logger).RegisterRoutes(v1)

	s.router.GET("/ws", s.ws.HandleWebSocket)
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if s.opts.Registry != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{})))
	}
}

// Handler 返回路由（测试使用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr 实际监听地址，启动前为空
func (s *Server) Addr() string {
	return s.addr
}

// Start 监听并在后台提供服务
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.ListenAddr, err)
	}
	s.addr = ln.Addr().String()

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("HTTP server failed: %v", err)
		}
	}()

	s.logger.Infof("HTTP view listening on http://%s/", s.addr)
	return nil
}

// Stop 关闭推送连接与服务器
func (s *Server) Stop(ctx context.Context) error {
	s.ws.Close()
	if s.httpServer == nil {
		return nil
	}

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(stopCtx); err != nil {
		s.logger.Errorf("HTTP server shutdown: %v", err)
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
