// Package websocket pushes notifications and view updates to connected pages.
package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/weisyn/nftmarket/client/core/notify"
	"github.com/weisyn/nftmarket/internal/api/websocket/types"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

// ViewFunc 返回当前完整视图
type ViewFunc func() interface{}

// Server WebSocket 推送服务
type Server struct {
	logger   *zap.Logger
	view     ViewFunc
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client
	cancels []func()
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan types.Message
	once sync.Once
}

// NewServer 创建推送服务并订阅消息中心
func NewServer(logger *zap.Logger, hub *notify.Hub, view ViewFunc) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger: logger,
		view:   view,
		upgrader: websocket.Upgrader{
			// 仅本地服务，页面与接口同源
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[string]*client),
	}

	s.cancels = append(s.cancels,
		hub.Subscribe(notify.TopicNotification, func(p interface{}) {
			s.broadcast(types.Message{Type: types.TypeNotification, Data: p})
		}),
		hub.Subscribe(notify.TopicView, func(interface{}) {
			s.broadcast(types.Message{Type: types.TypeView, Data: s.view()})
		}),
		hub.Subscribe(notify.TopicActivity, func(p interface{}) {
			s.broadcast(types.Message{Type: types.TypeActivity, Data: p})
		}),
	)
	return s
}

// HandleWebSocket 升级连接，先推送一次当前视图
func (s *Server) HandleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("Failed to upgrade WebSocket connection", zap.Error(err))
		return
	}

	cl := &client{id: uuid.NewString(), conn: conn, send: make(chan types.Message, sendBuffer)}
	cl.send <- types.Message{Type: types.TypeView, Data: s.view()}

	s.mu.Lock()
	s.clients[cl.id] = cl
	s.mu.Unlock()

	s.logger.Debug("WebSocket connection established",
		zap.String("client", cl.id),
		zap.String("remote_addr", conn.RemoteAddr().String()))

	go s.writePump(cl)
	s.readPump(cl)
}

// Clients 当前连接数
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close 取消订阅并断开所有连接
func (s *Server) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}

	s.mu.Lock()
	clients := s.clients
	s.clients = make(map[string]*client)
	s.mu.Unlock()

	for _, cl := range clients {
		s.drop(cl)
	}
}

func (s *Server) broadcast(msg types.Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, cl := range s.clients {
		select {
		case cl.send <- msg:
		default:
			s.logger.Warn("WebSocket client too slow, message dropped",
				zap.String("client", cl.id),
				zap.String("type", msg.Type))
		}
	}
}

// readPump 只用于检测断开与处理 pong
func (s *Server) readPump(cl *client) {
	defer s.remove(cl)

	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("WebSocket connection closed unexpectedly", zap.Error(err))
			}
			return
		}
	}
}

func (s *Server) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case msg, open := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !open {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteJSON(msg); err != nil {
				s.logger.Debug("WebSocket write failed", zap.String("client", cl.id), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) remove(cl *client) {
	s.mu.Lock()
	delete(s.clients, cl.id)
	s.mu.Unlock()
	s.drop(cl)
	s.logger.Debug("WebSocket connection closed", zap.String("client", cl.id))
}

func (s *Server) drop(cl *client) {
	cl.once.Do(func() { close(cl.send) })
}
