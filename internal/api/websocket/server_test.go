package websocket

import (
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/nftmarket/client/core/notify"
	coreevent "github.com/weisyn/nftmarket/internal/core/infrastructure/event"
	"github.com/weisyn/nftmarket/internal/api/websocket/types"
)

func newTestServer(t *testing.T) (*Server, *notify.Hub, *websocket.Conn) {
	t.Helper()

	hub, err := notify.NewHub(coreevent.New(nil))
	require.NoError(t, err)

	var views atomic.Int32
	s := NewServer(nil, hub, func() interface{} {
		return map[string]int32{"version": views.Add(1)}
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", s.HandleWebSocket)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return s, hub, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHandleWebSocket_PushesInitialView(t *testing.T) {
	_, _, conn := newTestServer(t)

	msg := readMessage(t, conn)
	assert.Equal(t, types.TypeView, msg["type"])
	assert.Equal(t, float64(1), msg["data"].(map[string]interface{})["version"])
}

func TestHandleWebSocket_ForwardsHubMessages(t *testing.T) {
	s, hub, conn := newTestServer(t)
	readMessage(t, conn)

	require.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Notify(notify.LevelSuccess, "mint", "NFT minted successfully")
	msg := readMessage(t, conn)
	assert.Equal(t, types.TypeNotification, msg["type"])
	data := msg["data"].(map[string]interface{})
	assert.Equal(t, "NFT minted successfully", data["message"])
	assert.Equal(t, "success", data["level"])

	hub.Publish(notify.TopicView, struct{}{})
	msg = readMessage(t, conn)
	assert.Equal(t, types.TypeView, msg["type"])
	assert.Equal(t, float64(2), msg["data"].(map[string]interface{})["version"])
}

func TestClose_DisconnectsClients(t *testing.T) {
	s, hub, conn := newTestServer(t)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, 10*time.Millisecond)

	s.Close()
	assert.Equal(t, 0, s.Clients())

	// 关闭后不再转发
	hub.Notify(notify.LevelInfo, "refresh", "ignored")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
