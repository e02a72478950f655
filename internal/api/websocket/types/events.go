// Package types provides WebSocket message type definitions.
package types

// 推送消息类型
const (
	TypeNotification = "notification"
	TypeView         = "view"
	TypeActivity     = "activity"
)

// Message 推送给浏览器的消息
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
