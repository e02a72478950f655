// Package notify publishes one-line user notifications and view updates.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/event"
)

// Level 通知级别
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// 事件主题
const (
	TopicNotification event.EventType = "market.notification"
	TopicView         event.EventType = "market.view"
	TopicActivity     event.EventType = "market.activity"
)

// Notification 一条用户通知
type Notification struct {
	ID      string    `json:"id"`
	Level   Level     `json:"level"`
	Action  string    `json:"action"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Hub 在事件总线之上为多个订阅者分发消息
//
// 每个主题只向总线注册一个分发函数，订阅者按 id 管理，
// 取消订阅不依赖函数指针比较。
type Hub struct {
	bus event.EventBus

	mu   sync.RWMutex
	subs map[event.EventType]map[string]func(interface{})
}

// NewHub 创建消息中心并在总线上注册分发函数
func NewHub(bus event.EventBus) (*Hub, error) {
	h := &Hub{
		bus:  bus,
		subs: make(map[event.EventType]map[string]func(interface{})),
	}
	for _, topic := range []event.EventType{TopicNotification, TopicView, TopicActivity} {
		topic := topic
		h.subs[topic] = make(map[string]func(interface{}))
		if err := bus.Subscribe(topic, func(payload interface{}) { h.dispatch(topic, payload) }); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hub) dispatch(topic event.EventType, payload interface{}) {
	h.mu.RLock()
	fns := make([]func(interface{}), 0, len(h.subs[topic]))
	for _, fn := range h.subs[topic] {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(payload)
	}
}

// Subscribe 订阅主题，返回取消函数
func (h *Hub) Subscribe(topic event.EventType, fn func(payload interface{})) (cancel func()) {
	id := uuid.NewString()

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[string]func(interface{}))
	}
	h.subs[topic][id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs[topic], id)
		h.mu.Unlock()
	}
}

// Publish 发布任意负载
func (h *Hub) Publish(topic event.EventType, payload interface{}) {
	h.bus.Publish(topic, payload)
}

// Notify 发布一条通知并返回它
func (h *Hub) Notify(level Level, action, message string) Notification {
	n := Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Action:  action,
		Message: message,
		Time:    time.Now(),
	}
	h.bus.Publish(TopicNotification, n)
	return n
}

// OnNotification 订阅通知
func (h *Hub) OnNotification(fn func(Notification)) (cancel func()) {
	return h.Subscribe(TopicNotification, func(p interface{}) {
		if n, ok := p.(Notification); ok {
			fn(n)
		}
	})
}
