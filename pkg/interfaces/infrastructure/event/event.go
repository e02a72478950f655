// Package event 定义进程内事件总线接口
package event

// EventType 事件主题
type EventType string

// EventBus 进程内事件总线
type EventBus interface {
	// Subscribe 同步订阅，handler 在 Publish 的调用方 goroutine 中执行
	Subscribe(eventType EventType, handler interface{}) error

	// SubscribeAsync 异步订阅；transactional 为 true 时同一 handler 串行执行
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error

	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error

	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})

	// HasCallback 是否存在订阅者
	HasCallback(eventType EventType) bool

	// WaitAsync 等待异步处理完成
	WaitAsync()
}
