package market

import (
	"time"
)

// ActionState 一次变更操作的状态
type ActionState string

const (
	StateIdle      ActionState = "idle"
	StateSubmitted ActionState = "submitted"
	StateConfirmed ActionState = "confirmed"
	StateResynced  ActionState = "resynced"
	StateRejected  ActionState = "rejected"
	StateFailed    ActionState = "failed"
)

// Terminal 是否为终态
func (s ActionState) Terminal() bool {
	switch s {
	case StateResynced, StateRejected, StateFailed:
		return true
	}
	return false
}

// ActionKind 操作类型
type ActionKind string

const (
	ActionConnect ActionKind = "connect"
	ActionMint    ActionKind = "mint"
	ActionBuy     ActionKind = "buy"
	ActionList    ActionKind = "list"
	ActionRefresh ActionKind = "refresh"
)

// Action 一次操作的记录
type Action struct {
	ID        string      `json:"id"`
	Kind      ActionKind  `json:"kind"`
	State     ActionState `json:"state"`
	TokenID   string      `json:"token_id,omitempty"`
	TxHash    string      `json:"tx_hash,omitempty"`
	Error     string      `json:"error,omitempty"`
	StartedAt time.Time   `json:"started_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// maxActions 保留的历史操作数量
const maxActions = 100
