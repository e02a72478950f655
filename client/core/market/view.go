package market

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/pkg/utils"
)

// StagedFile 待上传的文件缓冲
type StagedFile struct {
	Name        string
	Data        []byte
	ContentType string // 为空时按名称与内容检测
}

// StagedInfo 暂存文件的摘要（不含内容）
type StagedInfo struct {
	Name        string `json:"name"`
	Size        int    `json:"size"`
	ContentType string `json:"content_type"`
}

// Snapshot 视图状态的只读快照
type Snapshot struct {
	Connected bool             `json:"connected"`
	Account   string           `json:"account,omitempty"`
	Tokens    []registry.Token `json:"tokens"`
	Staged    *StagedInfo      `json:"staged,omitempty"`
	SyncedAt  time.Time        `json:"synced_at"`
}

// ViewState 唯一的状态容器
//
// tokens 只能被 ReplaceTokens 整体替换，staged 只能被 Stage 整体替换。
type ViewState struct {
	mu        sync.RWMutex
	tokens    []registry.Token
	staged    *StagedFile
	account   common.Address
	connected bool
	syncedAt  time.Time
}

// NewViewState 创建空视图状态
func NewViewState() *ViewState {
	return &ViewState{tokens: []registry.Token{}}
}

// ReplaceTokens 用新的列表整体替换代币集合
func (v *ViewState) ReplaceTokens(tokens []registry.Token) {
	cp := make([]registry.Token, len(tokens))
	copy(cp, tokens)

	v.mu.Lock()
	v.tokens = cp
	v.syncedAt = time.Now()
	v.mu.Unlock()
}

// Tokens 返回当前代币集合的副本
func (v *ViewState) Tokens() []registry.Token {
	v.mu.RLock()
	defer v.mu.RUnlock()

	cp := make([]registry.Token, len(v.tokens))
	copy(cp, v.tokens)
	return cp
}

// Token 按 id 查找代币
func (v *ViewState) Token(id string) (registry.Token, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, t := range v.tokens {
		if t.ID != nil && t.ID.String() == id {
			return t, true
		}
	}
	return registry.Token{}, false
}

// Stage 替换暂存文件
func (v *ViewState) Stage(f StagedFile) {
	data := make([]byte, len(f.Data))
	copy(data, f.Data)
	contentType := f.ContentType
	if contentType == "" {
		contentType = utils.DetectMimeType(data, f.Name)
	}

	v.mu.Lock()
	v.staged = &StagedFile{Name: f.Name, Data: data, ContentType: contentType}
	v.mu.Unlock()
}

// Staged 返回暂存文件，未选择时返回 nil
func (v *ViewState) Staged() *StagedFile {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.staged
}

func (v *ViewState) setAccount(addr common.Address) {
	v.mu.Lock()
	v.account = addr
	v.connected = true
	v.mu.Unlock()
}

// Account 返回当前账户
func (v *ViewState) Account() (common.Address, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.account, v.connected
}

// Snapshot 返回当前状态快照
func (v *ViewState) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := Snapshot{
		Connected: v.connected,
		Tokens:    make([]registry.Token, len(v.tokens)),
		SyncedAt:  v.syncedAt,
	}
	copy(s.Tokens, v.tokens)
	if v.connected {
		s.Account = v.account.Hex()
	}
	if v.staged != nil {
		s.Staged = &StagedInfo{Name: v.staged.Name, Size: len(v.staged.Data), ContentType: v.staged.ContentType}
	}
	return s
}
