// Package market holds the marketplace view state and the mint/buy/list workflow.
package market

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/weisyn/nftmarket/client/core/notify"
	"github.com/weisyn/nftmarket/client/core/pinning"
	"github.com/weisyn/nftmarket/client/core/price"
	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/client/core/wallet"
	corelog "github.com/weisyn/nftmarket/internal/core/infrastructure/log"
	logInterface "github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
)

// Registry 控制器使用的注册合约能力（*registry.Client 满足此接口）
type Registry interface {
	Mint(ctx context.Context, session *wallet.Session, uri string, price *big.Int) (*registry.Receipt, error)
	Buy(ctx context.Context, session *wallet.Session, id, price *big.Int) (*registry.Receipt, error)
	List(ctx context.Context, session *wallet.Session, id, price *big.Int) (*registry.Receipt, error)
	ListAll(ctx context.Context) ([]registry.Token, error)
}

// Connector 建立钱包会话
type Connector interface {
	Connect(ctx context.Context) (*wallet.Session, error)
}

// Options 控制器依赖
type Options struct {
	Registry  Registry
	Uploader  pinning.Uploader
	Gateway   pinning.Gateway
	Connector Connector
	Hub       *notify.Hub
	Metrics   *Metrics
	Logger    logInterface.Logger
}

// Controller 持有钱包会话与视图状态，驱动每个操作并在确认后重新同步
type Controller struct {
	registry  Registry
	uploader  pinning.Uploader
	gateway   pinning.Gateway
	connector Connector
	hub       *notify.Hub
	metrics   *Metrics
	logger    logInterface.Logger

	view *ViewState

	mu      sync.RWMutex
	session *wallet.Session
	actions []*Action
}

// NewController 创建控制器
func NewController(opts Options) *Controller {
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}
	if opts.Logger == nil {
		opts.Logger = corelog.NewNop()
	}
	return &Controller{
		registry:  opts.Registry,
		uploader:  opts.Uploader,
		gateway:   opts.Gateway,
		connector: opts.Connector,
		hub:       opts.Hub,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		view:      NewViewState(),
	}
}

// View 返回视图状态
func (c *Controller) View() *ViewState {
	return c.view
}

// Session 返回当前钱包会话，未连接时为 nil
func (c *Controller) Session() *wallet.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Actions 返回历史操作（最新在后）
func (c *Controller) Actions() []Action {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Action, len(c.actions))
	for i, a := range c.actions {
		out[i] = *a
	}
	return out
}

// ========== 操作 ==========

// Connect 建立钱包会话并做一次初始同步
//
// 同步失败不影响连接结果，只会发出 QueryFailed 通知。
func (c *Controller) Connect(ctx context.Context) (*wallet.Session, error) {
	a := c.begin(ActionConnect, "")

	session, err := c.connector.Connect(ctx)
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrProviderUnavailable):
			c.finish(a, StateFailed, err)
			c.notify(notify.LevelWarning, ActionConnect, "No wallet provider found. Configure a keystore or mnemonic to connect.")
		default:
			c.finish(a, StateRejected, err)
			c.notify(notify.LevelError, ActionConnect, fmt.Sprintf("Wallet connection rejected: %v", err))
		}
		return nil, err
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	c.view.setAccount(session.Account)

	c.transition(a, StateConfirmed, "", nil)
	c.notify(notify.LevelSuccess, ActionConnect, fmt.Sprintf("Wallet connected: %s", session.Account.Hex()))

	if _, err := c.Refresh(ctx); err != nil {
		c.finish(a, StateConfirmed, nil)
		return session, nil
	}
	c.finish(a, StateResynced, nil)
	return session, nil
}

// SelectFile 暂存待上传文件，替换之前的选择
func (c *Controller) SelectFile(name string, data []byte) {
	c.view.Stage(StagedFile{Name: name, Data: data})
	c.publishView()
}

// Mint 上传暂存文件并以显示价格铸造代币
//
// 没有会话或没有暂存文件时不做任何事，返回 (nil, nil)。
func (c *Controller) Mint(ctx context.Context, displayPrice string) (*registry.Receipt, error) {
	session := c.Session()
	staged := c.view.Staged()
	if session == nil || staged == nil || len(staged.Data) == 0 {
		c.logger.Debugf("mint skipped: connected=%t staged=%t", session != nil, staged != nil && len(staged.Data) > 0)
		return nil, nil
	}

	wei, err := price.ParseEther(displayPrice)
	if err != nil {
		c.notify(notify.LevelError, ActionMint, fmt.Sprintf("Invalid price %q: %v", displayPrice, err))
		return nil, err
	}

	a := c.begin(ActionMint, "")

	ref, err := c.uploader.Upload(ctx, staged.Name, staged.Data)
	if err != nil {
		c.finish(a, StateFailed, err)
		c.notify(notify.LevelError, ActionMint, fmt.Sprintf("Error uploading file: %v", err))
		return nil, err
	}
	uri := c.gateway.Resolve(ref)
	c.logger.Infof("uploaded %s as %s", staged.Name, uri)

	c.transition(a, StateSubmitted, "", nil)
	rcpt, err := c.registry.Mint(ctx, session, uri, wei)
	return c.settle(ctx, a, rcpt, err, "NFT minted successfully")
}

// Buy 以挂单价格购买代币，priceWei 原样作为转账金额
//
// 没有会话时不做任何事，返回 (nil, nil)。
func (c *Controller) Buy(ctx context.Context, id, priceWei *big.Int) (*registry.Receipt, error) {
	session := c.Session()
	if session == nil {
		c.logger.Debugf("buy skipped: not connected")
		return nil, nil
	}
	if id == nil || priceWei == nil || priceWei.Sign() < 0 {
		return nil, fmt.Errorf("%w: token id and price are required", price.ErrInvalidAmount)
	}

	a := c.begin(ActionBuy, id.String())
	c.transition(a, StateSubmitted, "", nil)
	rcpt, err := c.registry.Buy(ctx, session, id, priceWei)
	return c.settle(ctx, a, rcpt, err, "NFT bought successfully")
}

// List 以新的显示价格重新挂单
//
// 没有会话时不做任何事，返回 (nil, nil)。
func (c *Controller) List(ctx context.Context, id *big.Int, displayPrice string) (*registry.Receipt, error) {
	session := c.Session()
	if session == nil {
		c.logger.Debugf("list skipped: not connected")
		return nil, nil
	}
	if id == nil {
		return nil, fmt.Errorf("%w: token id is required", price.ErrInvalidAmount)
	}

	wei, err := price.ParseEther(displayPrice)
	if err != nil {
		c.notify(notify.LevelError, ActionList, fmt.Sprintf("Invalid price %q: %v", displayPrice, err))
		return nil, err
	}

	a := c.begin(ActionList, id.String())
	c.transition(a, StateSubmitted, "", nil)
	rcpt, err := c.registry.List(ctx, session, id, wei)
	return c.settle(ctx, a, rcpt, err, "NFT listed successfully")
}

// Refresh 重新读取全部代币并整体替换视图中的集合
//
// 失败时视图保持不变，并发出错误通知。
func (c *Controller) Refresh(ctx context.Context) ([]registry.Token, error) {
	start := time.Now()
	tokens, err := c.registry.ListAll(ctx)
	c.metrics.duration.WithLabelValues(string(ActionRefresh)).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.actions.WithLabelValues(string(ActionRefresh), string(StateFailed)).Inc()
		c.logger.Errorf("refresh failed: %v", err)
		c.notify(notify.LevelError, ActionRefresh, fmt.Sprintf("Could not load tokens: %v", err))
		return nil, err
	}

	c.view.ReplaceTokens(tokens)
	c.metrics.actions.WithLabelValues(string(ActionRefresh), string(StateResynced)).Inc()
	c.metrics.tokens.Set(float64(len(tokens)))
	c.publishView()
	return tokens, nil
}

// OnActivity 发布合约事件并重新同步
//
// 事件只作为同步触发器，视图内容始终来自 listAll。
func (c *Controller) OnActivity(ctx context.Context, a registry.Activity) {
	c.logger.Infof("activity %s token=%v tx=%s", a.Kind, a.TokenID, a.TxHash.Hex())
	if c.hub != nil {
		c.hub.Publish(notify.TopicActivity, a)
	}
	_, _ = c.Refresh(ctx)
}

// settle 处理交易结果：确认后恰好同步一次，拒绝与失败不触发同步
func (c *Controller) settle(ctx context.Context, a *Action, rcpt *registry.Receipt, err error, success string) (*registry.Receipt, error) {
	if err != nil {
		if errors.Is(err, registry.ErrTransactionRejected) {
			c.finish(a, StateRejected, err)
			c.notify(notify.LevelError, a.Kind, fmt.Sprintf("Transaction rejected: %s was not signed", a.Kind))
		} else {
			c.finish(a, StateFailed, err)
			c.notify(notify.LevelError, a.Kind, fmt.Sprintf("Transaction failed: %v", err))
		}
		return nil, err
	}

	c.transition(a, StateConfirmed, rcpt.TxHash.Hex(), nil)
	c.notify(notify.LevelSuccess, a.Kind, success)

	if _, err := c.Refresh(ctx); err != nil {
		// 交易已确认，同步失败只影响视图
		c.finish(a, StateConfirmed, nil)
		return rcpt, nil
	}
	c.finish(a, StateResynced, nil)
	return rcpt, nil
}

// ========== 内部 ==========

func (c *Controller) begin(kind ActionKind, tokenID string) *Action {
	now := time.Now()
	a := &Action{
		ID:        uuid.NewString(),
		Kind:      kind,
		State:     StateIdle,
		TokenID:   tokenID,
		StartedAt: now,
		UpdatedAt: now,
	}

	c.mu.Lock()
	c.actions = append(c.actions, a)
	if len(c.actions) > maxActions {
		c.actions = c.actions[len(c.actions)-maxActions:]
	}
	c.mu.Unlock()

	c.logger.Debugf("action %s %s started", kind, a.ID)
	return a
}

func (c *Controller) transition(a *Action, state ActionState, txHash string, err error) {
	c.mu.Lock()
	a.State = state
	a.UpdatedAt = time.Now()
	if txHash != "" {
		a.TxHash = txHash
	}
	if err != nil {
		a.Error = err.Error()
	}
	c.mu.Unlock()
}

// finish 记录终态（或确认但未能同步）并更新指标
func (c *Controller) finish(a *Action, state ActionState, err error) {
	c.transition(a, state, "", err)
	c.metrics.actions.WithLabelValues(string(a.Kind), string(state)).Inc()
	c.metrics.duration.WithLabelValues(string(a.Kind)).Observe(time.Since(a.StartedAt).Seconds())

	if err != nil {
		c.logger.Warnf("action %s %s ended %s: %v", a.Kind, a.ID, state, err)
	} else {
		c.logger.Infof("action %s %s ended %s", a.Kind, a.ID, state)
	}
}

func (c *Controller) notify(level notify.Level, kind ActionKind, msg string) {
	if c.hub != nil {
		c.hub.Notify(level, string(kind), msg)
	}
}

func (c *Controller) publishView() {
	if c.hub != nil {
		c.hub.Publish(notify.TopicView, c.view.Snapshot())
	}
}
