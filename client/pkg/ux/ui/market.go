package ui

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pterm/pterm"

	"github.com/weisyn/nftmarket/client/core/notify"
	"github.com/weisyn/nftmarket/client/core/price"
	"github.com/weisyn/nftmarket/client/core/registry"
)

// uriWidth 表格中 URI 列的最大宽度
const uriWidth = 48

// TokenRows 生成代币表格数据（含表头）
//
// account 非零时，由该账户创建的代币标记为 yours。
func TokenRows(tokens []registry.Token, account common.Address) [][]string {
	rows := make([][]string, 0, len(tokens)+1)
	rows = append(rows, []string{"ID", "Price (ETH)", "Creator", "URI", ""})

	for _, t := range tokens {
		mark := ""
		if account != (common.Address{}) && t.Creator == account {
			mark = "yours"
		}
		id := "-"
		if t.ID != nil {
			id = t.ID.String()
		}
		rows = append(rows, []string{
			id,
			price.FormatEther(t.Price),
			ShortAddress(t.Creator.Hex()),
			TruncateString(t.URI, uriWidth),
			mark,
		})
	}
	return rows
}

// ShowTokens 显示代币列表
func ShowTokens(c Components, tokens []registry.Token, account common.Address) error {
	if len(tokens) == 0 {
		return c.ShowInfo("No tokens in the registry yet")
	}
	return c.ShowTable(fmt.Sprintf("Tokens (%d)", len(tokens)), TokenRows(tokens, account))
}

// ShowNotification 按级别输出一条通知
func ShowNotification(c Components, n notify.Notification) error {
	switch n.Level {
	case notify.LevelSuccess:
		return c.ShowSuccess(n.Message)
	case notify.LevelWarning:
		return c.ShowWarning(n.Message)
	case notify.LevelError:
		return c.ShowError(n.Message)
	default:
		return c.ShowInfo(n.Message)
	}
}

// FormatActivity 单行描述一个合约事件
func FormatActivity(a registry.Activity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", a.Block, pterm.Bold.Sprint(string(a.Kind)))
	if a.TokenID != nil {
		fmt.Fprintf(&b, " token %s", a.TokenID)
	}
	if a.Account != (common.Address{}) {
		fmt.Fprintf(&b, " by %s", ShortAddress(a.Account.Hex()))
	}
	if a.Price != nil {
		fmt.Fprintf(&b, " for %s ETH", price.FormatEther(a.Price))
	}
	return b.String()
}

// ShowAccount 显示会话面板
func ShowAccount(c Components, account common.Address, chainID string, provider string) error {
	content := fmt.Sprintf("Account:  %s\nChain ID: %s\nProvider: %s", account.Hex(), chainID, provider)
	return c.ShowPanel("Wallet", content)
}
