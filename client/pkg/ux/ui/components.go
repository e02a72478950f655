// Package ui 提供终端 UI 组件库
package ui

import (
	"github.com/pterm/pterm"
)

// Components UI组件接口
type Components interface {
	// === 数据展示组件 ===

	// ShowTable 显示表格数据，第一行为表头
	ShowTable(title string, data [][]string) error

	// ShowKeyValuePairs 显示键值对（按键排序）
	ShowKeyValuePairs(title string, pairs map[string]string) error

	// === 交互组件 ===

	// ShowConfirmDialog 显示确认对话框
	ShowConfirmDialog(title, message string, defaultValue bool) (bool, error)

	// === 进度反馈组件 ===

	// ShowSpinner 创建加载动画（需调用 Start）
	ShowSpinner(message string) Spinner

	// === 状态显示组件 ===

	ShowSuccess(message string) error
	ShowError(message string) error
	ShowWarning(message string) error
	ShowInfo(message string) error

	// === 面板和布局组件 ===

	ShowPanel(title, content string) error
	ShowHeader(text string) error
	ShowSection(text string) error
}

// Spinner 加载动画接口
type Spinner interface {
	Start() error
	UpdateText(text string) error
	Stop() error
	// Success 以成功状态停止
	Success(message string) error
	// Fail 以失败状态停止
	Fail(message string) error
}

// ThemeConfig 主题配置
type ThemeConfig struct {
	PrimaryColor   pterm.Color // 主色调
	SecondaryColor pterm.Color // 辅助色
	SuccessColor   pterm.Color // 成功色
	WarningColor   pterm.Color // 警告色
	ErrorColor     pterm.Color // 错误色
	InfoColor      pterm.Color // 信息色
}

// GetDefaultTheme 获取默认主题配置
func GetDefaultTheme() *ThemeConfig {
	return &ThemeConfig{
		PrimaryColor:   pterm.FgLightBlue,
		SecondaryColor: pterm.FgLightCyan,
		SuccessColor:   pterm.FgGreen,
		WarningColor:   pterm.FgYellow,
		ErrorColor:     pterm.FgRed,
		InfoColor:      pterm.FgCyan,
	}
}

// TruncateString 截断字符串（按字符计）
func TruncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// ShortAddress 缩写地址 0x1234…abcd
func ShortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}
