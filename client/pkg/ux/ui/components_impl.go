package ui

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pterm/pterm"
)

// components 基于 pterm 的组件实现
type components struct {
	logger Logger
	theme  *ThemeConfig
}

var _ Components = (*components)(nil)

// NewComponents 创建UI组件实例，logger 为 nil 时不记录日志
func NewComponents(logger Logger) Components {
	if logger == nil {
		logger = NoopLogger()
	}
	return &components{
		logger: logger,
		theme:  GetDefaultTheme(),
	}
}

// ShowTable 显示表格
func (c *components) ShowTable(title string, data [][]string) error {
	if len(data) == 0 {
		return errors.New("table data is empty")
	}
	if title != "" {
		pterm.DefaultSection.Println(title)
	}
	if err := pterm.DefaultTable.WithHasHeader(true).WithData(data).Render(); err != nil {
		c.logger.Warnf("render table %q: %v", title, err)
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// ShowKeyValuePairs 显示键值对
func (c *components) ShowKeyValuePairs(title string, pairs map[string]string) error {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := make([][]string, 0, len(keys))
	for _, k := range keys {
		data = append(data, []string{pterm.Bold.Sprint(k), pairs[k]})
	}

	if title != "" {
		pterm.DefaultSection.Println(title)
	}
	if len(data) == 0 {
		pterm.Println("(empty)")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader(false).WithData(data).Render()
}

// ShowConfirmDialog 显示确认对话框
func (c *components) ShowConfirmDialog(title, message string, defaultValue bool) (bool, error) {
	if title != "" {
		pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
			WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
			Println(title)
	}

	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText(message).
		WithDefaultValue(defaultValue).
		Show()
	if err != nil {
		return false, fmt.Errorf("confirm dialog: %w", err)
	}
	return result, nil
}

// ShowSpinner 创建加载动画
func (c *components) ShowSpinner(message string) Spinner {
	return &spinnerImpl{
		message: message,
		theme:   c.theme,
	}
}

func (c *components) ShowSuccess(message string) error {
	pterm.Success.Println(message)
	return nil
}

func (c *components) ShowError(message string) error {
	pterm.Error.Println(message)
	return nil
}

func (c *components) ShowWarning(message string) error {
	pterm.Warning.Println(message)
	return nil
}

func (c *components) ShowInfo(message string) error {
	pterm.Info.Println(message)
	return nil
}

// ShowPanel 显示带边框的面板
func (c *components) ShowPanel(title, content string) error {
	box := pterm.DefaultBox
	if title != "" {
		box = *box.WithTitle(title).WithTitleTopLeft()
	}
	box.Println(content)
	return nil
}

func (c *components) ShowHeader(text string) error {
	pterm.DefaultHeader.WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgLightBlue)).
		Println(text)
	return nil
}

func (c *components) ShowSection(text string) error {
	pterm.DefaultSection.Println(text)
	return nil
}

// ========== 加载动画 ==========

// spinnerImpl 加载动画实现
type spinnerImpl struct {
	message string
	spinner *pterm.SpinnerPrinter
	theme   *ThemeConfig
}

func (s *spinnerImpl) Start() error {
	var err error
	s.spinner, err = pterm.DefaultSpinner.
		WithText(s.message).
		WithStyle(pterm.NewStyle(s.theme.PrimaryColor)).
		WithRemoveWhenDone(false).
		Start()
	return err
}

func (s *spinnerImpl) UpdateText(text string) error {
	if s.spinner == nil {
		return errors.New("spinner not started")
	}
	s.message = text
	s.spinner.UpdateText(text)
	return nil
}

func (s *spinnerImpl) Stop() error {
	if s.spinner == nil {
		return nil
	}
	return s.spinner.Stop()
}

func (s *spinnerImpl) Success(message string) error {
	if s.spinner == nil {
		return errors.New("spinner not started")
	}
	s.spinner.Success(message)
	return nil
}

func (s *spinnerImpl) Fail(message string) error {
	if s.spinner == nil {
		return errors.New("spinner not started")
	}
	s.spinner.Fail(message)
	return nil
}
