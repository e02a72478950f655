package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/term"

	"github.com/weisyn/nftmarket/client/core/price"
	"github.com/weisyn/nftmarket/client/core/wallet"
)

// ErrNotInteractive 需要交互但标准输入不是终端
var ErrNotInteractive = errors.New("stdin is not a terminal")

// isTerminal 可在测试中替换
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// ConfirmApprover 在签名前通过交互确认征得用户同意
type ConfirmApprover struct {
	ui Components
}

var _ wallet.Approver = (*ConfirmApprover)(nil)

// NewConfirmApprover 创建交互式签名确认器
func NewConfirmApprover(ui Components) *ConfirmApprover {
	return &ConfirmApprover{ui: ui}
}

// Approve 实现 wallet.Approver
func (a *ConfirmApprover) Approve(_ context.Context, req wallet.SignRequest) (bool, error) {
	if !isTerminal() {
		return false, fmt.Errorf("%w: use --yes to sign without confirmation", ErrNotInteractive)
	}
	return a.ui.ShowConfirmDialog("Signature request", DescribeSignRequest(req), false)
}

// DescribeSignRequest 签名请求的可读描述
func DescribeSignRequest(req wallet.SignRequest) string {
	to := "-"
	if req.To != nil {
		to = req.To.Hex()
	}
	value := "0"
	if req.Value != nil {
		value = price.FormatEther(req.Value)
	}
	return fmt.Sprintf("Sign %s from %s to %s, value %s ETH, gas %d?", req.Method, req.From.Hex(), to, value, req.Gas)
}

// TermPrompter 从终端读取 keystore 密码（不回显）
type TermPrompter struct{}

var _ wallet.Prompter = TermPrompter{}

// Passphrase 实现 wallet.Prompter
func (TermPrompter) Passphrase(_ context.Context, account common.Address) (string, error) {
	if !isTerminal() {
		return "", fmt.Errorf("%w: set NFTMARKET_PASSWORD to unlock %s", ErrNotInteractive, account.Hex())
	}
	fmt.Fprintf(os.Stderr, "Passphrase for %s: ", account.Hex())
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(pass), nil
}

// ErrPassphraseMismatch 两次输入的密码不一致
var ErrPassphraseMismatch = errors.New("passphrases do not match")

// ReadNewPassphrase 读取并确认新 keystore 账户的密码
func ReadNewPassphrase() (string, error) {
	if !isTerminal() {
		return "", fmt.Errorf("%w: set NFTMARKET_PASSWORD to encrypt the key", ErrNotInteractive)
	}
	read := func(label string) (string, error) {
		fmt.Fprint(os.Stderr, label)
		pass, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(pass), nil
	}
	first, err := read("New passphrase: ")
	if err != nil {
		return "", err
	}
	second, err := read("Repeat passphrase: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPassphraseMismatch
	}
	return first, nil
}
