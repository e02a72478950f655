package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/weisyn/nftmarket/client/core/price"
	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/client/core/wallet"
	"github.com/weisyn/nftmarket/client/pkg/ux/ui"
	httptypes "github.com/weisyn/nftmarket/internal/api/http/types"
)

var (
	mintPrice  string
	listPrice  string
	buyWei     string
	tokensMine bool
)

// connectCmd 连接钱包并显示会话
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the configured wallet and show the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(m *marketApp, s *wallet.Session) error {
			if formatter.IsTable() {
				return ui.ShowAccount(components, s.Account, s.ChainID.String(), string(s.Provider))
			}
			return formatter.Print(httptypes.Session{
				Connected: true,
				Account:   s.Account.Hex(),
				ChainID:   s.ChainID.String(),
				Provider:  string(s.Provider),
			})
		})
	},
}

// tokensCmd 列出注册合约中的全部代币
var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"ls"},
	Short:   "List every token in the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newMarketApp(cmd.Context(), cfg, cliApprover())
		if err != nil {
			return err
		}
		defer m.Close()
		defer m.printNotifications()()

		tokens, err := refreshWithSpinner(cmd.Context(), m)
		if err != nil {
			return err
		}
		account := configuredAccount(cfg)
		if tokensMine {
			tokens = ownTokens(tokens, account)
		}
		return printTokens(tokens, account)
	},
}

// mintCmd 上传文件并铸造代币
var mintCmd = &cobra.Command{
	Use:   "mint <file>",
	Short: "Upload a file to Pinata and mint it at the given price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := price.ParseEther(mintPrice); err != nil {
			return fmt.Errorf("--price: %w", err)
		}
		if cfg.PinataJWT == "" {
			return fmt.Errorf("PINATA_JWT is not set")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		if len(data) == 0 {
			return fmt.Errorf("%s is empty", args[0])
		}

		return withSession(cmd.Context(), func(m *marketApp, s *wallet.Session) error {
			m.ctrl.SelectFile(filepath.Base(args[0]), data)
			rcpt, err := m.ctrl.Mint(detached(cmd.Context()), mintPrice)
			if err != nil {
				return err
			}
			return printResult(rcpt, m.ctrl.View().Tokens(), s.Account)
		})
	},
}

// buyCmd 以挂单价格购买代币
var buyCmd = &cobra.Command{
	Use:   "buy <token-id>",
	Short: "Buy a token at its listed price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTokenID(args[0])
		if err != nil {
			return err
		}

		return withSession(cmd.Context(), func(m *marketApp, s *wallet.Session) error {
			wei, err := buyAmount(m.ctrl.View().Tokens(), id, buyWei)
			if err != nil {
				return err
			}
			rcpt, err := m.ctrl.Buy(detached(cmd.Context()), id, wei)
			if err != nil {
				return err
			}
			return printResult(rcpt, m.ctrl.View().Tokens(), s.Account)
		})
	},
}

// listCmd 以新价格重新挂单
var listCmd = &cobra.Command{
	Use:   "list <token-id>",
	Short: "Re-list a token at a new price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTokenID(args[0])
		if err != nil {
			return err
		}
		if _, err := price.ParseEther(listPrice); err != nil {
			return fmt.Errorf("--price: %w", err)
		}

		return withSession(cmd.Context(), func(m *marketApp, s *wallet.Session) error {
			rcpt, err := m.ctrl.List(detached(cmd.Context()), id, listPrice)
			if err != nil {
				return err
			}
			return printResult(rcpt, m.ctrl.View().Tokens(), s.Account)
		})
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensMine, "mine", false, "only tokens created by the configured account (account or mnemonic)")

	mintCmd.Flags().StringVar(&mintPrice, "price", "", "listing price in ETH, e.g. 0.05")
	_ = mintCmd.MarkFlagRequired("price")

	buyCmd.Flags().StringVar(&buyWei, "price-wei", "", "amount to send in wei (default: the listed price)")

	listCmd.Flags().StringVar(&listPrice, "price", "", "new price in ETH")
	_ = listCmd.MarkFlagRequired("price")
}

// withSession 组装应用、连接钱包后执行 fn
// detached 交易提交后不随 Ctrl-C 中断，等待上链结果并完成重新同步
func detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func withSession(ctx context.Context, fn func(m *marketApp, s *wallet.Session) error) error {
	m, err := newMarketApp(ctx, cfg, cliApprover())
	if err != nil {
		return err
	}
	defer m.Close()
	defer m.printNotifications()()

	session, err := m.ctrl.Connect(ctx)
	if err != nil {
		return err
	}
	return fn(m, session)
}

// refreshWithSpinner 表格模式下读取期间显示加载动画
func refreshWithSpinner(ctx context.Context, m *marketApp) ([]registry.Token, error) {
	if !formatter.IsTable() {
		return m.ctrl.Refresh(ctx)
	}
	spinner := components.ShowSpinner("Loading tokens from the registry")
	_ = spinner.Start()
	tokens, err := m.ctrl.Refresh(ctx)
	if err != nil {
		_ = spinner.Fail("Could not load tokens")
		return nil, err
	}
	_ = spinner.Success(fmt.Sprintf("Loaded %d tokens", len(tokens)))
	return tokens, nil
}

// printResult 输出交易回执与同步后的代币列表
func printResult(rcpt *registry.Receipt, tokens []registry.Token, account common.Address) error {
	if rcpt == nil {
		return nil
	}
	if !formatter.IsTable() {
		return formatter.Print(httptypes.NewTxResponse(rcpt))
	}
	if err := components.ShowKeyValuePairs("Transaction", map[string]string{
		"Hash":     rcpt.TxHash.Hex(),
		"Block":    fmt.Sprintf("%d", rcpt.BlockNumber),
		"Gas used": fmt.Sprintf("%d", rcpt.GasUsed),
	}); err != nil {
		return err
	}
	return ui.ShowTokens(components, tokens, account)
}

func printTokens(tokens []registry.Token, account common.Address) error {
	if formatter.IsTable() {
		return ui.ShowTokens(components, tokens, account)
	}
	return formatter.Print(httptypes.NewTokens(tokens, account))
}

// ========== 参数解析 ==========

func parseTokenID(s string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(s, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid token id %q", s)
	}
	return id, nil
}

// buyAmount 显式金额优先，否则使用视图中的挂单价格
func buyAmount(tokens []registry.Token, id *big.Int, explicitWei string) (*big.Int, error) {
	if explicitWei != "" {
		wei, ok := new(big.Int).SetString(explicitWei, 10)
		if !ok || wei.Sign() < 0 {
			return nil, fmt.Errorf("%w: --price-wei %q", price.ErrInvalidAmount, explicitWei)
		}
		return wei, nil
	}
	for _, t := range tokens {
		if t.ID != nil && t.ID.Cmp(id) == 0 && t.Price != nil {
			return new(big.Int).Set(t.Price), nil
		}
	}
	return nil, fmt.Errorf("token %s not found", id)
}

func ownTokens(tokens []registry.Token, account common.Address) []registry.Token {
	out := make([]registry.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Creator == account {
			out = append(out, t)
		}
	}
	return out
}
