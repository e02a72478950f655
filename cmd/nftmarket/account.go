package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/nftmarket/client/core/wallet"
	"github.com/weisyn/nftmarket/client/pkg/ux/ui"
)

var mnemonicWords int

// accountCmd keystore 账户管理
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage keystore accounts",
}

var accountNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new keystore account",
	RunE: func(cmd *cobra.Command, args []string) error {
		pass, err := newPassphrase()
		if err != nil {
			return err
		}
		addr, err := wallet.NewAccount(cfg.KeystoreDir, pass)
		if err != nil {
			return err
		}
		return printAccount("Account created", addr.Hex())
	},
}

var accountImportCmd = &cobra.Command{
	Use:   "import <key-file>",
	Short: "Import a hex private key into the keystore",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read key file: %w", err)
		}
		pass, err := newPassphrase()
		if err != nil {
			return err
		}
		addr, err := wallet.ImportAccount(cfg.KeystoreDir, strings.TrimSpace(string(raw)), pass)
		if err != nil {
			return err
		}
		return printAccount("Account imported", addr.Hex())
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keystore accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		accounts := wallet.ListAccounts(cfg.KeystoreDir)
		if !formatter.IsTable() {
			out := make([]string, len(accounts))
			for i, a := range accounts {
				out[i] = a.Hex()
			}
			return formatter.Print(out)
		}
		if len(accounts) == 0 {
			return components.ShowInfo(fmt.Sprintf("No accounts in %s", cfg.KeystoreDir))
		}
		rows := [][]string{{"#", "Address", ""}}
		for i, a := range accounts {
			mark := ""
			if strings.EqualFold(a.Hex(), cfg.Account) || (cfg.Account == "" && i == 0) {
				mark = "default"
			}
			rows = append(rows, []string{fmt.Sprintf("%d", i), a.Hex(), mark})
		}
		return components.ShowTable("Accounts", rows)
	},
}

var accountMnemonicCmd = &cobra.Command{
	Use:   "mnemonic",
	Short: "Generate a BIP39 mnemonic and show its first account",
	Long: `Generate a BIP39 mnemonic and show the account it derives.

Export it as NFTMARKET_MNEMONIC to use it instead of the keystore.
Anyone holding the words controls the account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strength, err := mnemonicStrength(mnemonicWords)
		if err != nil {
			return err
		}
		mnemonic, err := wallet.GenerateMnemonic(strength)
		if err != nil {
			return err
		}
		path := wallet.DefaultDerivationPath()
		if cfg.DerivationPath != "" {
			if path, err = wallet.ParseDerivationPath(cfg.DerivationPath); err != nil {
				return err
			}
		}
		provider, err := wallet.NewMnemonicProvider(mnemonic, "", path)
		if err != nil {
			return err
		}
		if err := provider.Enable(cmd.Context()); err != nil {
			return err
		}
		accounts, err := provider.Accounts(cmd.Context())
		if err != nil {
			return err
		}

		if !formatter.IsTable() {
			return formatter.Print(map[string]interface{}{
				"mnemonic": mnemonic,
				"path":     path.String(),
				"account":  accounts[0].Hex(),
			})
		}
		_ = components.ShowWarning("Write these words down and keep them secret")
		return components.ShowKeyValuePairs("Mnemonic", map[string]string{
			"Words":   mnemonic,
			"Path":    path.String(),
			"Account": accounts[0].Hex(),
		})
	},
}

func init() {
	accountMnemonicCmd.Flags().IntVar(&mnemonicWords, "words", 12, "number of words: 12 or 24")

	accountCmd.AddCommand(accountNewCmd, accountImportCmd, accountListCmd, accountMnemonicCmd)
}

// newPassphrase 优先使用 NFTMARKET_PASSWORD，否则在终端输入两次
func newPassphrase() (string, error) {
	if cfg.Password != "" {
		return cfg.Password, nil
	}
	return ui.ReadNewPassphrase()
}

func mnemonicStrength(words int) (wallet.MnemonicStrength, error) {
	switch words {
	case 12:
		return wallet.Mnemonic12Words, nil
	case 24:
		return wallet.Mnemonic24Words, nil
	default:
		return 0, fmt.Errorf("--words must be 12 or 24, got %d", words)
	}
}

func printAccount(title, addr string) error {
	if !formatter.IsTable() {
		return formatter.Print(map[string]string{"account": addr})
	}
	return components.ShowSuccess(fmt.Sprintf("%s: %s", title, addr))
}
