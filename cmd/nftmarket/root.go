package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weisyn/nftmarket/client/core/output"
	"github.com/weisyn/nftmarket/client/pkg/config"
	"github.com/weisyn/nftmarket/client/pkg/ux/ui"
	logconfig "github.com/weisyn/nftmarket/internal/config/log"
	corelog "github.com/weisyn/nftmarket/internal/core/infrastructure/log"
	"github.com/weisyn/nftmarket/pkg/interfaces/infrastructure/log"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigPath   string // 配置文件路径
	OutputFormat string // 输出格式
	Yes          bool   // 跳过签名确认
	Verbose      bool   // 详细日志输出到 stderr
}

var (
	globalFlags GlobalFlags
	cfg         *config.Config
	formatter   *output.Formatter
	components  ui.Components
	logger      log.Logger
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "nftmarket",
	Short: "NFT marketplace client",
	Long: `nftmarket connects a local wallet to the NFT registry contract.

Upload a file to Pinata and mint it as a token, buy tokens listed by
others, re-list your own tokens, or run a local single-page view with
"nftmarket serve".

Configuration is read from ~/.nftmarket/config.json and can be
overridden with NFTMARKET_* environment variables. The Pinata JWT is
only read from PINATA_JWT.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadFrom(globalFlags.ConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		format, err := output.ParseFormat(globalFlags.OutputFormat)
		if err != nil {
			return err
		}
		formatter = output.NewFormatter(format, os.Stdout)

		logger, err = newLogger(cfg.Log, globalFlags.Verbose)
		if err != nil {
			return err
		}
		corelog.SetLogger(logger)

		components = ui.NewComponents(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute 执行根命令
//
// SIGINT/SIGTERM 取消命令上下文，watch 与 serve 据此退出。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigPath, "config", "", "config file (default ~/.nftmarket/config.json)")
	rootCmd.PersistentFlags().StringVarP(&globalFlags.OutputFormat, "output", "o", "table", "output format: json|pretty|table")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Yes, "yes", "y", false, "sign transactions without confirmation")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(mintCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger 文件日志按配置输出，verbose 时额外输出调试日志到 stderr
func newLogger(opts logconfig.LogOptions, verbose bool) (log.Logger, error) {
	if verbose {
		opts.Level = "debug"
		opts.ToConsole = true
	}
	l, err := corelog.New(logconfig.New(&opts))
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return l, nil
}
