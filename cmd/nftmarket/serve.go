package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/nftmarket/client/core/wallet"
	"github.com/weisyn/nftmarket/internal/app"
	"github.com/weisyn/nftmarket/internal/app/version"
)

var (
	serveListen  string
	serveNoWatch bool
)

// serveCmd 启动本地单页视图
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the marketplace page and JSON API on a local address",
	Long: `Serve the marketplace page and its JSON API.

Transactions started from the page are signed without a terminal
prompt, so bind to a loopback address. When ws_url is configured,
contract events are followed and every event re-syncs the view.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.BootstrapApp(
			app.WithConfig(cfg),
			app.WithListenAddr(serveListen),
			app.WithApprover(wallet.AutoApprove),
			app.WithWatch(!serveNoWatch),
		)
		if err != nil {
			return err
		}

		url := fmt.Sprintf("http://%s/", a.Addr())
		logger.Infof("serving marketplace view on %s", url)
		_ = components.ShowHeader("nftmarket " + version.GetVersion())
		_ = components.ShowSuccess(fmt.Sprintf("Marketplace running at %s (Ctrl+C to stop)", url))

		return a.Wait(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default from config, 127.0.0.1:8088)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "do not follow contract events even when ws_url is set")
}
