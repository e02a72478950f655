package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weisyn/nftmarket/client/core/registry"
	"github.com/weisyn/nftmarket/client/pkg/ux/ui"
	"github.com/weisyn/nftmarket/internal/app"
)

// watchCmd 订阅合约事件，每个事件触发一次完整同步
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow Minted/Bought/Listed events and re-sync on each one",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		m, err := newMarketApp(ctx, cfg, cliApprover())
		if err != nil {
			return err
		}
		defer m.Close()
		defer m.printNotifications()()

		if _, err := refreshWithSpinner(ctx, m); err != nil {
			return err
		}
		if formatter.IsTable() {
			_ = components.ShowSection(fmt.Sprintf("Activity on %s (Ctrl+C to stop)", cfg.ContractAddress))
		}

		return app.WatchActivity(ctx, cfg, m.ctrl, logger, func(a registry.Activity) {
			if formatter.IsTable() {
				_ = components.ShowInfo(ui.FormatActivity(a))
				return
			}
			_ = formatter.Print(a)
		})
	},
}
