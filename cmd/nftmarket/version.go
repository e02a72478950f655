package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/nftmarket/client/core/output"
	"github.com/weisyn/nftmarket/internal/app/version"
)

// versionCmd 显示版本信息
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(globalFlags.OutputFormat)
		if err != nil {
			return err
		}
		if format == output.FormatTable {
			fmt.Println(version.GetFullVersion())
			return nil
		}
		return output.NewFormatter(format, os.Stdout).Print(version.GetBuildInfo())
	},
}
