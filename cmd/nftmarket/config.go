package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weisyn/nftmarket/client/pkg/config"
	"github.com/weisyn/nftmarket/configs"
)

var (
	configForce   bool
	configProfile string
)

// configCmd 配置管理
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or reset the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration (secrets omitted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !formatter.IsTable() {
			return formatter.Print(cfg)
		}
		return components.ShowKeyValuePairs(cfg.Path(), configPairs(cfg))
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !configForce {
			return fmt.Errorf("%s already exists, pass --force to overwrite", cfg.Path())
		}
		var profile []byte
		if configProfile != "" {
			data, ok := configs.Profile(configProfile)
			if !ok {
				return fmt.Errorf("unknown profile %q, available: %s", configProfile, strings.Join(configs.ProfileNames(), ", "))
			}
			profile = data
		}
		fresh, err := config.Reset(cfg.Path(), profile)
		if err != nil {
			return err
		}
		return components.ShowSuccess(fmt.Sprintf("Default configuration written to %s", fresh.Path()))
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")
	configInitCmd.Flags().StringVar(&configProfile, "profile", "", "start from a bundled profile: development|production")
	configCmd.AddCommand(configShowCmd, configInitCmd)
}

// configPairs 展示用键值，密钥只显示是否已设置
func configPairs(c *config.Config) map[string]string {
	isSet := func(s string) string {
		if s == "" {
			return "not set"
		}
		return "set"
	}
	return map[string]string{
		"rpc_url":          c.RPCURL,
		"ws_url":           c.WSURL,
		"contract_address": c.ContractAddress,
		"pinata_endpoint":  c.PinataEndpoint,
		"gateway_url":      c.GatewayURL,
		"cid_version":      fmt.Sprintf("%d", c.CIDVersion),
		"keystore_dir":     c.KeystoreDir,
		"account":          c.Account,
		"listen_addr":      c.ListenAddr,
		"log.file_path":    c.Log.FilePath,
		"PINATA_JWT":       isSet(c.PinataJWT),
		"mnemonic":         isSet(c.Mnemonic),
	}
}
