package wallet

import (
	"os"
	"path/filepath"
	"strings"
)

// ProviderOptions 探测钱包提供者所需的配置
type ProviderOptions struct {
	KeystoreDir        string
	Account            string
	Mnemonic           string
	MnemonicPassphrase string
	DerivationPath     string
	Prompter           Prompter
}

// DetectProvider 返回环境中配置的钱包提供者
//
// 助记词优先；其次是包含至少一个 key 文件的 keystore 目录。
// 两者都没有时返回 ErrProviderUnavailable。
func DetectProvider(opts ProviderOptions) (Provider, error) {
	if strings.TrimSpace(opts.Mnemonic) != "" {
		var path *DerivationPath
		if opts.DerivationPath != "" {
			p, err := ParseDerivationPath(opts.DerivationPath)
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewMnemonicProvider(opts.Mnemonic, opts.MnemonicPassphrase, path)
	}

	if hasKeyFiles(opts.KeystoreDir) {
		return NewKeystoreProvider(opts.KeystoreDir, opts.Account, opts.Prompter), nil
	}

	return nil, ErrProviderUnavailable
}

func hasKeyFiles(dir string) bool {
	if dir == "" {
		return false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
			continue
		}
		if filepath.Ext(name) == ".tmp" {
			continue
		}
		return true
	}
	return false
}
