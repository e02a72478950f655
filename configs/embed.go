// Package configs embeds the bundled configuration profiles.
package configs

import (
	_ "embed"
	"sort"
)

// 嵌入的配置文件（在configs目录内直接引用）
//
//go:embed development/config.json
var developmentConfig []byte

//go:embed production/config.json
var productionConfig []byte

var profiles = map[string][]byte{
	"development": developmentConfig,
	"production":  productionConfig,
}

// Profile 按名称获取嵌入的配置
func Profile(name string) ([]byte, bool) {
	data, ok := profiles[name]
	return data, ok
}

// ProfileNames 所有可用的配置名称
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
