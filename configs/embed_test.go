package configs

import (
	"encoding/json"
	"testing"
)

func TestProfiles_AreValidJSON(t *testing.T) {
	for _, name := range ProfileNames() {
		data, ok := Profile(name)
		if !ok || len(data) == 0 {
			t.Fatalf("配置 %s 为空", name)
		}
		var m map[string]interface{}
		if err := json.Unmarshal(data, &m); err != nil {
			t.Errorf("配置 %s 不是有效 JSON: %v", name, err)
		}
		if _, ok := m["contract_address"]; !ok {
			t.Errorf("配置 %s 缺少 contract_address", name)
		}
	}
	if _, ok := Profile("staging"); ok {
		t.Error("未知配置不应存在")
	}
}
