package wallet

import (
	"testing"
)

func TestDefaultDerivationPath(t *testing.T) {
	dp := DefaultDerivationPath()
	if got := dp.String(); got != "m/44'/60'/0'/0/0" {
		t.Errorf("String() = %v, want m/44'/60'/0'/0/0", got)
	}
	if dp.CoinType != EthereumCoinType {
		t.Errorf("CoinType = %d, want %d", dp.CoinType, EthereumCoinType)
	}
}

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"完整路径", "m/44'/60'/0'/0/0", "m/44'/60'/0'/0/0", false},
		{"无 m 前缀", "44'/60'/0'/0/3", "m/44'/60'/0'/0/3", false},
		{"h 硬化标记", "m/44h/60h/1h/0/2", "m/44'/60'/1'/0/2", false},
		{"组件数量错误", "m/44'/60'/0'", "", true},
		{"purpose 错误", "m/49'/60'/0'/0/0", "", true},
		{"未硬化 coin type", "m/44'/60/0'/0/0", "", true},
		{"change 超范围", "m/44'/60'/0'/2/0", "", true},
		{"index 非数字", "m/44'/60'/0'/0/x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDerivationPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDerivationPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("ParseDerivationPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestDerivationPath_ToUint32Array(t *testing.T) {
	arr := PathForIndex(7).ToUint32Array()
	want := []uint32{44 + HardenedOffset, 60 + HardenedOffset, HardenedOffset, 0, 7}
	for i := range want {
		if arr[i] != want[i] {
			t.Errorf("arr[%d] = %d, want %d", i, arr[i], want[i])
		}
	}
}
