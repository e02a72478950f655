package price

import (
	"errors"
	"math/big"
	"testing"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"整数", "2", "2000000000000000000", nil},
		{"1.5 ETH", "1.5", "1500000000000000000", nil},
		{"最小单位", "0.000000000000000001", "1", nil},
		{"零", "0", "0", nil},
		{"前后空格", " 0.25 ", "250000000000000000", nil},
		{"尾随零", "1.500000000000000000", "1500000000000000000", nil},
		{"空字符串", "", "", ErrInvalidAmount},
		{"非数字", "abc", "", ErrInvalidAmount},
		{"负数", "-1", "", ErrNegativeAmount},
		{"精度过高", "0.0000000000000000001", "", ErrTooPrecise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEther(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseEther(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEther(%q) unexpected error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseEther(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatEther(t *testing.T) {
	tests := []struct {
		wei  string
		want string
	}{
		{"1500000000000000000", "1.5"},
		{"2000000000000000000", "2"},
		{"1", "0.000000000000000001"},
		{"0", "0"},
		{"123456789012345678901", "123.456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.wei, func(t *testing.T) {
			v, ok := new(big.Int).SetString(tt.wei, 10)
			if !ok {
				t.Fatalf("bad fixture %s", tt.wei)
			}
			if got := FormatEther(v); got != tt.want {
				t.Errorf("FormatEther(%s) = %s, want %s", tt.wei, got, tt.want)
			}
		})
	}

	if got := FormatEther(nil); got != "0" {
		t.Errorf("FormatEther(nil) = %s, want 0", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{"1.5", "0.1", "42", "0.000000000000000001", "1000000.123456789"}
	for _, in := range inputs {
		wei, err := ParseEther(in)
		if err != nil {
			t.Fatalf("ParseEther(%q): %v", in, err)
		}
		if got := FormatEther(wei); got != in {
			t.Errorf("round trip %q -> %s -> %q", in, wei, got)
		}
	}
}
