// Package price converts between display prices (ETH) and on-chain base units (wei).
package price

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals 显示单位的小数位数（1 ETH = 10^18 wei）
const Decimals = 18

var (
	// ErrInvalidAmount 无效的金额
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNegativeAmount 负数金额
	ErrNegativeAmount = errors.New("negative amount")

	// ErrTooPrecise 小数位超过18位
	ErrTooPrecise = errors.New("amount has more than 18 fractional digits")
)

// ParseEther 将显示价格转换为基础单位
//
// 示例：
//
//	ParseEther("1.5")   → 1500000000000000000
//	ParseEther("0.000000000000000001") → 1
//
// 使用十进制精确运算，超过18位小数直接报错，不做截断。
func ParseEther(display string) (*big.Int, error) {
	s := strings.TrimSpace(display)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, display)
	}
	if d.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeAmount, s)
	}
	if d.Exponent() < -Decimals {
		return nil, fmt.Errorf("%w: %s", ErrTooPrecise, s)
	}

	return d.Shift(Decimals).BigInt(), nil
}

// FormatEther 将基础单位格式化为最短的精确显示价格
//
//	FormatEther(1500000000000000000) → "1.5"
//	FormatEther(nil) → "0"
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -Decimals).String()
}

// MustParseEther 同 ParseEther，出错时 panic（用于常量与测试）
func MustParseEther(display string) *big.Int {
	v, err := ParseEther(display)
	if err != nil {
		panic(err)
	}
	return v
}
