// Package units 以太币单位换算
//
// 金额始终以十进制字符串处理，换算为 wei 时只移动小数点，不经过浮点数。
package units

import (
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/weisyn/ethwallet/pkg/types"
)

// Unit 以太币单位
type Unit struct {
	Name string
	// Exp 1 单位 = 10^Exp wei；noether 为 -1，表示换算结果恒为 0
	Exp int
}

// Wei 返回 1 单位对应的 wei 数（十进制字符串）
func (u Unit) Wei() string {
	if u.Exp < 0 {
		return "0"
	}
	return "1" + strings.Repeat("0", u.Exp)
}

// Scientific 返回 "1e+N" 形式，0 和 1 原样返回
func (u Unit) Scientific() string {
	switch {
	case u.Exp < 0:
		return "0"
	case u.Exp == 0:
		return "1"
	default:
		return "1e+" + strconv.Itoa(u.Exp)
	}
}

// 单位表，按换算值从小到大排列
var unitTable = []Unit{
	{"noether", -1},
	{"wei", 0},
	{"kwei", 3}, {"Kwei", 3}, {"babbage", 3}, {"femtoether", 3},
	{"mwei", 6}, {"Mwei", 6}, {"lovelace", 6}, {"picoether", 6},
	{"gwei", 9}, {"Gwei", 9}, {"shannon", 9}, {"nanoether", 9}, {"nano", 9},
	{"szabo", 12}, {"microether", 12}, {"micro", 12},
	{"finney", 15}, {"milliether", 15}, {"milli", 15},
	{"ether", 18},
	{"kether", 21}, {"grand", 21},
	{"mether", 24},
	{"gether", 27},
	{"tether", 30},
}

var unitIndex = func() map[string]Unit {
	m := make(map[string]Unit, len(unitTable))
	for _, u := range unitTable {
		m[u.Name] = u
	}
	return m
}()

// All 返回全部单位（副本）
func All() []Unit {
	return append([]Unit(nil), unitTable...)
}

// Lookup 按名称查找单位，名称区分大小写
func Lookup(name string) (Unit, bool) {
	u, ok := unitIndex[name]
	return u, ok
}

// IsDecimal 判断是否为十进制数字串：可选前导 "-"，至多一个小数点，至少一位数字
func IsDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// ToWei 把以 unit 计的十进制金额换算为 wei
//
// 超出单位精度的小数部分直接截断；负数保留 "-"；结果不含前导零。
func ToWei(value, unit string) (string, error) {
	if !IsDecimal(value) {
		return "", types.Validationf("units.ToWei", "value %q is not a base 10 number", value)
	}
	u, ok := Lookup(unit)
	if !ok {
		return "", types.Validationf("units.ToWei", "unknown unit %q", unit)
	}
	if u.Exp < 0 {
		return "0", nil
	}

	neg := strings.HasPrefix(value, "-")
	abs := strings.TrimPrefix(value, "-")

	intPart, fracPart, _ := strings.Cut(abs, ".")
	if len(fracPart) < u.Exp {
		fracPart += strings.Repeat("0", u.Exp-len(fracPart))
	}
	wei := strings.TrimLeft(intPart+fracPart[:u.Exp], "0")
	if wei == "" {
		return "0", nil
	}
	if neg {
		return "-" + wei, nil
	}
	return wei, nil
}

// ToWeiUint256 同 ToWei，但要求结果为非负且不超过 256 位
func ToWeiUint256(value, unit string) (*uint256.Int, error) {
	wei, err := ToWei(value, unit)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(wei, "-") {
		return nil, types.Validationf("units.ToWei", "value %q must not be negative", value)
	}
	n, err := uint256.FromDecimal(wei)
	if err != nil {
		return nil, types.Validationf("units.ToWei", "value %q overflows 256 bits", value)
	}
	return n, nil
}
