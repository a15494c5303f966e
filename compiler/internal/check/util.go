package check

import "github.com/tigerlang/tigerc/compiler/internal/types"

// minInt clamps argument-list zipping to the shorter of the two
// lengths (spec.md §4.3's Call rule: "still attempt zip... up to the
// shorter list").
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// describe renders a type for diagnostic payloads, following NAME
// chains first so messages never leak an alias's bare name.
func describe(t *types.Ty) string {
	return t.Actual().Tag.String()
}
