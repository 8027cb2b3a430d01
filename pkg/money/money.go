// Package money formats minor-currency-unit amounts for display.
package money

import (
	"fmt"
	"strconv"
)

// Format renders an amount in minor units (kobo) as a naira price string,
// e.g. 2000000 -> "₦20,000" and 2000050 -> "₦20,000.50". Cents are omitted
// when zero, matching the menu display.
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	major := minor / 100
	cents := minor % 100

	grouped := group(major)
	if cents == 0 {
		return fmt.Sprintf("%s₦%s", sign, grouped)
	}
	return fmt.Sprintf("%s₦%s.%02d", sign, grouped, cents)
}

func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
