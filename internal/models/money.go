package models

import (
	"fmt"
	"math"
	"strconv"
)

// FormatNaira renders an amount as a naira string with thousands separators,
// e.g. 3500 -> "₦3,500". Kobo are shown only when non-zero.
func FormatNaira(amount float64) string {
	cents := int64(math.Round(math.Abs(amount) * 100))
	naira := cents / 100
	kobo := cents % 100

	s := groupThousands(naira)
	if kobo != 0 {
		s += fmt.Sprintf(".%02d", kobo)
	}
	if amount < 0 {
		s = "-" + s
	}
	return "₦" + s
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
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
