package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatAmount renders an amount with thousand separators and at most two
// decimals, dropping the fraction for whole values: 6700 -> "6,700".
func FormatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	out := sign + formatThousand(whole)
	if frac != 0 {
		out += "." + leftPad(strconv.FormatInt(frac, 10), 2)
	}
	return out
}

// FormatMoney prefixes FormatAmount with a currency code.
func FormatMoney(currency string, amount float64) string {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return FormatAmount(amount)
	}
	return currency + " " + FormatAmount(amount)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}

func leftPad(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	return s
}
