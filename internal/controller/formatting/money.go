package formatting

import (
	"strconv"
	"strings"
)

// Currency formats a value as "R$ 1234,56".
func Currency(value float64) string {
	return "R$ " + strings.Replace(strconv.FormatFloat(value, 'f', 2, 64), ".", ",", 1)
}

// Hours prints a duration in hours without trailing zeros, e.g. "1.5h".
func Hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// Percent prints a percentage with one decimal.
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
