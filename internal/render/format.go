package render

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Thousands rounds v and groups the digits, e.g. 12500.4 -> "12,500"
func Thousands(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// Number prints v with no trailing zeros, e.g. 15.2 or 310
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
