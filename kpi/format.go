package kpi

import (
	"math"
	"strconv"
	"strings"
)

// FormatBRL renders a currency value in the pt-BR convention: period for
// thousands, comma for decimals ("R$ 1.234,56"). NaN renders as zero.
func FormatBRL(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	b.WriteString("R$ ")
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
