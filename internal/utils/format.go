package utils

import "strconv"

// GroupThousands renders a non-negative integer with comma thousands
// separators, e.g. 1250000 -> "1,250,000".
func GroupThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

// FormatDecimal renders a float without trailing zeros, so 2.0 -> "2" and
// 2.5 -> "2.5". Used for bathroom counts which may be half-integers.
func FormatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
