// Package phone formats US phone numbers for display and storage.
package phone

import "strings"

// MaxDigits is the number of digits kept from any input.
const MaxDigits = 10

// Digits strips everything but ASCII digits and keeps at most MaxDigits.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(MaxDigits)
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == MaxDigits {
			break
		}
	}
	return b.String()
}

// Normalize formats raw progressively as the user types:
//
//	0-3 digits  -> DDD
//	4-6 digits  -> (DDD) DDD
//	7-10 digits -> (DDD) DDD-DDDD
//
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(raw string) string {
	d := Digits(raw)
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return "(" + d[:3] + ") " + d[3:]
	default:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	}
}
