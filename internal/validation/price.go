package validation

import "strings"

// Price bounds in cents.
const (
	MinPriceCents  = 50
	MaxPriceCents  = 5000
	PriceStepCents = 50
)

// maxIntegerDigits keeps the cent value far from int64 overflow. Anything
// longer is simply "too large".
const maxIntegerDigits = 12

// amount is a decimal price parsed into integer cents. subCent is set when
// digits beyond the second decimal place are non-zero, so 1.505 never
// compares equal to 1.50.
type amount struct {
	cents    int64
	subCent  bool
	negative bool
	tooLarge bool
}

func (a amount) positive() bool {
	return !a.negative && (a.cents > 0 || a.subCent || a.tooLarge)
}

// parseAmount parses "12", "12.5", "12.50", "12,50" and ".5". It does not
// use floating point at any stage.
func parseAmount(raw string) (amount, bool) {
	s := strings.TrimSpace(raw)
	var a amount
	if s == "" {
		return a, false
	}

	switch s[0] {
	case '-':
		a.negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexAny(s, ".,"); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return a, false
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return a, false
	}

	intPart = strings.TrimLeft(intPart, "0")
	if len(intPart) > maxIntegerDigits {
		a.tooLarge = true
		return a, true
	}

	var whole int64
	for _, c := range intPart {
		whole = whole*10 + int64(c-'0')
	}

	var frac int64
	for i := 0; i < 2; i++ {
		frac *= 10
		if i < len(fracPart) {
			frac += int64(fracPart[i] - '0')
		}
	}
	if len(fracPart) > 2 && strings.Trim(fracPart[2:], "0") != "" {
		a.subCent = true
	}

	a.cents = whole*100 + frac
	if a.cents == 0 && !a.subCent {
		a.negative = false
	}
	return a, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// PriceCents returns the exact cent value of a price string. ok is false
// when the string is not a non-negative amount representable in cents.
func PriceCents(raw string) (cents int64, ok bool) {
	a, parsed := parseAmount(raw)
	if !parsed || a.negative || a.subCent || a.tooLarge {
		return 0, false
	}
	return a.cents, true
}
