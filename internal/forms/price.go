package forms

import "strings"

const (
	priceMaxDigits        = 7
	priceMaxDecimalPlaces = 2
)

// NormalizePrice проверяет десятичную цену и приводит ее к виду "1234.50".
// Допускается не более 7 значащих цифр, из них не более 2 после точки.
func NormalizePrice(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	negative := false
	if s[0] == '-' || s[0] == '+' {
		negative = s[0] == '-'
		s = s[1:]
	}

	intPart, fracPart, hasPoint := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return "", false
	}
	if hasPoint && fracPart == "" {
		return "", false
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return "", false
	}

	intPart = strings.TrimLeft(intPart, "0")
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > priceMaxDecimalPlaces {
		return "", false
	}
	if len(intPart)+priceMaxDecimalPlaces > priceMaxDigits {
		return "", false
	}

	if intPart == "" {
		intPart = "0"
	}
	fracPart += strings.Repeat("0", priceMaxDecimalPlaces-len(fracPart))

	if negative && (intPart != "0" || fracPart != "00") {
		intPart = "-" + intPart
	}
	return intPart + "." + fracPart, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
