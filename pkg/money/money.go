// Package money renders and parses Brazilian real amounts.
//
// Amounts travel as integer cents. Display strings use the pt-BR locale
// ("1.234,56"); the backend receives a dot-decimal string ("1234.56").
package money

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxDigits bounds keystroke input so the cents value fits in an int64.
const maxDigits = 15

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatCents renders cents as a grouped two-decimal pt-BR amount: 123456 -> "1.234,56".
func FormatCents(cents int64) string {
	v := float64(cents) / 100
	return printer.Sprintf("%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatDigits is the amount field mask: every non-digit is dropped and the
// remaining digits are read as cents. "10000" -> "100,00". Empty input renders "0,00".
// Only the first 15 significant digits count, so a keystroke past that leaves
// the rendered amount unchanged.
func FormatDigits(raw string) string {
	return FormatCents(CentsFromDigits(raw))
}

// CentsFromDigits reads the digits of raw as a number of cents. Leading zeros
// are skipped and digits after the 15th significant one are ignored.
func CentsFromDigits(raw string) int64 {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		return 0
	}
	if len(digits) > maxDigits {
		digits = digits[:maxDigits]
	}
	cents, _ := strconv.ParseInt(digits, 10, 64)
	return cents
}

// Parse reads a pt-BR display amount back into a number: thousands
// separators are removed and the decimal comma becomes a dot.
// A leading "R$" is accepted.
func Parse(display string) (float64, error) {
	s := normalize(display)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", display, err)
	}
	return v, nil
}

// ParseCents is Parse without floating point.
func ParseCents(display string) (int64, error) {
	s := normalize(display)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.ReplaceAll(s, ".", "")

	whole, frac, _ := strings.Cut(s, ",")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", display)
	}
	frac += strings.Repeat("0", 2-len(frac))

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", display, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", display, err)
	}
	cents := w*100 + f
	if neg {
		cents = -cents
	}
	return cents, nil
}

// WireValue renders cents in the dot-decimal form the backend expects: 10000 -> "100.00".
func WireValue(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FromFloat converts a float amount to cents, rounding half away from zero.
func FromFloat(v float64) int64 {
	if v < 0 {
		return -int64(-v*100 + 0.5)
	}
	return int64(v*100 + 0.5)
}

func normalize(display string) string {
	s := strings.TrimSpace(display)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimSpace(s)
}
