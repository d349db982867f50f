package pixkey

import "strings"

const (
	cpfMask      = "###.###.###-##"
	cnpjMask     = "##.###.###/####-##"
	mobileMask   = "(##) #####-####"
	landlineMask = "(##) ####-####"
)

// Format masks raw for display according to kind.
//
// CPF and CNPJ are masked progressively and truncated at the mask length, so
// partial input typed so far is grouped too. Phones are only masked at 10 or
// 11 digits. Emails are lower-cased. Anything else is returned unchanged.
// Formatting an already formatted value returns it as is.
func Format(raw string, kind Kind) string {
	switch kind {
	case CPF:
		return applyMask(Digits(raw), cpfMask)
	case CNPJ:
		return applyMask(Digits(raw), cnpjMask)
	case Phone:
		digits := Digits(raw)
		switch len(digits) {
		case 11:
			return applyMask(digits, mobileMask)
		case 10:
			return applyMask(digits, landlineMask)
		}
		return raw
	case Email:
		return strings.ToLower(raw)
	default:
		return raw
	}
}

// applyMask writes digits into the '#' slots of mask. Literals are only
// emitted while digits remain; excess digits are dropped.
func applyMask(digits, mask string) string {
	if digits == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(mask))
	i := 0
	for _, m := range mask {
		if i >= len(digits) {
			break
		}
		if m == '#' {
			b.WriteByte(digits[i])
			i++
			continue
		}
		b.WriteRune(m)
	}
	return b.String()
}
