package pixkey

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	uuidRe  = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// Rule is one entry of the ordered classification table. Match receives the
// raw input and its digits-only projection.
type Rule struct {
	Name  string
	Kind  Kind
	Phone PhoneType
	Match func(raw, digits string) bool
}

// DefaultRules returns the classification table in priority order. The first
// rule whose Match returns true decides the kind.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "email", Kind: Email, Match: IsEmail},
		{Name: "cnpj", Kind: CNPJ, Match: digitCount(14)},
		{Name: "mobile", Kind: Phone, Phone: Mobile, Match: IsMobile},
		{Name: "cpf", Kind: CPF, Match: digitCount(11)},
		{Name: "landline", Kind: Phone, Phone: Landline, Match: digitCount(10)},
		{Name: "random", Kind: Random, Match: IsRandom},
	}
}

// IsEmail matches the simple local@domain.tld shape. The match is done on the
// raw input, before any case folding.
func IsEmail(raw, _ string) bool {
	return emailRe.MatchString(raw)
}

// IsRandom matches the canonical 8-4-4-4-12 UUID layout in any letter case.
func IsRandom(raw, _ string) bool {
	return uuidRe.MatchString(raw)
}

// IsMobile matches 11 digits with a DDD between 11 and 99 followed by a 9.
func IsMobile(raw, digits string) bool {
	if !digitCount(11)(raw, digits) {
		return false
	}
	ddd := int(digits[0]-'0')*10 + int(digits[1]-'0')
	return ddd >= 11 && ddd <= 99 && digits[2] == '9'
}

// digitCount matches inputs with exactly n digits. UUID-shaped input never
// matches so that random keys are not mistaken for documents or phones.
func digitCount(n int) func(raw, digits string) bool {
	return func(raw, digits string) bool {
		return len(digits) == n && !uuidRe.MatchString(raw)
	}
}

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
