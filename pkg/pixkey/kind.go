package pixkey

import (
	"fmt"
	"strings"
)

// Kind is the type of a PIX key.
type Kind string

const (
	Unknown Kind = "UNKNOWN"
	CPF     Kind = "CPF"
	CNPJ    Kind = "CNPJ"
	Email   Kind = "EMAIL"
	Phone   Kind = "PHONE"
	Random  Kind = "RANDOM"
)

// PhoneType distinguishes mobile (11 digits) from landline (10 digits) numbers.
// It is empty for every kind other than Phone.
type PhoneType string

const (
	Mobile   PhoneType = "mobile"
	Landline PhoneType = "landline"
)

// wireNames maps kinds to the tipoChave values the analysis backend expects.
var wireNames = map[Kind]string{
	CPF:    "CPF",
	CNPJ:   "CNPJ",
	Email:  "EMAIL",
	Phone:  "TELEFONE",
	Random: "ALEATORIA",
}

// WireName returns the backend name of the kind ("TELEFONE", "ALEATORIA", ...).
// Unknown has no wire name and returns "".
func (k Kind) WireName() string {
	return wireNames[k]
}

// Known reports whether k is one of the five real key kinds.
func (k Kind) Known() bool {
	_, ok := wireNames[k]
	return ok
}

func (k Kind) String() string { return string(k) }

// ParseKind accepts both the package names (PHONE, RANDOM) and the backend
// names (TELEFONE, ALEATORIA), case-insensitively.
func ParseKind(s string) (Kind, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for k, wire := range wireNames {
		if v == string(k) || v == wire {
			return k, nil
		}
	}
	if v == string(Unknown) {
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("unknown pix key kind: %q", s)
}
