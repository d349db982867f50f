package clix

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"pixshield/internal/services"
	"pixshield/pkg/money"
)

// stringFlags reads the named string flags, failing on the first one the
// command did not register.
func stringFlags(flags *pflag.FlagSet, names ...string) (map[string]string, error) {
	values := make(map[string]string, len(names))
	for _, name := range names {
		v, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("read --%s: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}

// ParseSendParams reads the payment form from flags. An empty --when is
// filled with the current local time, the way the form pre-fills it.
func ParseSendParams(flags *pflag.FlagSet) (services.SendPixParams, error) {
	v, err := stringFlags(flags, "from", "to", "key", "kind", "amount", "description", "when")
	if err != nil {
		return services.SendPixParams{}, err
	}

	when := v["when"]
	if strings.TrimSpace(when) == "" {
		when = time.Now().Format(services.DataHoraLayout)
	}
	return services.SendPixParams{
		RemetenteID:    v["from"],
		DestinatarioID: v["to"],
		ChaveDestino:   v["key"],
		TipoChave:      v["kind"],
		Valor:          NormalizeAmount(v["amount"]),
		Descricao:      v["description"],
		DataHora:       when,
	}, nil
}

// ParseGenerateParams reads the direct generation form from flags.
func ParseGenerateParams(flags *pflag.FlagSet) (services.GeneratePixParams, error) {
	v, err := stringFlags(flags, "client", "key", "amount")
	if err != nil {
		return services.GeneratePixParams{}, err
	}

	params := services.GeneratePixParams{ClienteID: v["client"], Chave: v["key"]}
	amount := v["amount"]
	if strings.TrimSpace(amount) == "" {
		return params, nil
	}
	cents, err := money.ParseCents(NormalizeAmount(amount))
	if err != nil {
		return params, fmt.Errorf("invalid --amount: %w", err)
	}
	params.Valor = float64(cents) / 100
	return params, nil
}

// NormalizeAmount accepts both "1.234,56" and "1234.56" on the command line
// and returns the pt-BR display form. Bare digits are read as reais.
func NormalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, ",") {
		return s
	}
	if i := strings.LastIndex(s, "."); i >= 0 && len(s)-i-1 <= 2 && strings.Count(s, ".") == 1 {
		return s[:i] + "," + s[i+1:]
	}
	return s
}
