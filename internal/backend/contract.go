package backend

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"pixshield/internal/models"
)

// Contract selects which analysis response shape is expected.
type Contract string

const (
	// ContractAuto picks v1 when acao_recomendada is present, v2 otherwise.
	ContractAuto Contract = "auto"
	// ContractV1: acao_recomendada, nivel_risco (BAIXO/MÉDIO/ALTO), pontuacao_risco.
	ContractV1 Contract = "v1"
	// ContractV2: recomendacao, nivel_risco or risco (BAIXO/MEDIO/ALTO), pontuacao_risco or score.
	ContractV2 Contract = "v2"
)

// ParseContract parses the configured contract version. Empty means auto.
func ParseContract(s string) (Contract, error) {
	switch c := Contract(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ContractAuto, nil
	case ContractAuto, ContractV1, ContractV2:
		return c, nil
	default:
		return "", fmt.Errorf("invalid backend contract %q (expected auto, v1 or v2)", s)
	}
}

type rawAnalysis struct {
	TransactionID   json.RawMessage `json:"transaction_id"`
	FraudeDetectada bool            `json:"fraude_detectada"`
	NivelRisco      string          `json:"nivel_risco"`
	Risco           string          `json:"risco"`
	AcaoRecomendada *string         `json:"acao_recomendada"`
	Recomendacao    *string         `json:"recomendacao"`
	PontuacaoRisco  *float64        `json:"pontuacao_risco"`
	Score           *float64        `json:"score"`
	Alertas         json.RawMessage `json:"alertas"`
	Mensagem        string          `json:"mensagem"`
}

var actions = map[string]models.Action{
	"LIBERAR":  models.ActionAllow,
	"APROVAR":  models.ActionAllow,
	"ALERTAR":  models.ActionAlert,
	"BLOQUEAR": models.ActionBlock,
}

var tiers = map[string]models.RiskTier{
	"BAIXO": models.RiskLow,
	"MEDIO": models.RiskMedium,
	"ALTO":  models.RiskHigh,
}

// NormalizeAnalysis validates body against contract and maps it to models.Analysis.
func NormalizeAnalysis(body []byte, contract Contract) (*models.Analysis, error) {
	var raw rawAnalysis
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode analysis: %v", models.ErrContract, err)
	}

	version := contract
	if version == ContractAuto || version == "" {
		version = ContractV2
		if raw.AcaoRecomendada != nil {
			version = ContractV1
		}
	}

	var action, tier string
	var score *float64
	switch version {
	case ContractV1:
		if raw.AcaoRecomendada == nil {
			return nil, fmt.Errorf("%w: v1 response without acao_recomendada", models.ErrContract)
		}
		action, tier, score = *raw.AcaoRecomendada, raw.NivelRisco, raw.PontuacaoRisco
	case ContractV2:
		if raw.Recomendacao == nil {
			return nil, fmt.Errorf("%w: v2 response without recomendacao", models.ErrContract)
		}
		action, tier, score = *raw.Recomendacao, firstNonEmpty(raw.NivelRisco, raw.Risco), raw.PontuacaoRisco
		if score == nil {
			score = raw.Score
		}
	default:
		return nil, fmt.Errorf("%w: unsupported contract %q", models.ErrContract, version)
	}

	a := &models.Analysis{
		TransactionID:   rawString(raw.TransactionID),
		FraudDetected:   raw.FraudeDetectada,
		Message:         raw.Mensagem,
		ContractVersion: string(version),
	}

	var ok bool
	if a.Action, ok = actions[foldKey(action)]; !ok {
		return nil, fmt.Errorf("%w: unknown action %q", models.ErrContract, action)
	}
	if a.Tier, ok = tiers[foldKey(tier)]; !ok {
		return nil, fmt.Errorf("%w: unknown risk tier %q", models.ErrContract, tier)
	}
	if score == nil {
		return nil, fmt.Errorf("%w: missing risk score", models.ErrContract)
	}
	if *score < 0 || *score > 100 {
		return nil, fmt.Errorf("%w: risk score %v out of range 0-100", models.ErrContract, *score)
	}
	a.Score = *score

	alerts, err := parseAlerts(raw.Alertas)
	if err != nil {
		return nil, fmt.Errorf("%w: alertas: %v", models.ErrContract, err)
	}
	a.Alerts = alerts
	return a, nil
}

// parseAlerts accepts an array, a JSON-encoded array inside a string, or a
// single plain string.
func parseAlerts(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return []string{s}, nil
}

// foldKey upper-cases v and strips accents: "Médio" -> "MEDIO".
func foldKey(v string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(v))
	if err != nil {
		folded = v
	}
	return strings.ToUpper(folded)
}

// rawString renders a JSON string or number as a plain string.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
