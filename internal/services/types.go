package services

import (
	"context"

	"pixshield/internal/models"
	"pixshield/pkg/pixkey"
)

// PaymentBackend is the external analysis and payment service.
type PaymentBackend interface {
	Analyze(ctx context.Context, req models.TransactionRequest) (*models.Analysis, error)
	GeneratePix(ctx context.Context, req models.PixRequest) (*models.PixResponse, error)
}

// SendPixParams mirrors the payment form. Values are kept as typed so that
// validation can flag empty fields the way the form does.
type SendPixParams struct {
	RemetenteID    string `json:"remetenteId"`
	DestinatarioID string `json:"destinatarioId"`
	ChaveDestino   string `json:"chaveDestino"`
	TipoChave      string `json:"tipoChave,omitempty"` // optional override of the detected kind
	Valor          string `json:"valor"`               // pt-BR display amount, "100,00"
	Descricao      string `json:"descricao,omitempty"`
	DataHora       string `json:"dataHora"` // 2006-01-02T15:04
}

// SendPixOutcome is the result of the analyse -> generate chain.
type SendPixOutcome struct {
	ID       string                    `json:"id,omitempty"`
	Status   string                    `json:"status"`
	Message  string                    `json:"message"`
	Key      KeyInfo                   `json:"key"`
	Request  models.TransactionRequest `json:"request"`
	Analysis *models.Analysis          `json:"analysis"`
	Pix      *models.PixResponse       `json:"pix,omitempty"`
}

// GeneratePixParams mirrors the direct generation form.
type GeneratePixParams struct {
	ClienteID string  `json:"clienteId"`
	Chave     string  `json:"chavePixDestino"`
	Valor     float64 `json:"valor"`
}

// KeyInfo is the API view of a classified key.
type KeyInfo struct {
	Kind     pixkey.Kind      `json:"tipo"`
	WireName string           `json:"tipo_chave,omitempty"`
	Phone    pixkey.PhoneType `json:"telefone,omitempty"`
	Display  string           `json:"formatada"`
	Matched  bool             `json:"reconhecida"`
	Rule     string           `json:"regra,omitempty"`
}
