package models

import "time"

// TransactionRequest is the body of POST /transacoes/analisar.
type TransactionRequest struct {
	Valor          string `json:"valor"` // dot decimal, "100.00"
	ChaveDestino   string `json:"chaveDestino"`
	TipoChave      string `json:"tipoChave"`
	Descricao      string `json:"descricao"`
	RemetenteID    int64  `json:"remetenteId"`
	DestinatarioID int64  `json:"destinatarioId"`
	DataHora       string `json:"dataHora,omitempty"` // local ISO, 2006-01-02T15:04
}

// Analysis is a risk analysis normalized from any supported contract version.
type Analysis struct {
	TransactionID   string   `json:"transaction_id,omitempty"`
	FraudDetected   bool     `json:"fraud_detected"`
	Tier            RiskTier `json:"tier"`
	Action          Action   `json:"action"`
	Score           float64  `json:"score"`
	Alerts          []string `json:"alerts,omitempty"`
	Message         string   `json:"message,omitempty"`
	ContractVersion string   `json:"contract_version"`
}

// HighRisk reports whether the analysis must not proceed to generation
// without the user's explicit confirmation.
func (a *Analysis) HighRisk() bool {
	return a.Action == ActionBlock || a.Tier == RiskHigh
}

// PixRequest is the body of POST /pix.
type PixRequest struct {
	ClienteID       int64   `json:"clienteId"`
	ChavePixDestino string  `json:"chavePixDestino"`
	Valor           float64 `json:"valor"`
}

// PixResponse is returned by POST /pix. Base64Qr is a base64 PNG.
type PixResponse struct {
	CodigoPix    string `json:"codigoPix"`
	Base64Qr     string `json:"base64Qr"`
	Mensagem     string `json:"mensagem"`
	ChaveDestino string `json:"chaveDestino"`
}

// Account is the demo account shown on the dashboard.
type Account struct {
	Holder       string    `json:"holder"`
	BalanceCents int64     `json:"balance_cents"`
	Balance      string    `json:"balance"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TransferReceipt confirms a local transfer.
type TransferReceipt struct {
	Account      string `json:"account"`
	AmountCents  int64  `json:"amount_cents"`
	Message      string `json:"message"`
	BalanceCents int64  `json:"balance_cents"`
}

// TransactionRecord is a sent PIX kept in the transaction history.
type TransactionRecord struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Message   string             `json:"message"`
	Request   TransactionRequest `json:"request"`
	Analysis  *Analysis          `json:"analysis,omitempty"`
	CodigoPix string             `json:"codigo_pix,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
