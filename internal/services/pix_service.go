package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"pixshield/internal/models"
	"pixshield/internal/store"
	"pixshield/internal/util"
	"pixshield/pkg/money"
)

// DataHoraLayout is the local date-time layout of the form and the backend.
const DataHoraLayout = "2006-01-02T15:04"

var dataHoraLayouts = []string{DataHoraLayout, "2006-01-02T15:04:05", time.RFC3339}

// PixService runs the payment form: validation, risk analysis and PIX generation.
type PixService struct {
	backend PaymentBackend
	keys    *KeyService
	history store.TransactionStore
	now     func() time.Time
}

// PixOption configures a PixService.
type PixOption func(*PixService)

// WithTransactionStore records every analyzed send in st.
func WithTransactionStore(st store.TransactionStore) PixOption {
	return func(s *PixService) { s.history = st }
}

func NewPixService(backend PaymentBackend, keys *KeyService, opts ...PixOption) *PixService {
	if keys == nil {
		keys = NewKeyService(nil)
	}
	s := &PixService{backend: backend, keys: keys, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate returns nil when the form can be submitted, otherwise the flagged fields.
func (s *PixService) Validate(p SendPixParams) *ValidationErrors {
	verr := newValidationErrors()

	sender := util.CleanInput(p.RemetenteID)
	recipient := util.CleanInput(p.DestinatarioID)
	if sender == "" {
		verr.flag(FieldRemetenteID)
	}
	if recipient == "" {
		verr.flag(FieldDestinatarioID)
	}
	if util.CleanInput(p.ChaveDestino) == "" {
		verr.flag(FieldChaveDestino)
	}
	if cents, err := money.ParseCents(p.Valor); err != nil || cents <= 0 {
		verr.flag(FieldValor)
	}
	if sender != "" && recipient != "" && sender == recipient {
		verr.flag(FieldMesmoID)
	}
	if dh := util.CleanInput(p.DataHora); dh == "" {
		verr.flag(FieldDataHora)
	} else if _, err := parseDataHora(dh); err != nil {
		verr.flag(FieldDataHora)
	}

	if verr.empty() {
		// ids are numeric on the wire
		if !util.IsDigits(sender) {
			verr.flag(FieldRemetenteID)
		}
		if !util.IsDigits(recipient) {
			verr.flag(FieldDestinatarioID)
		}
		if !verr.empty() {
			verr.Message = msgInvalidID
			return verr
		}
		senderID, err := strconv.ParseInt(sender, 10, 64)
		if err != nil {
			verr.flag(FieldRemetenteID)
		}
		recipientID, err := strconv.ParseInt(recipient, 10, 64)
		if err != nil {
			verr.flag(FieldDestinatarioID)
		}
		if !verr.empty() {
			verr.Message = msgInvalidID
			return verr
		}
		// "01" and "1" are the same account once parsed
		if senderID == recipientID {
			verr.flag(FieldMesmoID)
			verr.Message = msgSameID
			return verr
		}
		return nil
	}

	verr.Message = msgRequired
	if verr.Has(FieldMesmoID) {
		verr.Message = msgSameID
	}
	return verr
}

// BuildRequest turns a valid form into the analysis request.
func (s *PixService) BuildRequest(p SendPixParams) (models.TransactionRequest, KeyInfo, error) {
	key, err := s.keys.Resolve(p.ChaveDestino, p.TipoChave)
	if err != nil {
		verr := newValidationErrors()
		verr.flag(FieldChaveDestino)
		verr.Message = fmt.Sprintf("Tipo de chave inválido: %q.", p.TipoChave)
		return models.TransactionRequest{}, KeyInfo{}, verr
	}
	if !key.Kind.Known() {
		verr := newValidationErrors()
		verr.flag(FieldChaveDestino)
		verr.Message = "Não foi possível identificar o tipo da chave PIX."
		return models.TransactionRequest{}, key, verr
	}

	cents, err := money.ParseCents(p.Valor)
	if err != nil {
		return models.TransactionRequest{}, key, fmt.Errorf("%w: valor: %v", models.ErrValidation, err)
	}
	sender, err := strconv.ParseInt(util.CleanInput(p.RemetenteID), 10, 64)
	if err != nil {
		return models.TransactionRequest{}, key, fmt.Errorf("%w: remetenteId: %w", models.ErrValidation, err)
	}
	recipient, err := strconv.ParseInt(util.CleanInput(p.DestinatarioID), 10, 64)
	if err != nil {
		return models.TransactionRequest{}, key, fmt.Errorf("%w: destinatarioId: %w", models.ErrValidation, err)
	}
	dataHora := s.now()
	if dh := util.CleanInput(p.DataHora); dh != "" {
		if dataHora, err = parseDataHora(dh); err != nil {
			return models.TransactionRequest{}, key, fmt.Errorf("%w: dataHora: %v", models.ErrValidation, err)
		}
	}

	descricao := util.CleanInput(p.Descricao)
	if descricao == "" {
		descricao = "Pix para " + key.Display
	}

	return models.TransactionRequest{
		Valor:          money.WireValue(cents),
		ChaveDestino:   key.Display,
		TipoChave:      key.WireName,
		Descricao:      descricao,
		RemetenteID:    sender,
		DestinatarioID: recipient,
		DataHora:       dataHora.Format(DataHoraLayout),
	}, key, nil
}

// Send validates the form, asks the backend for a risk analysis and, unless
// the risk gate stops it, generates the PIX. Generation is never attempted
// before the analysis resolves. A BLOCK recommendation always stops the
// chain; a HIGH tier stops it until the user confirms.
func (s *PixService) Send(ctx context.Context, p SendPixParams, confirmed bool) (*SendPixOutcome, error) {
	if verr := s.Validate(p); verr != nil {
		return nil, verr
	}
	req, key, err := s.BuildRequest(p)
	if err != nil {
		return nil, err
	}

	logger := log.WithFields(log.Fields{
		"remetente":    req.RemetenteID,
		"destinatario": req.DestinatarioID,
		"tipo_chave":   req.TipoChave,
		"valor":        req.Valor,
	})
	logger.Info("analyzing pix transaction")

	analysis, err := s.backend.Analyze(ctx, req)
	if err != nil {
		logger.WithError(err).Warn("risk analysis failed")
		return nil, fmt.Errorf("analyze transaction: %w", err)
	}

	out := &SendPixOutcome{Key: key, Request: req, Analysis: analysis}
	score := strconv.FormatFloat(analysis.Score, 'f', -1, 64)

	switch {
	case analysis.Action == models.ActionBlock:
		out.Status = models.OutcomeBlocked
		out.Message = fmt.Sprintf("Transação bloqueada! (Risco: %s%%)", score)
		logger.WithField("score", analysis.Score).Warn("transaction blocked by risk analysis")
		s.record(ctx, out)
		return out, nil
	case analysis.HighRisk() && !confirmed:
		out.Status = models.OutcomeConfirmationRequired
		out.Message = fmt.Sprintf("Risco alto (Risco: %s%%). Confirme para continuar.", score)
		logger.WithField("score", analysis.Score).Info("high risk, waiting for confirmation")
		s.record(ctx, out)
		return out, nil
	}

	cents, _ := money.ParseCents(p.Valor)
	pix, err := s.backend.GeneratePix(ctx, models.PixRequest{
		ClienteID:       req.RemetenteID,
		ChavePixDestino: req.ChaveDestino,
		Valor:           float64(cents) / 100,
	})
	if err != nil {
		logger.WithError(err).Warn("pix generation failed")
		return nil, fmt.Errorf("generate pix: %w", err)
	}
	out.Pix = pix

	if analysis.Action == models.ActionAlert {
		out.Status = models.OutcomeAlert
		out.Message = fmt.Sprintf("Atenção necessária (Risco: %s%%)", score)
	} else {
		out.Status = models.OutcomeApproved
		out.Message = fmt.Sprintf("Transação aprovada! (Risco: %s%%)", score)
	}
	logger.WithField("status", out.Status).Info("pix sent")
	s.record(ctx, out)
	return out, nil
}

// Transactions lists the recorded sends, newest first.
func (s *PixService) Transactions(ctx context.Context, limit, offset int) ([]*models.TransactionRecord, error) {
	if s.history == nil {
		return []*models.TransactionRecord{}, nil
	}
	items, err := s.history.ListTransactions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return items, nil
}

// Transaction returns one recorded send.
func (s *PixService) Transaction(ctx context.Context, id string) (*models.TransactionRecord, error) {
	if s.history == nil {
		return nil, fmt.Errorf("transaction %s: %w", id, store.ErrNotFound)
	}
	return s.history.GetTransaction(ctx, id)
}

func (s *PixService) record(ctx context.Context, out *SendPixOutcome) {
	if s.history == nil {
		return
	}
	rec := &models.TransactionRecord{
		ID:        out.Analysis.TransactionID,
		Status:    out.Status,
		Message:   out.Message,
		Request:   out.Request,
		Analysis:  out.Analysis,
		CreatedAt: s.now(),
	}
	if out.Pix != nil {
		rec.CodigoPix = out.Pix.CodigoPix
	}
	if err := s.history.CreateTransaction(ctx, rec); err != nil {
		// a backend id reused across a confirmation retry
		rec.ID = ""
		if err := s.history.CreateTransaction(ctx, rec); err != nil {
			log.WithError(err).Warn("failed to record transaction")
			return
		}
	}
	out.ID = rec.ID
}

// Generate creates a PIX directly, without risk analysis.
func (s *PixService) Generate(ctx context.Context, p GeneratePixParams) (*models.PixResponse, error) {
	verr := newValidationErrors()
	clientID := util.CleanInput(p.ClienteID)
	if !util.IsDigits(clientID) {
		verr.flag(FieldClienteID)
	}
	chave := util.CleanInput(p.Chave)
	if chave == "" {
		verr.flag(FieldChaveDestino)
	}
	// amounts below half a centavo round to zero
	cents := money.FromFloat(p.Valor)
	if cents <= 0 {
		verr.flag(FieldValor)
	}
	if !verr.empty() {
		verr.Message = "Todos os campos são obrigatórios"
		return nil, verr
	}

	id, err := strconv.ParseInt(clientID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: clienteId: %v", models.ErrValidation, err)
	}
	resp, err := s.backend.GeneratePix(ctx, models.PixRequest{
		ClienteID:       id,
		ChavePixDestino: chave,
		Valor:           float64(cents) / 100,
	})
	if err != nil {
		return nil, fmt.Errorf("generate pix: %w", err)
	}
	return resp, nil
}

func parseDataHora(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dataHoraLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
