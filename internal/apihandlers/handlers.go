package apihandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"pixshield/internal/app"
	"pixshield/internal/backend"
	"pixshield/internal/models"
	"pixshield/internal/services"
	"pixshield/internal/store"
	"pixshield/pkg/money"
)

const (
	msgBackendFailure = "Erro ao processar transação"
	msgTryAgain       = "Tente novamente em alguns instantes"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

type ClassifyKeyRequest struct {
	Chave string `json:"chave"`
}

type FormatAmountResponse struct {
	Formatado string  `json:"formatado"`
	Valor     float64 `json:"valor"`
	Cents     int64   `json:"centavos"`
}

type TransferRequest struct {
	Conta string `json:"conta"`
	Valor string `json:"valor"`
}

// ClassifyKeyHandler handles POST /pix/keys/classify.
func (h *APIHandler) ClassifyKeyHandler(c *gin.Context) {
	var req ClassifyKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Chave == "" {
		BadRequest(c, "missing required field: chave")
		return
	}
	c.JSON(http.StatusOK, h.App.KeyService.Classify(req.Chave))
}

// FormatAmountHandler handles GET /amount/format?digits=.
func (h *APIHandler) FormatAmountHandler(c *gin.Context) {
	cents := money.CentsFromDigits(c.Query("digits"))
	c.JSON(http.StatusOK, FormatAmountResponse{
		Formatado: money.FormatCents(cents),
		Valor:     float64(cents) / 100,
		Cents:     cents,
	})
}

// SendPixHandler handles POST /pix/send. confirm=true acknowledges a high risk analysis.
func (h *APIHandler) SendPixHandler(c *gin.Context) {
	var params services.SendPixParams
	if err := c.ShouldBindJSON(&params); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	confirmed, err := parseBoolQuery(c, "confirm")
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	out, err := h.App.PixService.Send(c.Request.Context(), params, confirmed)
	if err != nil {
		h.respondWithServiceError(c, "SendPixHandler", err)
		return
	}
	c.JSON(statusForOutcome(out.Status), gin.H{"data": out})
}

// GeneratePixHandler handles POST /pix/generate.
func (h *APIHandler) GeneratePixHandler(c *gin.Context) {
	var params services.GeneratePixParams
	if err := c.ShouldBindJSON(&params); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	resp, err := h.App.PixService.Generate(c.Request.Context(), params)
	if err != nil {
		// the backend's own message is what the user sees on a rejected generation
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) && statusErr.Message != "" {
			log.WithError(err).WithField("request_id", requestID(c)).Warn("GeneratePixHandler: backend rejected generation")
			BadGateway(c, msgBackendFailure, statusErr.Message)
			return
		}
		h.respondWithServiceError(c, "GeneratePixHandler", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

// ListTransactionsHandler handles GET /pix/transactions.
func (h *APIHandler) ListTransactionsHandler(c *gin.Context) {
	limit, offset, err := parsePagination(c)
	if err != nil {
		BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	items, err := h.App.PixService.Transactions(c.Request.Context(), limit, offset)
	if err != nil {
		Internal(c, fmt.Sprintf("ListTransactionsHandler: failed to list transactions: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetTransactionHandler handles GET /pix/transactions/:id.
func (h *APIHandler) GetTransactionHandler(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.App.PixService.Transaction(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, fmt.Sprintf("Transaction not found with ID: %s", id))
		} else {
			Internal(c, fmt.Sprintf("GetTransactionHandler: failed to retrieve transaction: %v", err))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

// BalanceHandler handles GET /account/balance.
func (h *APIHandler) BalanceHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.App.AccountService.Balance()})
}

// TransferHandler handles POST /account/transfer.
func (h *APIHandler) TransferHandler(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	receipt, err := h.App.AccountService.Transfer(req.Conta, req.Valor)
	if err != nil {
		h.respondWithServiceError(c, "TransferHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": receipt})
}

// respondWithServiceError maps service errors onto the error envelope.
func (h *APIHandler) respondWithServiceError(c *gin.Context, op string, err error) {
	var verr *services.ValidationErrors
	switch {
	case errors.As(err, &verr):
		Unprocessable(c, verr.Message, verr.Names())
	case errors.Is(err, models.ErrValidation):
		Unprocessable(c, err.Error(), nil)
	case errors.Is(err, models.ErrInsufficientFunds):
		Conflict(c, err.Error())
	case errors.Is(err, models.ErrBackend), errors.Is(err, models.ErrContract):
		log.WithError(err).WithField("request_id", requestID(c)).Warnf("%s: backend failure", op)
		BadGateway(c, msgBackendFailure, msgTryAgain)
	default:
		Internal(c, fmt.Sprintf("%s: %v", op, err))
	}
}

func statusForOutcome(status string) int {
	switch status {
	case models.OutcomeApproved, models.OutcomeAlert:
		return http.StatusCreated
	default:
		return http.StatusOK
	}
}

// parsePagination reads limit (default 20) and offset (default 0).
func parsePagination(c *gin.Context) (int, int, error) {
	limit := 20
	offset := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		} else {
			return 0, 0, fmt.Errorf("invalid limit: %s", l)
		}
	}
	if o := c.Query("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		} else {
			return 0, 0, fmt.Errorf("invalid offset: %s", o)
		}
	}
	return limit, offset, nil
}

func parseBoolQuery(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return v, nil
}
