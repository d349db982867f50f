// Package backend talks to the external analysis and payment service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"pixshield/internal/models"
)

const (
	analyzePath = "/transacoes/analisar"
	pixPath     = "/pix"
	healthPath  = "/health"

	// maxErrorBody caps how much of a failed response is kept in StatusError.
	maxErrorBody = 2048
)

// StatusError is returned for non-2xx backend responses.
type StatusError struct {
	Op      string
	Code    int
	Body    string
	Message string // backend "mensagem", when the body carried one
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return models.ErrBackend }

// Client calls the backend. There is no retry; every failure is returned to
// the caller as is.
type Client struct {
	baseURL  string
	contract Contract
	http     *http.Client
}

// New creates a Client for baseURL (e.g. http://localhost:8080/api).
func New(baseURL string, timeout time.Duration, contract Contract) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if contract == "" {
		contract = ContractAuto
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		contract: contract,
		http:     &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// Analyze submits a transaction for risk analysis.
func (c *Client) Analyze(ctx context.Context, req models.TransactionRequest) (*models.Analysis, error) {
	body, err := c.post(ctx, "analyze", analyzePath, req)
	if err != nil {
		return nil, err
	}
	analysis, err := NormalizeAnalysis(body, c.contract)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	log.WithFields(log.Fields{
		"transaction_id": analysis.TransactionID,
		"action":         analysis.Action,
		"tier":           analysis.Tier,
		"score":          analysis.Score,
		"contract":       analysis.ContractVersion,
	}).Debug("analysis received")
	return analysis, nil
}

// GeneratePix asks the backend for a PIX code and QR image.
func (c *Client) GeneratePix(ctx context.Context, req models.PixRequest) (*models.PixResponse, error) {
	body, err := c.post(ctx, "generate pix", pixPath, req)
	if err != nil {
		return nil, err
	}
	var resp models.PixResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("generate pix: %w: decode: %v", models.ErrContract, err)
	}
	return &resp, nil
}

// Ping checks that the backend answers on its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	c.setHeaders(ctx, req)
	_, err = c.do("ping", req)
	return err
}

func (c *Client) post(ctx context.Context, op, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(ctx, req)
	return c.do(op, req)
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Accept", "application/json")
	id := RequestIDFromContext(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, id)
}

func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrBackend, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: read body: %w", op, models.ErrBackend, err)
	}

	log.WithFields(log.Fields{
		"op":         op,
		"url":        req.URL.String(),
		"status":     resp.StatusCode,
		"request_id": req.Header.Get(RequestIDHeader),
		"elapsed":    time.Since(start).String(),
	}).Debug("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(op, resp.StatusCode, body)
	}
	return body, nil
}

func newStatusError(op string, code int, body []byte) *StatusError {
	e := &StatusError{Op: op, Code: code}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	e.Body = strings.TrimSpace(string(body))

	var withMessage struct {
		Mensagem string `json:"mensagem"`
		Message  string `json:"message"`
	}
	if json.Unmarshal(body, &withMessage) == nil {
		e.Message = firstNonEmpty(withMessage.Mensagem, withMessage.Message)
	}
	return e
}
