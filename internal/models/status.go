package models

/*
Risk, action and outcome constants shared by the backend client, the
services and the API. Backend spellings (BAIXO, MÉDIO, LIBERAR, ...) are
normalized into these values at the client boundary.
*/

// RiskTier is the coarse fraud likelihood reported by the analysis backend.
type RiskTier string

const (
	RiskLow    RiskTier = "LOW"
	RiskMedium RiskTier = "MEDIUM"
	RiskHigh   RiskTier = "HIGH"
)

// Action is the backend's recommendation for a transaction.
type Action string

const (
	ActionAllow Action = "ALLOW"
	ActionAlert Action = "ALERT"
	ActionBlock Action = "BLOCK"
)

// Outcome status of a PIX send.
const (
	OutcomeApproved             = "approved"
	OutcomeAlert                = "alert"
	OutcomeConfirmationRequired = "confirmation_required"
	OutcomeBlocked              = "blocked"
)
