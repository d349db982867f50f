package services

import (
	"sort"
	"strings"

	"pixshield/internal/models"
)

// Field flags raised by form validation.
const (
	FieldRemetenteID    = "remetenteId"
	FieldDestinatarioID = "destinatarioId"
	FieldChaveDestino   = "chaveDestino"
	FieldValor          = "valor"
	FieldDataHora       = "dataHora"
	FieldMesmoID        = "mesmoId"
	FieldClienteID      = "clienteId"
	FieldConta          = "conta"
)

const (
	msgRequired  = "Preencha todos os campos obrigatórios."
	msgSameID    = "Não é possível enviar Pix para si mesmo."
	msgInvalidID = "Os IDs devem conter apenas números."
)

// ValidationErrors is the set of field flags that blocked a submission.
type ValidationErrors struct {
	Fields  map[string]bool
	Message string
}

func newValidationErrors() *ValidationErrors {
	return &ValidationErrors{Fields: map[string]bool{}}
}

func (v *ValidationErrors) flag(field string) { v.Fields[field] = true }

// Has reports whether field was flagged.
func (v *ValidationErrors) Has(field string) bool { return v.Fields[field] }

// Names returns the flagged fields sorted.
func (v *ValidationErrors) Names() []string {
	names := make([]string, 0, len(v.Fields))
	for f := range v.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

func (v *ValidationErrors) empty() bool { return len(v.Fields) == 0 }

func (v *ValidationErrors) Error() string {
	return v.Message + " (" + strings.Join(v.Names(), ", ") + ")"
}

func (v *ValidationErrors) Unwrap() error { return models.ErrValidation }
