// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// Machine-readable codes for errors the POS front-end reacts to.
const (
	CodeStockInsuficiente = "stock_insuficiente"
	CodeClienteRequerido  = "cliente_requerido"
	CodeLimiteCredito     = "limite_credito_excedido"
	CodeEscrituraRemota   = "escritura_remota"
	CodeNoEncontrado      = "no_encontrado"
	CodeValidacion        = "validacion"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func NewWithCode(code, msg string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Code: CodeValidacion, Fields: fields}
}
