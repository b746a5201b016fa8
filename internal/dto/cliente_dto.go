package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=120"`
	Telefono      *string         `json:"telefono"       validate:"omitempty,max=30"`
	Email         *string         `json:"email"          validate:"omitempty,email"`
	Direccion     *string         `json:"direccion"`
	LimiteCredito decimal.Decimal `json:"limite_credito" validate:"min=0"`
}

type ActualizarClienteRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=2,max=120"`
	Telefono      *string          `json:"telefono"       validate:"omitempty,max=30"`
	Email         *string          `json:"email"          validate:"omitempty,email"`
	Direccion     *string          `json:"direccion"`
	LimiteCredito *decimal.Decimal `json:"limite_credito"`
}

type RegistrarAbonoRequest struct {
	Monto   decimal.Decimal `json:"monto"    validate:"required,gt=0"`
	VentaID *string         `json:"venta_id" validate:"omitempty,uuid"`
	Notas   *string         `json:"notas"    validate:"omitempty,max=500"`
}

type ClienteFilter struct {
	Q     string `form:"q"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	Telefono          *string         `json:"telefono"`
	Email             *string         `json:"email"`
	Direccion         *string         `json:"direccion"`
	LimiteCredito     decimal.Decimal `json:"limite_credito"`
	SaldoActual       decimal.Decimal `json:"saldo_actual"`
	CreditoDisponible decimal.Decimal `json:"credito_disponible"`
	Activo            bool            `json:"activo"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type AbonoResponse struct {
	ID            string          `json:"id"`
	ClienteID     string          `json:"cliente_id"`
	VentaID       *string         `json:"venta_id"`
	Monto         decimal.Decimal `json:"monto"`
	SaldoAnterior decimal.Decimal `json:"saldo_anterior,omitempty"`
	SaldoNuevo    decimal.Decimal `json:"saldo_nuevo,omitempty"`
	Notas         *string         `json:"notas"`
	CreatedAt     string          `json:"created_at"`
}
