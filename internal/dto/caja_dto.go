package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CorteCajaRequest struct {
	MontoInicial decimal.Decimal `json:"monto_inicial" validate:"min=0"`
	MontoReal    decimal.Decimal `json:"monto_real"    validate:"min=0"`
	Fecha        string          `json:"fecha"         validate:"omitempty,datetime=2006-01-02"`
	Notas        *string         `json:"notas"         validate:"omitempty,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CorteCajaResponse struct {
	ID                 string          `json:"id"`
	UsuarioID          string          `json:"usuario_id"`
	Fecha              string          `json:"fecha"`
	MontoInicial       decimal.Decimal `json:"monto_inicial"`
	VentasEfectivo     decimal.Decimal `json:"ventas_efectivo"`
	VentasTarjeta      decimal.Decimal `json:"ventas_tarjeta"`
	VentasCredito      decimal.Decimal `json:"ventas_credito"`
	AbonosRecibidos    decimal.Decimal `json:"abonos_recibidos"`
	MontoEsperado      decimal.Decimal `json:"monto_esperado"`
	MontoReal          decimal.Decimal `json:"monto_real"`
	Diferencia         decimal.Decimal `json:"diferencia"`
	TotalTransacciones int             `json:"total_transacciones"`
	Notas              *string         `json:"notas"`
}
