package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha     string `form:"fecha"` // YYYY-MM-DD; empty = today
	ClienteID string `form:"cliente_id" validate:"omitempty,uuid"`
	Metodo    string `form:"metodo"     validate:"omitempty,oneof=efectivo tarjeta credito"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID           string              `json:"id"`
	NumeroTicket int                 `json:"numero_ticket"`
	UsuarioID    string              `json:"usuario_id"`
	ClienteID    *string             `json:"cliente_id"`
	Items        []ItemVentaResponse `json:"items"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Descuento    decimal.Decimal     `json:"descuento"`
	Impuesto     decimal.Decimal     `json:"impuesto"`
	Total        decimal.Decimal     `json:"total"`
	PagoRecibido decimal.Decimal     `json:"pago_recibido"`
	Cambio       decimal.Decimal     `json:"cambio"`
	MetodoPago   string              `json:"metodo_pago"`
	EsCredito    bool                `json:"es_credito"`
	Estado       string              `json:"estado"`
	CreatedAt    string              `json:"created_at"`
}
