package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AgregarLineaRequest adds a product by id or by barcode; one of the two is
// required. Cantidad defaults to 1.
type AgregarLineaRequest struct {
	ProductoID   *string `json:"producto_id"   validate:"omitempty,uuid"`
	CodigoBarras *string `json:"codigo_barras" validate:"omitempty,min=1"`
	Cantidad     *int    `json:"cantidad"      validate:"omitempty,min=1"`
}

type ActualizarCantidadRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

type AsignarClienteRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
}

type CobrarRequest struct {
	MetodoPago   string          `json:"metodo_pago"   validate:"required,oneof=efectivo tarjeta credito"`
	PagoRecibido decimal.Decimal `json:"pago_recibido" validate:"min=0"`
}

type GuardarPendienteRequest struct {
	Notas *string `json:"notas" validate:"omitempty,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	CodigoBarras   *string         `json:"codigo_barras"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Mayoreo        bool            `json:"mayoreo"`
}

type ClienteTicketResponse struct {
	ID                string          `json:"id"`
	Nombre            string          `json:"nombre"`
	SaldoActual       decimal.Decimal `json:"saldo_actual"`
	CreditoDisponible decimal.Decimal `json:"credito_disponible"`
}

type TicketResponse struct {
	Lineas   []LineaResponse        `json:"lineas"`
	Cliente  *ClienteTicketResponse `json:"cliente"`
	Subtotal decimal.Decimal        `json:"subtotal"`
	Total    decimal.Decimal        `json:"total"`
}

type TicketPendienteResponse struct {
	ID        string          `json:"id"`
	ClienteID *string         `json:"cliente_id"`
	Lineas    int             `json:"lineas"`
	Total     decimal.Decimal `json:"total"`
	Notas     *string         `json:"notas"`
	CreatedAt string          `json:"created_at"`
}
