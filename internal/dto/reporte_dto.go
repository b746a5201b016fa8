package dto

import "github.com/shopspring/decimal"

type TopProductoResponse struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int64           `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
}

type ReporteDiarioResponse struct {
	Fecha          string                `json:"fecha"`
	Total          decimal.Decimal       `json:"total"`
	Efectivo       decimal.Decimal       `json:"efectivo"`
	Tarjeta        decimal.Decimal       `json:"tarjeta"`
	Credito        decimal.Decimal       `json:"credito"`
	Abonos         decimal.Decimal       `json:"abonos"`
	Transacciones  int64                 `json:"transacciones"`
	TicketPromedio decimal.Decimal       `json:"ticket_promedio"`
	TopProductos   []TopProductoResponse `json:"top_productos"`
}
