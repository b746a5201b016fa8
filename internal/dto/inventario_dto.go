package dto

import "github.com/shopspring/decimal"

type MovimientoInventarioRequest struct {
	ProductoID string  `json:"producto_id" validate:"required,uuid"`
	Tipo       string  `json:"tipo"        validate:"required,oneof=entrada salida"`
	Cantidad   int     `json:"cantidad"    validate:"required,min=1"`
	Notas      *string `json:"notas"       validate:"omitempty,max=500"`
}

type MovimientoFilter struct {
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Tipo       string `form:"tipo"        validate:"omitempty,oneof=entrada salida ajuste venta"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MovimientoInventarioResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto,omitempty"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Notas         *string `json:"notas"`
	ReferenciaID  *string `json:"referencia_id"`
	CreatedAt     string  `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoInventarioResponse `json:"data"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

type AlertaStockResponse struct {
	ProductoID  string `json:"producto_id"`
	Nombre      string `json:"nombre"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
	Faltante    int    `json:"faltante"`
}

type ResumenInventarioResponse struct {
	Productos       int64           `json:"productos"`
	Unidades        int64           `json:"unidades"`
	ValorInventario decimal.Decimal `json:"valor_inventario"`
	StockBajo       int             `json:"stock_bajo"`
}
