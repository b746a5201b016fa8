package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	CodigoBarras    *string          `json:"codigo_barras"    validate:"omitempty,min=1,max=32"`
	Nombre          string           `json:"nombre"           validate:"required,min=2,max=120"`
	Descripcion     *string          `json:"descripcion"`
	CategoriaID     *string          `json:"categoria_id"     validate:"omitempty,uuid"`
	PrecioCompra    decimal.Decimal  `json:"precio_compra"    validate:"min=0"`
	PrecioVenta     decimal.Decimal  `json:"precio_venta"     validate:"required,gt=0"`
	PrecioMayoreo   *decimal.Decimal `json:"precio_mayoreo"`
	CantidadMayoreo *int             `json:"cantidad_mayoreo" validate:"omitempty,min=1"`
	Stock           int              `json:"stock"            validate:"min=0"`
	StockMinimo     *int             `json:"stock_minimo"     validate:"omitempty,min=0"`
}

type ActualizarProductoRequest struct {
	CodigoBarras    *string          `json:"codigo_barras"    validate:"omitempty,min=1,max=32"`
	Nombre          *string          `json:"nombre"           validate:"omitempty,min=2,max=120"`
	Descripcion     *string          `json:"descripcion"`
	CategoriaID     *string          `json:"categoria_id"     validate:"omitempty,uuid"`
	PrecioCompra    *decimal.Decimal `json:"precio_compra"`
	PrecioVenta     *decimal.Decimal `json:"precio_venta"`
	PrecioMayoreo   *decimal.Decimal `json:"precio_mayoreo"`
	CantidadMayoreo *int             `json:"cantidad_mayoreo" validate:"omitempty,min=0"`
	StockMinimo     *int             `json:"stock_minimo"     validate:"omitempty,min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Q           string `form:"q"`
	CategoriaID string `form:"categoria_id" validate:"omitempty,uuid"`
	Activo      string `form:"activo"` // "false" = inactivos, "all" = todos, default activos
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID              string           `json:"id"`
	CodigoBarras    *string          `json:"codigo_barras"`
	Nombre          string           `json:"nombre"`
	Descripcion     *string          `json:"descripcion"`
	CategoriaID     *string          `json:"categoria_id"`
	PrecioCompra    decimal.Decimal  `json:"precio_compra"`
	PrecioVenta     decimal.Decimal  `json:"precio_venta"`
	PrecioMayoreo   *decimal.Decimal `json:"precio_mayoreo"`
	CantidadMayoreo *int             `json:"cantidad_mayoreo"`
	Stock           int              `json:"stock"`
	StockMinimo     int              `json:"stock_minimo"`
	StockBajo       bool             `json:"stock_bajo"`
	Activo          bool             `json:"activo"`
}

type ProductoListResponse struct {
	Data       []ProductoResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// ConsultaPreciosResponse is returned by the public price check endpoint (no auth required).
type ConsultaPreciosResponse struct {
	Nombre          string           `json:"nombre"`
	PrecioVenta     decimal.Decimal  `json:"precio_venta"`
	PrecioMayoreo   *decimal.Decimal `json:"precio_mayoreo"`
	CantidadMayoreo *int             `json:"cantidad_mayoreo"`
	StockDisponible int              `json:"stock_disponible"`
}
