package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMinimoDefault is applied when a product is created without an explicit
// minimum stock threshold.
const StockMinimoDefault = 5

// Producto is a sellable catalog item.
// PrecioMayoreo applies only when a single add to the ticket reaches CantidadMayoreo.
type Producto struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras    *string          `gorm:"uniqueIndex"`
	Nombre          string           `gorm:"index;not null"`
	Descripcion     *string
	CategoriaID     *uuid.UUID       `gorm:"type:uuid;index"`
	PrecioCompra    decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	PrecioVenta     decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	PrecioMayoreo   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	CantidadMayoreo *int
	Stock           int  `gorm:"not null;default:0"`
	StockMinimo     int  `gorm:"not null;default:5"`
	Activo          bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

// TableName keeps the plural Spanish table name.
func (Producto) TableName() string { return "productos" }

// ResolverStockMinimo returns the explicit threshold or StockMinimoDefault.
func ResolverStockMinimo(v *int) int {
	if v == nil || *v <= 0 {
		return StockMinimoDefault
	}
	return *v
}

// TieneMayoreo reports whether the wholesale tier is configured.
func (p *Producto) TieneMayoreo() bool {
	return p.PrecioMayoreo != nil && p.PrecioMayoreo.IsPositive() &&
		p.CantidadMayoreo != nil && *p.CantidadMayoreo > 0
}

// Faltante is the number of units needed to get back to StockMinimo.
func (p *Producto) Faltante() int {
	if p.Stock >= p.StockMinimo {
		return 0
	}
	return p.StockMinimo - p.Stock
}

// Codigo returns the barcode or "" when the product has none.
func (p *Producto) Codigo() string {
	if p.CodigoBarras == nil {
		return ""
	}
	return *p.CodigoBarras
}
