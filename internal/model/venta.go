package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de venta.
const (
	VentaCompletada = "completada"
	VentaCancelada  = "cancelada"
)

// Venta is immutable once created.
// Descuento and Impuesto are stored but always zero under current pricing rules.
type Venta struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroTicket int             `gorm:"uniqueIndex;not null"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClienteID    *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Impuesto     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PagoRecibido decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Cambio       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MetodoPago   string          `gorm:"type:varchar(20);not null"` // efectivo | tarjeta | credito
	EsCredito    bool            `gorm:"not null;default:false"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'completada'"`
	CreatedAt    time.Time       `gorm:"index"`

	Items   []VentaItem `gorm:"foreignKey:VentaID"`
	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
	Usuario *Usuario    `gorm:"foreignKey:UsuarioID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one ticket line frozen at checkout.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Descuento      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }
