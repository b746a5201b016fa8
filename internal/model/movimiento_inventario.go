package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
	MovimientoAjuste  = "ajuste"
	MovimientoVenta   = "venta"
)

// MovimientoInventario is an append-only record of a stock change.
// Cantidad is always positive; Tipo gives the direction.
type MovimientoInventario struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	UsuarioID     *uuid.UUID `gorm:"type:uuid"`
	Tipo          string     `gorm:"type:varchar(20);not null"`
	Cantidad      int        `gorm:"not null"`
	StockAnterior int        `gorm:"not null"`
	StockNuevo    int        `gorm:"not null"`
	Notas         *string
	ReferenciaID  *uuid.UUID `gorm:"type:uuid"` // venta_id when Tipo = venta
	CreatedAt     time.Time  `gorm:"index"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoInventario) TableName() string { return "movimientos_inventario" }
