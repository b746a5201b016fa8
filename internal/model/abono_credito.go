package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AbonoCredito records a payment a customer made against their balance.
type AbonoCredito struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID uuid.UUID       `gorm:"type:uuid;not null;index"`
	VentaID   *uuid.UUID      `gorm:"type:uuid"`
	UsuarioID uuid.UUID       `gorm:"type:uuid;not null"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notas     *string
	CreatedAt time.Time `gorm:"index"`
}

func (AbonoCredito) TableName() string { return "abonos_credito" }
