package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente is a customer that may buy on credit.
// SaldoActual is only changed by a credit checkout or by an AbonoCredito.
type Cliente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre        string    `gorm:"index;not null"`
	Telefono      *string   `gorm:"index"`
	Email         *string
	Direccion     *string
	LimiteCredito decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoActual   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Cliente) TableName() string { return "clientes" }

// CreditoDisponible is informative only; checkout does not enforce it unless
// VALIDAR_LIMITE_CREDITO is enabled.
func (c *Cliente) CreditoDisponible() decimal.Decimal {
	return c.LimiteCredito.Sub(c.SaldoActual)
}
