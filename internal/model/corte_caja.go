package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CorteCaja is the end-of-day cash register cut.
// MontoEsperado = MontoInicial + VentasEfectivo + AbonosRecibidos.
type CorteCaja struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	MontoInicial       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoEsperado      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoReal          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Diferencia         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentasEfectivo     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentasCredito      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VentasTarjeta      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AbonosRecibidos    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalTransacciones int             `gorm:"not null"`
	Notas              *string
	FechaCorte         time.Time `gorm:"type:date;not null;index"`
	CreatedAt          time.Time
}

func (CorteCaja) TableName() string { return "cortes_caja" }
