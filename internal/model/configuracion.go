package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConfiguracionNegocio holds the single business profile row.
// TasaImpuesto is stored for display; ticket totals do not apply it.
type ConfiguracionNegocio struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre       string    `gorm:"not null"`
	Direccion    *string
	Telefono     *string
	LogoURL      *string
	TasaImpuesto decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ConfiguracionNegocio) TableName() string { return "configuracion_negocio" }
