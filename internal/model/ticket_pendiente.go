package model

import (
	"time"

	"github.com/google/uuid"
)

// TicketPendiente is a parked ticket that can be resumed later.
// Contenido holds the JSON-encoded ticket lines.
type TicketPendiente struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClienteID *uuid.UUID `gorm:"type:uuid"`
	Contenido []byte     `gorm:"type:jsonb;not null"`
	Notas     *string
	CreatedAt time.Time

	Cliente *Cliente `gorm:"foreignKey:ClienteID"`
}

func (TicketPendiente) TableName() string { return "tickets_pendientes" }
