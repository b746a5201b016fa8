package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria is a catalog grouping. Names are unique ignoring case; the
// lowercase index lives in the schema patches.
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"type:varchar(100);not null"`
	Descripcion *string
	CreatedAt   time.Time
}

func (Categoria) TableName() string { return "categorias" }
