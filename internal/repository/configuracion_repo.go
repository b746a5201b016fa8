package repository

import (
	"context"

	"posbuddy/internal/model"

	"gorm.io/gorm"
)

// ConfiguracionRepository stores the single business profile row.
type ConfiguracionRepository interface {
	Get(ctx context.Context) (*model.ConfiguracionNegocio, error)
	Save(ctx context.Context, c *model.ConfiguracionNegocio) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Get(ctx context.Context) (*model.ConfiguracionNegocio, error) {
	var c model.ConfiguracionNegocio
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&c).Error
	return &c, err
}

func (r *configuracionRepo) Save(ctx context.Context, c *model.ConfiguracionNegocio) error {
	return r.db.WithContext(ctx).Save(c).Error
}
