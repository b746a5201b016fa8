package repository

import (
	"context"

	"posbuddy/internal/model"

	"gorm.io/gorm"
)

type CorteCajaRepository interface {
	Create(ctx context.Context, c *model.CorteCaja) error
	List(ctx context.Context, limit int) ([]model.CorteCaja, error)
}

type corteCajaRepo struct{ db *gorm.DB }

func NewCorteCajaRepository(db *gorm.DB) CorteCajaRepository { return &corteCajaRepo{db: db} }

func (r *corteCajaRepo) Create(ctx context.Context, c *model.CorteCaja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *corteCajaRepo) List(ctx context.Context, limit int) ([]model.CorteCaja, error) {
	var cortes []model.CorteCaja
	err := r.db.WithContext(ctx).Order("fecha_corte DESC, created_at DESC").Limit(limit).Find(&cortes).Error
	return cortes, err
}
