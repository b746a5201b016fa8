package repository

import (
	"context"

	"posbuddy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketPendienteRepository interface {
	Create(ctx context.Context, t *model.TicketPendiente) error
	ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.TicketPendiente, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.TicketPendiente, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ticketPendienteRepo struct{ db *gorm.DB }

func NewTicketPendienteRepository(db *gorm.DB) TicketPendienteRepository {
	return &ticketPendienteRepo{db: db}
}

func (r *ticketPendienteRepo) Create(ctx context.Context, t *model.TicketPendiente) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ticketPendienteRepo) ListByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.TicketPendiente, error) {
	var list []model.TicketPendiente
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *ticketPendienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TicketPendiente, error) {
	var t model.TicketPendiente
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *ticketPendienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TicketPendiente{}, "id = ?", id).Error
}
