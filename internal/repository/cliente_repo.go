package repository

import (
	"context"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	// Search matches name or phone, case-insensitive, active customers only.
	Search(ctx context.Context, q string, limit int) ([]model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListAbonos(ctx context.Context, clienteID uuid.UUID) ([]model.AbonoCredito, error)

	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error)
	UpdateSaldoTx(tx *gorm.DB, id uuid.UUID, saldo decimal.Decimal) error
	CreateAbonoTx(tx *gorm.DB, a *model.AbonoCredito) error

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return traducirError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) Search(ctx context.Context, q string, limit int) ([]model.Cliente, error) {
	var clientes []model.Cliente
	like := patronContiene(q)
	err := r.db.WithContext(ctx).
		Where(`activo = true AND (nombre ILIKE ? ESCAPE '\' OR telefono ILIKE ? ESCAPE '\')`, like, like).
		Order("nombre ASC").
		Limit(limit).
		Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var clientes []model.Cliente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("activo = true")
	if filter.Q != "" {
		like := patronContiene(filter.Q)
		q = q.Where(`(nombre ILIKE ? ESCAPE '\' OR telefono ILIKE ? ESCAPE '\')`, like, like)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&clientes).Error
	return clientes, total, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return traducirError(r.db.WithContext(ctx).Save(c).Error)
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *clienteRepo) ListAbonos(ctx context.Context, clienteID uuid.UUID) ([]model.AbonoCredito, error) {
	var abonos []model.AbonoCredito
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).
		Order("created_at DESC").Find(&abonos).Error
	return abonos, err
}

// FindByIDTx reads the customer with a row lock held until the transaction ends.
func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) UpdateSaldoTx(tx *gorm.DB, id uuid.UUID, saldo decimal.Decimal) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).Update("saldo_actual", saldo).Error
}

func (r *clienteRepo) CreateAbonoTx(tx *gorm.DB, a *model.AbonoCredito) error {
	return tx.Create(a).Error
}
