package repository

import (
	"context"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	// FindParaLogin returns the active user whose username or email matches.
	FindParaLogin(ctx context.Context, login string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	List(ctx context.Context, filter dto.UsuarioFilter) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return traducirError(r.db.WithContext(ctx).Create(u).Error)
}

func (r *usuarioRepo) FindParaLogin(ctx context.Context, login string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("activo = true").
		Where(r.db.Where("username = LOWER(?)", login).Or("LOWER(email) = LOWER(?)", login)).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) List(ctx context.Context, filter dto.UsuarioFilter) ([]model.Usuario, error) {
	q := r.db.WithContext(ctx).Model(&model.Usuario{})
	if !filter.IncluirInactivos {
		q = q.Where("activo = true")
	}
	if filter.Rol != "" {
		q = q.Where("rol = ?", filter.Rol)
	}
	var users []model.Usuario
	err := q.Order("activo DESC, username ASC").Find(&users).Error
	return users, err
}

// Update writes the editable columns only; username and activo are left alone.
func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	err := r.db.WithContext(ctx).Model(u).
		Select("nombre", "email", "rol", "password_hash").
		Updates(u).Error
	return traducirError(err)
}

func (r *usuarioRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id = ? AND activo = true", id).
		Update("activo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
