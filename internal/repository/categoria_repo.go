package repository

import (
	"context"

	"posbuddy/internal/model"

	"gorm.io/gorm"
)

// CategoriaConProductos is a category plus how many active products use it.
type CategoriaConProductos struct {
	model.Categoria
	Productos int64
}

type CategoriaRepository interface {
	Create(ctx context.Context, c *model.Categoria) error
	// FindByNombre matches case-insensitively.
	FindByNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	ListConProductos(ctx context.Context) ([]CategoriaConProductos, error)
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository { return &categoriaRepo{db: db} }

func (r *categoriaRepo) Create(ctx context.Context, c *model.Categoria) error {
	return traducirError(r.db.WithContext(ctx).Create(c).Error)
}

func (r *categoriaRepo) FindByNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var c model.Categoria
	if err := r.db.WithContext(ctx).Where("LOWER(nombre) = LOWER(?)", nombre).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) ListConProductos(ctx context.Context) ([]CategoriaConProductos, error) {
	var list []CategoriaConProductos
	err := r.db.WithContext(ctx).
		Table("categorias c").
		Select("c.*, COUNT(p.id) AS productos").
		Joins("LEFT JOIN productos p ON p.categoria_id = c.id AND p.activo = true").
		Group("c.id").
		Order("c.nombre ASC").
		Scan(&list).Error
	return list, err
}
