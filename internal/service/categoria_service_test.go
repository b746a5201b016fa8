package service

import (
	"context"
	"strings"
	"testing"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCategoriaRepo struct {
	categorias []model.Categoria
}

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

func (r *stubCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	c.ID = uuid.New()
	r.categorias = append(r.categorias, *c)
	return nil
}

func (r *stubCategoriaRepo) FindByNombre(_ context.Context, nombre string) (*model.Categoria, error) {
	for i := range r.categorias {
		if strings.EqualFold(r.categorias[i].Nombre, nombre) {
			return &r.categorias[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoriaRepo) ListConProductos(_ context.Context) ([]repository.CategoriaConProductos, error) {
	list := make([]repository.CategoriaConProductos, 0, len(r.categorias))
	for _, c := range r.categorias {
		list = append(list, repository.CategoriaConProductos{Categoria: c, Productos: 3})
	}
	return list, nil
}

func TestCategoria_CrearYListar(t *testing.T) {
	svc := NewCategoriaService(&stubCategoriaRepo{})
	ctx := context.Background()

	c, err := svc.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "  Bebidas "})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", c.Nombre)

	_, err = svc.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "BEBIDAS"})
	assert.ErrorIs(t, err, ErrCategoriaDuplicada)

	list, err := svc.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 3, list[0].Productos)
}
