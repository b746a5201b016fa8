package service

import (
	"context"
	"errors"
	"strings"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"
)

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

// Crear rejects names that differ from an existing category only by case.
func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if _, err := s.repo.FindByNombre(ctx, nombre); err == nil {
		return nil, ErrCategoriaDuplicada
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	c := &model.Categoria{Nombre: nombre, Descripcion: req.Descripcion}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return nil, ErrCategoriaDuplicada
		}
		return nil, err
	}
	return &dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre, Descripcion: c.Descripcion}, nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	list, err := s.repo.ListConProductos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, dto.CategoriaResponse{
			ID:          c.ID,
			Nombre:      c.Nombre,
			Descripcion: c.Descripcion,
			Productos:   c.Productos,
		})
	}
	return resp, nil
}
