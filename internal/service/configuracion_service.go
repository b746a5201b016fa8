package service

import (
	"context"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"

	"github.com/shopspring/decimal"
)

type ConfiguracionService interface {
	Obtener(ctx context.Context) (*dto.ConfiguracionResponse, error)
	Actualizar(ctx context.Context, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, error)
}

type configuracionService struct {
	repo          repository.ConfiguracionRepository
	nombreNegocio string
}

// NewConfiguracionService uses nombreNegocio until a profile is saved.
func NewConfiguracionService(repo repository.ConfiguracionRepository, nombreNegocio string) ConfiguracionService {
	return &configuracionService{repo: repo, nombreNegocio: nombreNegocio}
}

func (s *configuracionService) Obtener(ctx context.Context) (*dto.ConfiguracionResponse, error) {
	c, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	return configuracionToResponse(c), nil
}

// Actualizar replaces the profile. TasaImpuesto is stored only; ticket
// totals never apply it.
func (s *configuracionService) Actualizar(ctx context.Context, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, error) {
	c, err := s.cargar(ctx)
	if err != nil {
		return nil, err
	}
	c.Nombre = req.Nombre
	c.Direccion = req.Direccion
	c.Telefono = req.Telefono
	c.LogoURL = req.LogoURL
	c.TasaImpuesto = req.TasaImpuesto
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return configuracionToResponse(c), nil
}

func (s *configuracionService) cargar(ctx context.Context) (*model.ConfiguracionNegocio, error) {
	c, err := s.repo.Get(ctx)
	if err == nil {
		return c, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}
	return &model.ConfiguracionNegocio{Nombre: s.nombreNegocio, TasaImpuesto: decimal.Zero}, nil
}

func configuracionToResponse(c *model.ConfiguracionNegocio) *dto.ConfiguracionResponse {
	return &dto.ConfiguracionResponse{
		Nombre:       c.Nombre,
		Direccion:    c.Direccion,
		Telefono:     c.Telefono,
		LogoURL:      c.LogoURL,
		TasaImpuesto: c.TasaImpuesto,
	}
}
