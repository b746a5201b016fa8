package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Buscar(ctx context.Context, q string) ([]dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	RegistrarAbono(ctx context.Context, usuarioID, clienteID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error)
	ListarAbonos(ctx context.Context, clienteID uuid.UUID) ([]dto.AbonoResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	c := &model.Cliente{
		Nombre:        strings.TrimSpace(req.Nombre),
		Telefono:      req.Telefono,
		Email:         req.Email,
		Direccion:     req.Direccion,
		LimiteCredito: req.LimiteCredito,
		SaldoActual:   decimal.Zero,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "cliente")
	}
	return clienteToResponse(c), nil
}

// Buscar matches name or phone, capped at MaxResultadosBusqueda.
func (s *clienteService) Buscar(ctx context.Context, q string) ([]dto.ClienteResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []dto.ClienteResponse{}, nil
	}
	list, err := s.repo.Search(ctx, q, MaxResultadosBusqueda)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, 0, len(list))
	for i := range list {
		resp = append(resp, *clienteToResponse(&list[i]))
	}
	return resp, nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	filter.Page, filter.Limit = paginar(filter.Page, filter.Limit, 20)
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ClienteResponse, 0, len(list))
	for i := range list {
		data = append(data, *clienteToResponse(&list[i]))
	}
	return &dto.ClienteListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "cliente")
	}
	if req.Nombre != nil {
		c.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}
	if req.LimiteCredito != nil {
		if req.LimiteCredito.IsNegative() {
			return nil, fmt.Errorf("%w: el límite de crédito no puede ser negativo", ErrMontoInvalido)
		}
		c.LimiteCredito = *req.LimiteCredito
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

// Desactivar refuses customers that still owe money.
func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return noEncontrado(err, "cliente")
	}
	if c.SaldoActual.IsPositive() {
		return ErrClienteConSaldo
	}
	return s.repo.SoftDelete(ctx, id)
}

// RegistrarAbono lowers the balance by monto, never below zero, and records
// the payment in the same transaction.
func (s *clienteService) RegistrarAbono(ctx context.Context, usuarioID, clienteID uuid.UUID, req dto.RegistrarAbonoRequest) (*dto.AbonoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, fmt.Errorf("%w: el abono debe ser mayor a cero", ErrMontoInvalido)
	}

	var ventaID *uuid.UUID
	if req.VentaID != nil {
		id, err := uuid.Parse(*req.VentaID)
		if err != nil {
			return nil, err
		}
		ventaID = &id
	}

	var abono model.AbonoCredito
	var anterior, nuevo decimal.Decimal
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDTx(tx, clienteID)
		if err != nil {
			return noEncontrado(err, "cliente")
		}
		anterior = c.SaldoActual
		nuevo = decimal.Max(decimal.Zero, anterior.Sub(req.Monto))
		if err := s.repo.UpdateSaldoTx(tx, clienteID, nuevo); err != nil {
			return err
		}
		abono = model.AbonoCredito{
			ClienteID: clienteID,
			VentaID:   ventaID,
			UsuarioID: usuarioID,
			Monto:     req.Monto,
			Notas:     req.Notas,
		}
		return s.repo.CreateAbonoTx(tx, &abono)
	})
	if err != nil {
		return nil, err
	}

	resp := abonoToResponse(abono)
	resp.SaldoAnterior = anterior
	resp.SaldoNuevo = nuevo
	return &resp, nil
}

func (s *clienteService) ListarAbonos(ctx context.Context, clienteID uuid.UUID) ([]dto.AbonoResponse, error) {
	if _, err := s.repo.FindByID(ctx, clienteID); err != nil {
		return nil, noEncontrado(err, "cliente")
	}
	list, err := s.repo.ListAbonos(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AbonoResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, abonoToResponse(a))
	}
	return resp, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:                c.ID.String(),
		Nombre:            c.Nombre,
		Telefono:          c.Telefono,
		Email:             c.Email,
		Direccion:         c.Direccion,
		LimiteCredito:     c.LimiteCredito,
		SaldoActual:       c.SaldoActual,
		CreditoDisponible: c.CreditoDisponible(),
		Activo:            c.Activo,
	}
}

func abonoToResponse(a model.AbonoCredito) dto.AbonoResponse {
	resp := dto.AbonoResponse{
		ID:        a.ID.String(),
		ClienteID: a.ClienteID.String(),
		Monto:     a.Monto,
		Notas:     a.Notas,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.VentaID != nil {
		v := a.VentaID.String()
		resp.VentaID = &v
	}
	return resp
}
