package service

import (
	"context"
	"time"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"

	"github.com/google/uuid"
)

// CajaService computes and stores the end-of-day cash register cut.
type CajaService interface {
	Corte(ctx context.Context, usuarioID uuid.UUID, req dto.CorteCajaRequest) (*dto.CorteCajaResponse, error)
	ListarCortes(ctx context.Context, limit int) ([]dto.CorteCajaResponse, error)
}

type cajaService struct {
	cortes   repository.CorteCajaRepository
	reportes repository.ReporteRepository
	now      func() time.Time
}

func NewCajaService(cortes repository.CorteCajaRepository, reportes repository.ReporteRepository) CajaService {
	return &cajaService{cortes: cortes, reportes: reportes, now: time.Now}
}

// ── Corte ─────────────────────────────────────────────────────────────────────
// esperado   = monto inicial + ventas en efectivo + abonos recibidos
// diferencia = monto real − esperado (negative means cash is missing)

func (s *cajaService) Corte(ctx context.Context, usuarioID uuid.UUID, req dto.CorteCajaRequest) (*dto.CorteCajaResponse, error) {
	dia, err := parseFecha(req.Fecha, s.now())
	if err != nil {
		return nil, err
	}
	desde, hasta := repository.RangoDia(dia)

	ventas, err := s.reportes.ResumenVentas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	abonos, err := s.reportes.TotalAbonos(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	esperado := req.MontoInicial.Add(ventas.Efectivo).Add(abonos)
	corte := &model.CorteCaja{
		UsuarioID:          usuarioID,
		MontoInicial:       req.MontoInicial,
		MontoEsperado:      esperado,
		MontoReal:          req.MontoReal,
		Diferencia:         req.MontoReal.Sub(esperado),
		VentasEfectivo:     ventas.Efectivo,
		VentasCredito:      ventas.Credito,
		VentasTarjeta:      ventas.Tarjeta,
		AbonosRecibidos:    abonos,
		TotalTransacciones: int(ventas.Transacciones),
		Notas:              req.Notas,
		FechaCorte:         desde,
	}
	if err := s.cortes.Create(ctx, corte); err != nil {
		return nil, err
	}
	resp := corteToResponse(corte)
	return &resp, nil
}

func (s *cajaService) ListarCortes(ctx context.Context, limit int) ([]dto.CorteCajaResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 30
	}
	list, err := s.cortes.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CorteCajaResponse, 0, len(list))
	for i := range list {
		resp = append(resp, corteToResponse(&list[i]))
	}
	return resp, nil
}

func corteToResponse(c *model.CorteCaja) dto.CorteCajaResponse {
	return dto.CorteCajaResponse{
		ID:                 c.ID.String(),
		UsuarioID:          c.UsuarioID.String(),
		Fecha:              c.FechaCorte.Format("2006-01-02"),
		MontoInicial:       c.MontoInicial,
		VentasEfectivo:     c.VentasEfectivo,
		VentasTarjeta:      c.VentasTarjeta,
		VentasCredito:      c.VentasCredito,
		AbonosRecibidos:    c.AbonosRecibidos,
		MontoEsperado:      c.MontoEsperado,
		MontoReal:          c.MontoReal,
		Diferencia:         c.Diferencia,
		TotalTransacciones: c.TotalTransacciones,
		Notas:              c.Notas,
	}
}
