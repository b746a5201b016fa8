package service

import (
	"context"
	"fmt"
	"time"

	"posbuddy/internal/dto"
	"posbuddy/internal/repository"

	"github.com/shopspring/decimal"
)

const topProductosLimite = 10

type ReporteService interface {
	ReporteDiario(ctx context.Context, fecha string) (*dto.ReporteDiarioResponse, error)
}

type reporteService struct {
	repo repository.ReporteRepository
	now  func() time.Time
}

func NewReporteService(repo repository.ReporteRepository) ReporteService {
	return &reporteService{repo: repo, now: time.Now}
}

// ReporteDiario summarizes one calendar day; an empty fecha means today.
func (s *reporteService) ReporteDiario(ctx context.Context, fecha string) (*dto.ReporteDiarioResponse, error) {
	dia, err := parseFecha(fecha, s.now())
	if err != nil {
		return nil, err
	}
	desde, hasta := repository.RangoDia(dia)

	res, err := s.repo.ResumenVentas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	abonos, err := s.repo.TotalAbonos(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProductos(ctx, desde, hasta, topProductosLimite)
	if err != nil {
		return nil, err
	}

	promedio := decimal.Zero
	if res.Transacciones > 0 {
		promedio = res.Total.Div(decimal.NewFromInt(res.Transacciones)).Round(2)
	}
	resp := &dto.ReporteDiarioResponse{
		Fecha:          desde.Format("2006-01-02"),
		Total:          res.Total,
		Efectivo:       res.Efectivo,
		Tarjeta:        res.Tarjeta,
		Credito:        res.Credito,
		Abonos:         abonos,
		Transacciones:  res.Transacciones,
		TicketPromedio: promedio,
		TopProductos:   make([]dto.TopProductoResponse, 0, len(top)),
	}
	for _, t := range top {
		resp.TopProductos = append(resp.TopProductos, dto.TopProductoResponse{
			ProductoID: t.ProductoID,
			Nombre:     t.Nombre,
			Cantidad:   t.Cantidad,
			Total:      t.Total,
		})
	}
	return resp, nil
}

// parseFecha reads YYYY-MM-DD in the location of hoy; blank returns hoy.
func parseFecha(fecha string, hoy time.Time) (time.Time, error) {
	if fecha == "" {
		return hoy, nil
	}
	d, err := time.ParseInLocation("2006-01-02", fecha, hoy.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrFechaInvalida, fecha)
	}
	return d, nil
}
