package service

import (
	"context"
	"time"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"
	"posbuddy/internal/ticket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioService handles manual stock movements and stock alerts.
// Sale movements are written by VentaService inside the checkout transaction.
type InventarioService interface {
	RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimientoInventarioRequest) (*dto.MovimientoInventarioResponse, error)
	ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
	Resumen(ctx context.Context) (*dto.ResumenInventarioResponse, error)
}

type inventarioService struct {
	productos   repository.ProductoRepository
	movimientos repository.MovimientoInventarioRepository
	precios     repository.PrecioCache
}

func NewInventarioService(
	productos repository.ProductoRepository,
	movimientos repository.MovimientoInventarioRepository,
	precios repository.PrecioCache,
) InventarioService {
	return &inventarioService{productos: productos, movimientos: movimientos, precios: precios}
}

// RegistrarMovimiento applies an entrada (+) or salida (−). A salida larger
// than the current stock is rejected; stock never goes negative.
func (s *inventarioService) RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.MovimientoInventarioRequest) (*dto.MovimientoInventarioResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, err
	}
	if req.Cantidad < 1 {
		return nil, ticket.ErrCantidadInvalida
	}

	var mov model.MovimientoInventario
	var producto *model.Producto
	err = runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		p, err := s.productos.FindByIDTx(tx, productoID)
		if err != nil {
			return noEncontrado(err, "producto")
		}
		producto = p

		delta := req.Cantidad
		if req.Tipo == model.MovimientoSalida {
			if req.Cantidad > p.Stock {
				return &ticket.StockInsuficienteError{
					ProductoID: p.ID,
					Producto:   p.Nombre,
					Disponible: p.Stock,
					Solicitado: req.Cantidad,
				}
			}
			delta = -req.Cantidad
		}
		uid := usuarioID
		mov = model.MovimientoInventario{
			ProductoID:    p.ID,
			UsuarioID:     &uid,
			Tipo:          req.Tipo,
			Cantidad:      req.Cantidad,
			StockAnterior: p.Stock,
			StockNuevo:    p.Stock + delta,
			Notas:         req.Notas,
		}
		if err := s.productos.UpdateStockTx(tx, p.ID, delta); err != nil {
			return err
		}
		return s.movimientos.CreateTx(tx, &mov)
	})
	if err != nil {
		return nil, err
	}

	if s.precios != nil {
		s.precios.Invalidate(ctx, producto.Codigo())
	}
	resp := movimientoToResponse(mov)
	resp.Producto = producto.Nombre
	return &resp, nil
}

// ObtenerAlertas lists active products at or below their minimum stock.
func (s *inventarioService) ObtenerAlertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	list, err := s.productos.ListStockBajo(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AlertaStockResponse, 0, len(list))
	for i := range list {
		p := &list[i]
		resp = append(resp, dto.AlertaStockResponse{
			ProductoID:  p.ID.String(),
			Nombre:      p.Nombre,
			Stock:       p.Stock,
			StockMinimo: p.StockMinimo,
			Faltante:    p.Faltante(),
		})
	}
	return resp, nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	filter.Page, filter.Limit = paginar(filter.Page, filter.Limit, 50)
	f := repository.MovimientoFilter{Tipo: filter.Tipo, Page: filter.Page, Limit: filter.Limit}
	if filter.ProductoID != "" {
		id, err := uuid.Parse(filter.ProductoID)
		if err != nil {
			return nil, err
		}
		f.ProductoID = &id
	}

	list, total, err := s.movimientos.List(ctx, f)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoInventarioResponse, 0, len(list))
	for _, m := range list {
		r := movimientoToResponse(m)
		if m.Producto != nil {
			r.Producto = m.Producto.Nombre
		}
		data = append(data, r)
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventarioService) Resumen(ctx context.Context) (*dto.ResumenInventarioResponse, error) {
	r, err := s.productos.Resumen(ctx)
	if err != nil {
		return nil, err
	}
	bajos, err := s.productos.ListStockBajo(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenInventarioResponse{
		Productos:       r.Productos,
		Unidades:        r.Unidades,
		ValorInventario: r.ValorInventario,
		StockBajo:       len(bajos),
	}, nil
}

func movimientoToResponse(m model.MovimientoInventario) dto.MovimientoInventarioResponse {
	resp := dto.MovimientoInventarioResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Notas:         m.Notas,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	if m.ReferenciaID != nil {
		ref := m.ReferenciaID.String()
		resp.ReferenciaID = &ref
	}
	return resp
}
