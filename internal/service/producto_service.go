package service

import (
	"context"
	"errors"
	"strings"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"

	"github.com/google/uuid"
)

// MaxResultadosBusqueda caps the quick search used by the POS screen.
const MaxResultadosBusqueda = 20

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	BuscarPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	Buscar(ctx context.Context, q string) ([]dto.ProductoResponse, error)
	ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPreciosResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo    repository.ProductoRepository
	precios repository.PrecioCache
}

func NewProductoService(repo repository.ProductoRepository, precios repository.PrecioCache) ProductoService {
	return &productoService{repo: repo, precios: precios}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		CodigoBarras:    limpiarCodigo(req.CodigoBarras),
		Nombre:          strings.TrimSpace(req.Nombre),
		Descripcion:     req.Descripcion,
		PrecioCompra:    req.PrecioCompra,
		PrecioVenta:     req.PrecioVenta,
		PrecioMayoreo:   req.PrecioMayoreo,
		CantidadMayoreo: req.CantidadMayoreo,
		Stock:           req.Stock,
		StockMinimo:     model.ResolverStockMinimo(req.StockMinimo),
		Activo:          true,
	}
	if req.CategoriaID != nil {
		id, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, err
		}
		p.CategoriaID = &id
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, errorDeEscritura(err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "producto")
	}
	return productoToResponse(p), nil
}

// BuscarPorCodigo returns the active product with that exact barcode.
func (s *productoService) BuscarPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, strings.TrimSpace(codigo))
	if err != nil {
		return nil, noEncontrado(err, "producto")
	}
	return productoToResponse(p), nil
}

// Buscar matches name or barcode and returns at most MaxResultadosBusqueda
// active products. A blank query returns nothing.
func (s *productoService) Buscar(ctx context.Context, q string) ([]dto.ProductoResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []dto.ProductoResponse{}, nil
	}
	list, err := s.repo.Search(ctx, q, MaxResultadosBusqueda)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, 0, len(list))
	for i := range list {
		resp = append(resp, *productoToResponse(&list[i]))
	}
	return resp, nil
}

// ConsultarPrecio serves the public price checker. Results are cached in
// Redis per barcode and invalidated on product updates and sales.
func (s *productoService) ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPreciosResponse, error) {
	codigo = strings.TrimSpace(codigo)
	if s.precios != nil {
		if cached, ok := s.precios.Get(ctx, codigo); ok {
			return cached, nil
		}
	}
	p, err := s.repo.FindByBarcode(ctx, codigo)
	if err != nil {
		return nil, noEncontrado(err, "producto")
	}
	resp := dto.ConsultaPreciosResponse{
		Nombre:          p.Nombre,
		PrecioVenta:     p.PrecioVenta,
		StockDisponible: p.Stock,
	}
	if p.TieneMayoreo() {
		resp.PrecioMayoreo = p.PrecioMayoreo
		resp.CantidadMayoreo = p.CantidadMayoreo
	}
	if s.precios != nil {
		s.precios.Set(ctx, codigo, resp)
	}
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	filter.Page, filter.Limit = paginar(filter.Page, filter.Limit, 20)
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(list))
	for i := range list {
		data = append(data, *productoToResponse(&list[i]))
	}
	pages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		pages++
	}
	return &dto.ProductoListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pages,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "producto")
	}
	codigoAnterior := p.Codigo()

	if req.CodigoBarras != nil {
		p.CodigoBarras = limpiarCodigo(req.CodigoBarras)
	}
	if req.Nombre != nil {
		p.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.CategoriaID != nil {
		cid, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, err
		}
		p.CategoriaID = &cid
	}
	if req.PrecioCompra != nil {
		p.PrecioCompra = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.PrecioMayoreo != nil {
		p.PrecioMayoreo = req.PrecioMayoreo
	}
	if req.CantidadMayoreo != nil {
		p.CantidadMayoreo = req.CantidadMayoreo
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, errorDeEscritura(err)
	}
	if s.precios != nil {
		s.precios.Invalidate(ctx, codigoAnterior, p.Codigo())
	}
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return noEncontrado(err, "producto")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	if s.precios != nil {
		s.precios.Invalidate(ctx, p.Codigo())
	}
	return nil
}

// limpiarCodigo trims the barcode and turns blank into nil so the unique
// index does not collide on empty strings.
func limpiarCodigo(c *string) *string {
	if c == nil {
		return nil
	}
	v := strings.TrimSpace(*c)
	if v == "" {
		return nil
	}
	return &v
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:              p.ID.String(),
		CodigoBarras:    p.CodigoBarras,
		Nombre:          p.Nombre,
		Descripcion:     p.Descripcion,
		PrecioCompra:    p.PrecioCompra,
		PrecioVenta:     p.PrecioVenta,
		PrecioMayoreo:   p.PrecioMayoreo,
		CantidadMayoreo: p.CantidadMayoreo,
		Stock:           p.Stock,
		StockMinimo:     p.StockMinimo,
		StockBajo:       p.Stock <= p.StockMinimo,
		Activo:          p.Activo,
	}
	if p.CategoriaID != nil {
		s := p.CategoriaID.String()
		resp.CategoriaID = &s
	}
	return resp
}

// errorDeEscritura maps constraint violations on the productos table.
func errorDeEscritura(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicado):
		return ErrCodigoDuplicado
	case errors.Is(err, repository.ErrReferenciaInvalida):
		return ErrCategoriaInexistente
	}
	return err
}
