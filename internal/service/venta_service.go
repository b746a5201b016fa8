package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"posbuddy/internal/dto"
	"posbuddy/internal/metrics"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"
	"posbuddy/internal/ticket"
	"posbuddy/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService drives the cashier's ticket and turns it into a sale.
// Every operation works on the ticket of the authenticated user.
type VentaService interface {
	ObtenerTicket(ctx context.Context, usuarioID uuid.UUID) (*dto.TicketResponse, error)
	AgregarPorCodigo(ctx context.Context, usuarioID uuid.UUID, codigo string, cantidad int) (*dto.TicketResponse, error)
	AgregarProducto(ctx context.Context, usuarioID, productoID uuid.UUID, cantidad int) (*dto.TicketResponse, error)
	ActualizarCantidad(ctx context.Context, usuarioID, lineaID uuid.UUID, cantidad int) (*dto.TicketResponse, error)
	QuitarLinea(ctx context.Context, usuarioID, lineaID uuid.UUID) (*dto.TicketResponse, error)
	Limpiar(ctx context.Context, usuarioID uuid.UUID) error
	AsignarCliente(ctx context.Context, usuarioID, clienteID uuid.UUID) (*dto.TicketResponse, error)
	QuitarCliente(ctx context.Context, usuarioID uuid.UUID) (*dto.TicketResponse, error)
	Cobrar(ctx context.Context, usuarioID uuid.UUID, req dto.CobrarRequest) (*dto.VentaResponse, error)

	GuardarPendiente(ctx context.Context, usuarioID uuid.UUID, req dto.GuardarPendienteRequest) (*dto.TicketPendienteResponse, error)
	ListarPendientes(ctx context.Context, usuarioID uuid.UUID) ([]dto.TicketPendienteResponse, error)
	RecuperarPendiente(ctx context.Context, usuarioID, pendienteID uuid.UUID) (*dto.TicketResponse, error)

	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

// ReciboEncolador queues the receipt job of a committed sale.
type ReciboEncolador interface {
	EncolarRecibo(ctx context.Context, payload worker.ReciboJobPayload) error
}

// VentaOpciones are the checkout switches read from config.
type VentaOpciones struct {
	DescontarStock       bool
	ValidarLimiteCredito bool
}

type ventaService struct {
	ventas      repository.VentaRepository
	productos   repository.ProductoRepository
	clientes    repository.ClienteRepository
	movimientos repository.MovimientoInventarioRepository
	pendientes  repository.TicketPendienteRepository
	tickets     repository.TicketStore
	precios     repository.PrecioCache
	recibos     ReciboEncolador
	opciones    VentaOpciones
}

func NewVentaService(
	ventas repository.VentaRepository,
	productos repository.ProductoRepository,
	clientes repository.ClienteRepository,
	movimientos repository.MovimientoInventarioRepository,
	pendientes repository.TicketPendienteRepository,
	tickets repository.TicketStore,
	precios repository.PrecioCache,
	recibos ReciboEncolador,
	opciones VentaOpciones,
) VentaService {
	return &ventaService{
		ventas:      ventas,
		productos:   productos,
		clientes:    clientes,
		movimientos: movimientos,
		pendientes:  pendientes,
		tickets:     tickets,
		precios:     precios,
		recibos:     recibos,
		opciones:    opciones,
	}
}

// ── Ticket ────────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerTicket(ctx context.Context, usuarioID uuid.UUID) (*dto.TicketResponse, error) {
	t, err := s.tickets.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return ticketToResponse(t), nil
}

func (s *ventaService) AgregarPorCodigo(ctx context.Context, usuarioID uuid.UUID, codigo string, cantidad int) (*dto.TicketResponse, error) {
	p, err := s.productos.FindByBarcode(ctx, codigo)
	if err != nil {
		return nil, noEncontrado(err, "producto")
	}
	return s.agregar(ctx, usuarioID, p, cantidad)
}

func (s *ventaService) AgregarProducto(ctx context.Context, usuarioID, productoID uuid.UUID, cantidad int) (*dto.TicketResponse, error) {
	p, err := s.productos.FindByID(ctx, productoID)
	if err != nil {
		return nil, noEncontrado(err, "producto")
	}
	return s.agregar(ctx, usuarioID, p, cantidad)
}

// agregar always works on the freshly loaded product so the stock ceiling
// reflects the current inventory.
func (s *ventaService) agregar(ctx context.Context, usuarioID uuid.UUID, p *model.Producto, cantidad int) (*dto.TicketResponse, error) {
	if !p.Activo {
		return nil, ErrProductoInactivo
	}
	return s.modificar(ctx, usuarioID, func(t *ticket.Ticket) error {
		_, err := t.AgregarLinea(*p, cantidad)
		return err
	})
}

func (s *ventaService) ActualizarCantidad(ctx context.Context, usuarioID, lineaID uuid.UUID, cantidad int) (*dto.TicketResponse, error) {
	return s.modificar(ctx, usuarioID, func(t *ticket.Ticket) error {
		for i := range t.Lineas {
			if t.Lineas[i].ID != lineaID {
				continue
			}
			if p, err := s.productos.FindByID(ctx, t.Lineas[i].Producto.ID); err == nil {
				t.Lineas[i].Producto.Stock = p.Stock
			}
			break
		}
		_, err := t.ActualizarCantidad(lineaID, cantidad)
		return err
	})
}

func (s *ventaService) QuitarLinea(ctx context.Context, usuarioID, lineaID uuid.UUID) (*dto.TicketResponse, error) {
	return s.modificar(ctx, usuarioID, func(t *ticket.Ticket) error {
		t.QuitarLinea(lineaID)
		return nil
	})
}

func (s *ventaService) Limpiar(ctx context.Context, usuarioID uuid.UUID) error {
	return s.tickets.Delete(ctx, usuarioID)
}

func (s *ventaService) AsignarCliente(ctx context.Context, usuarioID, clienteID uuid.UUID) (*dto.TicketResponse, error) {
	c, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		return nil, noEncontrado(err, "cliente")
	}
	if !c.Activo {
		return nil, ErrClienteInactivo
	}
	return s.modificar(ctx, usuarioID, func(t *ticket.Ticket) error {
		t.AsignarCliente(*c)
		return nil
	})
}

func (s *ventaService) QuitarCliente(ctx context.Context, usuarioID uuid.UUID) (*dto.TicketResponse, error) {
	return s.modificar(ctx, usuarioID, func(t *ticket.Ticket) error {
		t.QuitarCliente()
		return nil
	})
}

// modificar loads the ticket, applies fn and saves it only when fn succeeds.
func (s *ventaService) modificar(ctx context.Context, usuarioID uuid.UUID, fn func(t *ticket.Ticket) error) (*dto.TicketResponse, error) {
	t, err := s.tickets.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	if err := s.tickets.Save(ctx, usuarioID, t); err != nil {
		return nil, err
	}
	return ticketToResponse(t), nil
}

// ── Cobrar ────────────────────────────────────────────────────────────────────
// Single transaction:
//   1. nextval ticket number
//   2. venta header + items
//   3. credit: lock customer row, saldo += total
//   4. optional: lock each product row, re-check and decrement stock, venta movement
// The ticket is cleared only after COMMIT.

func (s *ventaService) Cobrar(ctx context.Context, usuarioID uuid.UUID, req dto.CobrarRequest) (*dto.VentaResponse, error) {
	t, err := s.tickets.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	metodo := ticket.MetodoPago(req.MetodoPago)
	cobro, err := t.Cobrar(metodo, req.PagoRecibido)
	if err != nil {
		metrics.CobrosRechazados.WithLabelValues(motivoRechazo(err)).Inc()
		return nil, err
	}

	venta := cobro.Venta
	venta.UsuarioID = usuarioID

	txErr := runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		num, err := s.ventas.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}
		venta.NumeroTicket = num

		if err := s.ventas.Create(ctx, tx, &venta); err != nil {
			return err
		}

		if cobro.Saldo != nil {
			if err := s.cargarSaldo(tx, cobro.Saldo.ClienteID, venta.Total); err != nil {
				return err
			}
		}

		if !s.opciones.DescontarStock {
			return nil
		}
		notas := fmt.Sprintf("Venta #%d", num)
		for _, mov := range cobro.Movimientos {
			if err := s.descontarStock(tx, mov, venta.ID, usuarioID, notas); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		metrics.CobrosRechazados.WithLabelValues(motivoRechazo(txErr)).Inc()
		if esRechazoDeNegocio(txErr) {
			return nil, txErr
		}
		log.Error().Err(txErr).Str("usuario_id", usuarioID.String()).Msg("cobro: transacción fallida")
		return nil, fmt.Errorf("%w: %w", ErrEscrituraRemota, txErr)
	}

	s.despuesDeCobrar(ctx, usuarioID, t, &venta)

	resp := ventaToResponse(&venta)
	for i, l := range t.Lineas {
		resp.Items[i].Producto = l.Producto.Nombre
	}
	return resp, nil
}

func (s *ventaService) cargarSaldo(tx *gorm.DB, clienteID uuid.UUID, total decimal.Decimal) error {
	c, err := s.clientes.FindByIDTx(tx, clienteID)
	if err != nil {
		return noEncontrado(err, "cliente")
	}
	nuevo := c.SaldoActual.Add(total)
	if s.opciones.ValidarLimiteCredito && nuevo.GreaterThan(c.LimiteCredito) {
		return ErrLimiteCreditoExcedido
	}
	return s.clientes.UpdateSaldoTx(tx, c.ID, nuevo)
}

func (s *ventaService) descontarStock(tx *gorm.DB, mov model.MovimientoInventario, ventaID, usuarioID uuid.UUID, notas string) error {
	p, err := s.productos.FindByIDTx(tx, mov.ProductoID)
	if err != nil {
		return noEncontrado(err, "producto")
	}
	if p.Stock < mov.Cantidad {
		return &ticket.StockInsuficienteError{
			ProductoID: p.ID,
			Producto:   p.Nombre,
			Disponible: p.Stock,
			Solicitado: mov.Cantidad,
		}
	}
	mov.StockAnterior = p.Stock
	mov.StockNuevo = p.Stock - mov.Cantidad
	if err := s.productos.UpdateStockTx(tx, p.ID, -mov.Cantidad); err != nil {
		return err
	}
	mov.ReferenciaID = &ventaID
	mov.UsuarioID = &usuarioID
	mov.Notas = &notas
	return s.movimientos.CreateTx(tx, &mov)
}

// despuesDeCobrar runs the post-commit steps. Failures are logged, never
// returned: the sale already exists.
func (s *ventaService) despuesDeCobrar(ctx context.Context, usuarioID uuid.UUID, t *ticket.Ticket, venta *model.Venta) {
	if err := s.tickets.Delete(ctx, usuarioID); err != nil {
		log.Warn().Err(err).Str("usuario_id", usuarioID.String()).Msg("cobro: no se pudo limpiar el ticket")
	}

	if s.precios != nil && s.opciones.DescontarStock {
		codigos := make([]string, 0, len(t.Lineas))
		for _, l := range t.Lineas {
			codigos = append(codigos, l.Producto.Codigo())
		}
		s.precios.Invalidate(ctx, codigos...)
	}

	if s.recibos != nil {
		if err := s.recibos.EncolarRecibo(ctx, worker.ReciboJobPayload{VentaID: venta.ID.String()}); err != nil {
			log.Warn().Err(err).Str("venta_id", venta.ID.String()).Msg("cobro: no se pudo encolar el recibo")
		}
	}

	metrics.RegistrarVenta(venta.MetodoPago, venta.Total)
	log.Info().
		Int("ticket", venta.NumeroTicket).
		Str("metodo", venta.MetodoPago).
		Str("total", venta.Total.StringFixed(2)).
		Msg("venta registrada")
}

func esRechazoDeNegocio(err error) bool {
	return errors.Is(err, ticket.ErrStockInsuficiente) ||
		errors.Is(err, ErrLimiteCreditoExcedido) ||
		errors.Is(err, ErrNoEncontrado)
}

func motivoRechazo(err error) string {
	switch {
	case errors.Is(err, ticket.ErrTicketVacio):
		return "ticket_vacio"
	case errors.Is(err, ticket.ErrPagoInsuficiente):
		return "pago_insuficiente"
	case errors.Is(err, ticket.ErrClienteRequerido):
		return "cliente_requerido"
	case errors.Is(err, ticket.ErrMetodoInvalido):
		return "metodo_invalido"
	case errors.Is(err, ticket.ErrStockInsuficiente):
		return "stock_insuficiente"
	case errors.Is(err, ErrLimiteCreditoExcedido):
		return "limite_credito"
	default:
		return "escritura"
	}
}

// ── Tickets pendientes ────────────────────────────────────────────────────────

func (s *ventaService) GuardarPendiente(ctx context.Context, usuarioID uuid.UUID, req dto.GuardarPendienteRequest) (*dto.TicketPendienteResponse, error) {
	t, err := s.tickets.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if t.Vacio() {
		return nil, ticket.ErrTicketVacio
	}
	contenido, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	p := &model.TicketPendiente{
		UsuarioID: usuarioID,
		Contenido: contenido,
		Notas:     req.Notas,
	}
	if t.Cliente != nil {
		id := t.Cliente.ID
		p.ClienteID = &id
	}
	if err := s.pendientes.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := s.tickets.Delete(ctx, usuarioID); err != nil {
		return nil, err
	}
	return pendienteToResponse(p, t), nil
}

func (s *ventaService) ListarPendientes(ctx context.Context, usuarioID uuid.UUID) ([]dto.TicketPendienteResponse, error) {
	list, err := s.pendientes.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TicketPendienteResponse, 0, len(list))
	for i := range list {
		t := ticket.Nuevo()
		if err := json.Unmarshal(list[i].Contenido, t); err != nil {
			log.Warn().Err(err).Str("pendiente_id", list[i].ID.String()).Msg("ticket pendiente ilegible")
			continue
		}
		resp = append(resp, *pendienteToResponse(&list[i], t))
	}
	return resp, nil
}

// RecuperarPendiente restores a parked ticket as the current one. The
// current ticket must be empty so nothing is silently discarded.
func (s *ventaService) RecuperarPendiente(ctx context.Context, usuarioID, pendienteID uuid.UUID) (*dto.TicketResponse, error) {
	p, err := s.pendientes.FindByID(ctx, pendienteID)
	if err != nil {
		return nil, noEncontrado(err, "ticket pendiente")
	}
	if p.UsuarioID != usuarioID {
		return nil, &NoEncontradoError{Recurso: "ticket pendiente"}
	}

	actual, err := s.tickets.Get(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if !actual.Vacio() {
		return nil, ErrTicketEnCurso
	}

	t := ticket.Nuevo()
	if err := json.Unmarshal(p.Contenido, t); err != nil {
		return nil, fmt.Errorf("ticket pendiente ilegible: %w", err)
	}
	if err := s.tickets.Save(ctx, usuarioID, t); err != nil {
		return nil, err
	}
	if err := s.pendientes.Delete(ctx, pendienteID); err != nil {
		return nil, err
	}
	return ticketToResponse(t), nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "venta")
	}
	return ventaToResponse(v), nil
}

// ListarVentas returns a paginated list of the sales of one day (default today).
func (s *ventaService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	filter.Page, filter.Limit = paginar(filter.Page, filter.Limit, 50)
	ventas, total, err := s.ventas.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func ticketToResponse(t *ticket.Ticket) *dto.TicketResponse {
	tot := t.Totales()
	resp := &dto.TicketResponse{
		Lineas:   make([]dto.LineaResponse, 0, len(t.Lineas)),
		Subtotal: tot.Subtotal,
		Total:    tot.Total,
	}
	for _, l := range t.Lineas {
		resp.Lineas = append(resp.Lineas, dto.LineaResponse{
			ID:             l.ID.String(),
			ProductoID:     l.Producto.ID.String(),
			CodigoBarras:   l.Producto.CodigoBarras,
			Nombre:         l.Producto.Nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Descuento:      l.Descuento,
			Subtotal:       l.Subtotal,
			Mayoreo:        !l.PrecioUnitario.Equal(l.Producto.PrecioVenta),
		})
	}
	if t.Cliente != nil {
		resp.Cliente = &dto.ClienteTicketResponse{
			ID:                t.Cliente.ID.String(),
			Nombre:            t.Cliente.Nombre,
			SaldoActual:       t.Cliente.SaldoActual,
			CreditoDisponible: t.Cliente.CreditoDisponible(),
		}
	}
	return resp
}

func pendienteToResponse(p *model.TicketPendiente, t *ticket.Ticket) *dto.TicketPendienteResponse {
	resp := &dto.TicketPendienteResponse{
		ID:        p.ID.String(),
		Lineas:    len(t.Lineas),
		Total:     t.Totales().Total,
		Notas:     p.Notas,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	if p.ClienteID != nil {
		s := p.ClienteID.String()
		resp.ClienteID = &s
	}
	return resp
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:           v.ID.String(),
		NumeroTicket: v.NumeroTicket,
		UsuarioID:    v.UsuarioID.String(),
		Items:        make([]dto.ItemVentaResponse, 0, len(v.Items)),
		Subtotal:     v.Subtotal,
		Descuento:    v.Descuento,
		Impuesto:     v.Impuesto,
		Total:        v.Total,
		PagoRecibido: v.PagoRecibido,
		Cambio:       v.Cambio,
		MetodoPago:   v.MetodoPago,
		EsCredito:    v.EsCredito,
		Estado:       v.Estado,
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
	}
	if v.ClienteID != nil {
		s := v.ClienteID.String()
		resp.ClienteID = &s
	}
	for _, item := range v.Items {
		r := dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		}
		if item.Producto != nil {
			r.Producto = item.Producto.Nombre
		}
		resp.Items = append(resp.Items, r)
	}
	return resp
}
