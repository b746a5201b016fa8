package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"
	"posbuddy/internal/ticket"
	"posbuddy/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory ProductoRepository stub ────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	createErr error
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) add(p model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = &p
	return &p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.productos {
		if p.CodigoBarras != nil && existing.Codigo() == *p.CodigoBarras {
			return repository.ErrDuplicado
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo() == barcode && p.Activo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) Search(_ context.Context, q string, limit int) ([]model.Producto, error) {
	var result []model.Producto
	q = strings.ToLower(q)
	for _, p := range r.productos {
		if !p.Activo {
			continue
		}
		if strings.Contains(strings.ToLower(p.Nombre), q) || strings.Contains(p.Codigo(), q) {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nombre < result[j].Nombre })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) ListStockBajo(_ context.Context) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.Stock <= p.StockMinimo {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductoRepo) Resumen(_ context.Context) (*repository.ResumenInventario, error) {
	res := &repository.ResumenInventario{ValorInventario: decimal.Zero}
	for _, p := range r.productos {
		if !p.Activo {
			continue
		}
		res.Productos++
		res.Unidades += int64(p.Stock)
		res.ValorInventario = res.ValorInventario.Add(p.PrecioCompra.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return res, nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

// ── In-memory ClienteRepository stub ─────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
	abonos   []model.AbonoCredito
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) add(c model.Cliente) *model.Cliente {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = &c
	return &c
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) Search(_ context.Context, q string, limit int) ([]model.Cliente, error) {
	var result []model.Cliente
	q = strings.ToLower(q)
	for _, c := range r.clientes {
		tel := ""
		if c.Telefono != nil {
			tel = *c.Telefono
		}
		if c.Activo && (strings.Contains(strings.ToLower(c.Nombre), q) || strings.Contains(tel, q)) {
			result = append(result, *c)
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ dto.ClienteFilter) ([]model.Cliente, int64, error) {
	var result []model.Cliente
	for _, c := range r.clientes {
		if c.Activo {
			result = append(result, *c)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	cp := *c
	r.clientes[c.ID] = &cp
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Activo = false
	return nil
}

func (r *stubClienteRepo) ListAbonos(_ context.Context, clienteID uuid.UUID) ([]model.AbonoCredito, error) {
	var result []model.AbonoCredito
	for _, a := range r.abonos {
		if a.ClienteID == clienteID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *stubClienteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubClienteRepo) UpdateSaldoTx(_ *gorm.DB, id uuid.UUID, saldo decimal.Decimal) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.SaldoActual = saldo
	return nil
}

func (r *stubClienteRepo) CreateAbonoTx(_ *gorm.DB, a *model.AbonoCredito) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	r.abonos = append(r.abonos, *a)
	return nil
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

// ── In-memory VentaRepository stub ───────────────────────────────────────────

type stubVentaRepo struct {
	ventas    map[uuid.UUID]*model.Venta
	seq       int
	createErr error
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if r.createErr != nil {
		return r.createErr
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	cp := *v
	r.ventas[v.ID] = &cp
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var result []model.Venta
	for _, v := range r.ventas {
		result = append(result, *v)
	}
	return result, int64(len(result)), nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

// ── In-memory MovimientoInventarioRepository stub ────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoInventario
}

var _ repository.MovimientoInventarioRepository = (*stubMovimientoRepo)(nil)

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoInventario) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoInventario) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, f repository.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	var result []model.MovimientoInventario
	for _, m := range r.movimientos {
		if f.ProductoID != nil && m.ProductoID != *f.ProductoID {
			continue
		}
		if f.Tipo != "" && m.Tipo != f.Tipo {
			continue
		}
		result = append(result, m)
	}
	return result, int64(len(result)), nil
}

// ── In-memory TicketPendienteRepository stub ─────────────────────────────────

type stubPendienteRepo struct {
	pendientes map[uuid.UUID]*model.TicketPendiente
}

var _ repository.TicketPendienteRepository = (*stubPendienteRepo)(nil)

func (r *stubPendienteRepo) Create(_ context.Context, t *model.TicketPendiente) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	cp := *t
	r.pendientes[t.ID] = &cp
	return nil
}

func (r *stubPendienteRepo) ListByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.TicketPendiente, error) {
	var result []model.TicketPendiente
	for _, p := range r.pendientes {
		if p.UsuarioID == usuarioID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubPendienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.TicketPendiente, error) {
	p, ok := r.pendientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPendienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pendientes, id)
	return nil
}

// ── TicketStore stub (JSON round trip, like Redis) ───────────────────────────

type stubTicketStore struct {
	data map[uuid.UUID][]byte
}

var _ repository.TicketStore = (*stubTicketStore)(nil)

func (s *stubTicketStore) Get(_ context.Context, usuarioID uuid.UUID) (*ticket.Ticket, error) {
	t := ticket.Nuevo()
	b, ok := s.data[usuarioID]
	if !ok {
		return t, nil
	}
	if err := json.Unmarshal(b, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *stubTicketStore) Save(_ context.Context, usuarioID uuid.UUID, t *ticket.Ticket) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	s.data[usuarioID] = b
	return nil
}

func (s *stubTicketStore) Delete(_ context.Context, usuarioID uuid.UUID) error {
	delete(s.data, usuarioID)
	return nil
}

// ── PrecioCache stub ─────────────────────────────────────────────────────────

type stubPrecioCache struct {
	data        map[string]dto.ConsultaPreciosResponse
	invalidados []string
}

var _ repository.PrecioCache = (*stubPrecioCache)(nil)

func newStubPrecioCache() *stubPrecioCache {
	return &stubPrecioCache{data: make(map[string]dto.ConsultaPreciosResponse)}
}

func (c *stubPrecioCache) Get(_ context.Context, barcode string) (*dto.ConsultaPreciosResponse, bool) {
	r, ok := c.data[barcode]
	if !ok {
		return nil, false
	}
	return &r, true
}

func (c *stubPrecioCache) Set(_ context.Context, barcode string, resp dto.ConsultaPreciosResponse) {
	c.data[barcode] = resp
}

func (c *stubPrecioCache) Invalidate(_ context.Context, barcodes ...string) {
	for _, b := range barcodes {
		if b == "" {
			continue
		}
		delete(c.data, b)
		c.invalidados = append(c.invalidados, b)
	}
}

// ── ReciboEncolador stub ─────────────────────────────────────────────────────

type stubRecibos struct {
	jobs []worker.ReciboJobPayload
	err  error
}

func (s *stubRecibos) EncolarRecibo(_ context.Context, p worker.ReciboJobPayload) error {
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, p)
	return nil
}

// ── Reporte / Corte / Configuracion / Usuario stubs ──────────────────────────

type stubReporteRepo struct {
	resumen repository.ResumenVentas
	abonos  decimal.Decimal
	top     []repository.TopProducto
	desde   time.Time
	hasta   time.Time
}

var _ repository.ReporteRepository = (*stubReporteRepo)(nil)

func (r *stubReporteRepo) ResumenVentas(_ context.Context, desde, hasta time.Time) (*repository.ResumenVentas, error) {
	r.desde, r.hasta = desde, hasta
	res := r.resumen
	return &res, nil
}

func (r *stubReporteRepo) TopProductos(_ context.Context, _, _ time.Time, limit int) ([]repository.TopProducto, error) {
	if len(r.top) > limit {
		return r.top[:limit], nil
	}
	return r.top, nil
}

func (r *stubReporteRepo) TotalAbonos(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return r.abonos, nil
}

type stubCorteRepo struct {
	cortes []model.CorteCaja
}

var _ repository.CorteCajaRepository = (*stubCorteRepo)(nil)

func (r *stubCorteRepo) Create(_ context.Context, c *model.CorteCaja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cortes = append(r.cortes, *c)
	return nil
}

func (r *stubCorteRepo) List(_ context.Context, limit int) ([]model.CorteCaja, error) {
	if len(r.cortes) > limit {
		return r.cortes[:limit], nil
	}
	return r.cortes, nil
}

type stubConfigRepo struct {
	cfg *model.ConfiguracionNegocio
}

var _ repository.ConfiguracionRepository = (*stubConfigRepo)(nil)

func (r *stubConfigRepo) Get(_ context.Context) (*model.ConfiguracionNegocio, error) {
	if r.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.cfg
	return &cp, nil
}

func (r *stubConfigRepo) Save(_ context.Context, c *model.ConfiguracionNegocio) error {
	cp := *c
	r.cfg = &cp
	return nil
}

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, existing := range r.usuarios {
		if existing.Username == u.Username {
			return repository.ErrDuplicado
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) FindParaLogin(_ context.Context, login string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Activo && (u.Username == strings.ToLower(login) || (u.Email != nil && strings.EqualFold(*u.Email, login))) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) List(_ context.Context, filter dto.UsuarioFilter) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		if (u.Activo || filter.IncluirInactivos) && (filter.Rol == "" || u.Rol == filter.Rol) {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r *stubUsuarioRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok || !u.Activo {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
