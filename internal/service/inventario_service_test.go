package service

import (
	"context"
	"testing"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"
	"posbuddy/internal/ticket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrarMovimiento_EntradaYSalida(t *testing.T) {
	productos := newStubProductoRepo()
	movs := &stubMovimientoRepo{}
	cache := newStubPrecioCache()
	p := productos.add(model.Producto{Nombre: "Aceite", CodigoBarras: ptr("ac"), Stock: 4, StockMinimo: 5, Activo: true})
	svc := NewInventarioService(productos, movs, cache)
	ctx := context.Background()
	usuario := uuid.New()

	resp, err := svc.RegistrarMovimiento(ctx, usuario, dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoEntrada, Cantidad: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.StockAnterior)
	assert.Equal(t, 10, resp.StockNuevo)
	assert.Equal(t, "Aceite", resp.Producto)
	assert.Equal(t, 10, productos.productos[p.ID].Stock)
	assert.Contains(t, cache.invalidados, "ac")

	_, err = svc.RegistrarMovimiento(ctx, usuario, dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoSalida, Cantidad: 11,
	})
	assert.ErrorIs(t, err, ticket.ErrStockInsuficiente)
	assert.Equal(t, 10, productos.productos[p.ID].Stock)

	resp, err = svc.RegistrarMovimiento(ctx, usuario, dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoSalida, Cantidad: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockNuevo)
	assert.Len(t, movs.movimientos, 2)

	list, err := svc.ListarMovimientos(ctx, dto.MovimientoFilter{ProductoID: p.ID.String(), Tipo: model.MovimientoSalida})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
}

func TestRegistrarMovimiento_CantidadInvalida(t *testing.T) {
	productos := newStubProductoRepo()
	p := productos.add(model.Producto{Nombre: "X", Stock: 1, Activo: true})
	svc := NewInventarioService(productos, &stubMovimientoRepo{}, nil)

	_, err := svc.RegistrarMovimiento(context.Background(), uuid.New(), dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoEntrada, Cantidad: 0,
	})
	assert.ErrorIs(t, err, ticket.ErrCantidadInvalida)
}

func TestObtenerAlertasYResumen(t *testing.T) {
	productos := newStubProductoRepo()
	productos.add(model.Producto{Nombre: "Bajo", Stock: 2, StockMinimo: 5, PrecioCompra: dec("10"), Activo: true})
	productos.add(model.Producto{Nombre: "Justo", Stock: 5, StockMinimo: 5, PrecioCompra: dec("1"), Activo: true})
	productos.add(model.Producto{Nombre: "Bien", Stock: 50, StockMinimo: 5, PrecioCompra: dec("2"), Activo: true})
	svc := NewInventarioService(productos, &stubMovimientoRepo{}, nil)
	ctx := context.Background()

	alertas, err := svc.ObtenerAlertas(ctx)
	require.NoError(t, err)
	require.Len(t, alertas, 2)
	faltantes := map[string]int{}
	for _, a := range alertas {
		faltantes[a.Nombre] = a.Faltante
	}
	assert.Equal(t, map[string]int{"Bajo": 3, "Justo": 0}, faltantes)

	res, err := svc.Resumen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Productos)
	assert.Equal(t, int64(57), res.Unidades)
	assert.True(t, res.ValorInventario.Equal(dec("125")))
	assert.Equal(t, 2, res.StockBajo)
}
