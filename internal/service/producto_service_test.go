package service

import (
	"context"
	"fmt"
	"testing"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductoCrear_StockMinimoPorDefecto(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewProductoService(repo, newStubPrecioCache())

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoBarras: ptr(" 7501 "),
		Nombre:       "Galletas",
		PrecioVenta:  dec("12.50"),
		Stock:        4,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StockMinimoDefault, resp.StockMinimo)
	assert.True(t, resp.StockBajo)
	require.NotNil(t, resp.CodigoBarras)
	assert.Equal(t, "7501", *resp.CodigoBarras)

	resp, err = svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoBarras: ptr("  "),
		Nombre:       "Sin código",
		PrecioVenta:  dec("1"),
		StockMinimo:  ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.StockMinimo)
	assert.Nil(t, resp.CodigoBarras)
}

func TestProductoCrear_CodigoDuplicado(t *testing.T) {
	repo := newStubProductoRepo()
	svc := NewProductoService(repo, nil)
	ctx := context.Background()

	_, err := svc.Crear(ctx, dto.CrearProductoRequest{CodigoBarras: ptr("1"), Nombre: "Uno", PrecioVenta: dec("1")})
	require.NoError(t, err)
	_, err = svc.Crear(ctx, dto.CrearProductoRequest{CodigoBarras: ptr("1"), Nombre: "Otro", PrecioVenta: dec("1")})
	assert.ErrorIs(t, err, ErrCodigoDuplicado)
}

func TestProductoBuscar_Limite20(t *testing.T) {
	repo := newStubProductoRepo()
	for i := 0; i < 30; i++ {
		repo.add(model.Producto{Nombre: fmt.Sprintf("Jugo %02d", i), PrecioVenta: dec("1"), Activo: true})
	}
	repo.add(model.Producto{Nombre: "Jugo inactivo", PrecioVenta: dec("1"), Activo: false})
	svc := NewProductoService(repo, nil)

	list, err := svc.Buscar(context.Background(), "jugo")
	require.NoError(t, err)
	assert.Len(t, list, MaxResultadosBusqueda)

	list, err = svc.Buscar(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConsultarPrecio_CacheEInvalidacion(t *testing.T) {
	repo := newStubProductoRepo()
	cache := newStubPrecioCache()
	p := repo.add(model.Producto{
		Nombre: "Café", CodigoBarras: ptr("cafe"), PrecioVenta: dec("80"),
		PrecioMayoreo: ptr(dec("70")), CantidadMayoreo: ptr(10), Stock: 12, Activo: true,
	})
	svc := NewProductoService(repo, cache)
	ctx := context.Background()

	resp, err := svc.ConsultarPrecio(ctx, "cafe")
	require.NoError(t, err)
	assert.Equal(t, 12, resp.StockDisponible)
	require.NotNil(t, resp.PrecioMayoreo)
	_, cached := cache.Get(ctx, "cafe")
	assert.True(t, cached)

	_, err = svc.Actualizar(ctx, p.ID, dto.ActualizarProductoRequest{PrecioVenta: ptr(dec("85"))})
	require.NoError(t, err)
	_, cached = cache.Get(ctx, "cafe")
	assert.False(t, cached)

	resp, err = svc.ConsultarPrecio(ctx, "cafe")
	require.NoError(t, err)
	assert.True(t, resp.PrecioVenta.Equal(dec("85")))

	_, err = svc.ConsultarPrecio(ctx, "nada")
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestProductoDesactivar(t *testing.T) {
	repo := newStubProductoRepo()
	p := repo.add(model.Producto{Nombre: "X", CodigoBarras: ptr("x"), PrecioVenta: dec("1"), Activo: true})
	svc := NewProductoService(repo, newStubPrecioCache())
	ctx := context.Background()

	require.NoError(t, svc.Desactivar(ctx, p.ID))
	_, err := svc.BuscarPorCodigo(ctx, "x")
	assert.ErrorIs(t, err, ErrNoEncontrado)
}
