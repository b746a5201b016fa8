package service

import (
	"context"
	"testing"

	"posbuddy/internal/dto"
	"posbuddy/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClienteCrear_SaldoCero(t *testing.T) {
	svc := NewClienteService(newStubClienteRepo())
	resp, err := svc.Crear(context.Background(), dto.CrearClienteRequest{Nombre: " Luis ", LimiteCredito: dec("300")})
	require.NoError(t, err)
	assert.Equal(t, "Luis", resp.Nombre)
	assert.True(t, resp.SaldoActual.IsZero())
	assert.True(t, resp.CreditoDisponible.Equal(dec("300")))
}

func TestRegistrarAbono(t *testing.T) {
	repo := newStubClienteRepo()
	c := repo.add(model.Cliente{Nombre: "Ana", SaldoActual: dec("100"), Activo: true})
	svc := NewClienteService(repo)
	ctx := context.Background()
	usuario := uuid.New()

	abono, err := svc.RegistrarAbono(ctx, usuario, c.ID, dto.RegistrarAbonoRequest{Monto: dec("40")})
	require.NoError(t, err)
	assert.True(t, abono.SaldoAnterior.Equal(dec("100")))
	assert.True(t, abono.SaldoNuevo.Equal(dec("60")))

	// overpayment floors at zero
	abono, err = svc.RegistrarAbono(ctx, usuario, c.ID, dto.RegistrarAbonoRequest{Monto: dec("500")})
	require.NoError(t, err)
	assert.True(t, abono.SaldoNuevo.IsZero())
	assert.True(t, repo.clientes[c.ID].SaldoActual.IsZero())

	list, err := svc.ListarAbonos(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.RegistrarAbono(ctx, usuario, c.ID, dto.RegistrarAbonoRequest{Monto: dec("0")})
	assert.ErrorIs(t, err, ErrMontoInvalido)

	_, err = svc.RegistrarAbono(ctx, usuario, uuid.New(), dto.RegistrarAbonoRequest{Monto: dec("1")})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestClienteDesactivar_ConSaldo(t *testing.T) {
	repo := newStubClienteRepo()
	debe := repo.add(model.Cliente{Nombre: "Debe", SaldoActual: dec("0.01"), Activo: true})
	libre := repo.add(model.Cliente{Nombre: "Libre", Activo: true})
	svc := NewClienteService(repo)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Desactivar(ctx, debe.ID), ErrClienteConSaldo)
	require.NoError(t, svc.Desactivar(ctx, libre.ID))
	assert.False(t, repo.clientes[libre.ID].Activo)
}

func TestClienteBuscar(t *testing.T) {
	repo := newStubClienteRepo()
	repo.add(model.Cliente{Nombre: "María López", Telefono: ptr("5512345678"), Activo: true})
	repo.add(model.Cliente{Nombre: "Pedro", Activo: true})
	svc := NewClienteService(repo)

	list, err := svc.Buscar(context.Background(), "5512")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "María López", list[0].Nombre)
}
