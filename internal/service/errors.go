package service

import (
	"errors"
	"fmt"

	"posbuddy/internal/repository"
)

var (
	// ErrEscrituraRemota wraps any store failure while persisting a checkout.
	// The ticket is kept so the cashier can retry.
	ErrEscrituraRemota = errors.New("no se pudo registrar la venta, intente de nuevo")

	ErrLimiteCreditoExcedido = errors.New("la venta excede el límite de crédito del cliente")
	ErrCodigoDuplicado       = errors.New("ya existe un producto con ese código de barras")
	ErrCategoriaDuplicada    = errors.New("ya existe una categoría con ese nombre")
	ErrCategoriaInexistente  = errors.New("la categoría indicada no existe")
	ErrUsuarioDuplicado      = errors.New("ya existe un usuario con ese nombre")
	ErrProductoInactivo      = errors.New("el producto está inactivo y no puede venderse")
	ErrClienteInactivo       = errors.New("el cliente está inactivo")
	ErrClienteConSaldo       = errors.New("no se puede desactivar un cliente con saldo pendiente")
	ErrTicketEnCurso         = errors.New("hay un ticket en curso; cóbrelo, guárdelo o límpielo primero")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrTokenInvalido         = errors.New("refresh token inválido o expirado")
	ErrFechaInvalida         = errors.New("fecha inválida, use AAAA-MM-DD")
	ErrMontoInvalido         = errors.New("monto inválido")

	// ErrNoEncontrado is matched by every NoEncontradoError.
	ErrNoEncontrado = errors.New("no encontrado")
)

// NoEncontradoError names the missing resource.
type NoEncontradoError struct {
	Recurso string
}

func (e *NoEncontradoError) Error() string { return e.Recurso + " no encontrado" }

func (e *NoEncontradoError) Is(target error) bool { return target == ErrNoEncontrado }

// noEncontrado maps a repository not-found error to a NoEncontradoError and
// passes any other error through.
func noEncontrado(err error, recurso string) error {
	if repository.IsNotFound(err) {
		return &NoEncontradoError{Recurso: recurso}
	}
	return fmt.Errorf("%s: %w", recurso, err)
}
