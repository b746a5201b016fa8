package ticket

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrCantidadInvalida  = errors.New("la cantidad debe ser un entero mayor o igual a 1")
	ErrStockInsuficiente = errors.New("stock insuficiente")
	ErrLineaNoEncontrada = errors.New("línea no encontrada en el ticket")
	ErrTicketVacio       = errors.New("el ticket no tiene productos")
	ErrPagoInsuficiente  = errors.New("el pago recibido no cubre el total")
	ErrClienteRequerido  = errors.New("la venta a crédito requiere un cliente")
	ErrMetodoInvalido    = errors.New("método de pago inválido")
)

// StockInsuficienteError carries the quantities involved in a rejected add or
// update. errors.Is(err, ErrStockInsuficiente) matches it.
type StockInsuficienteError struct {
	ProductoID uuid.UUID
	Producto   string
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.Producto, e.Disponible, e.Solicitado)
}

func (e *StockInsuficienteError) Is(target error) bool {
	return target == ErrStockInsuficiente
}
