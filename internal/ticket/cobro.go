package ticket

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"posbuddy/internal/model"
)

// MetodoPago of a sale.
type MetodoPago string

const (
	MetodoEfectivo MetodoPago = "efectivo"
	MetodoTarjeta  MetodoPago = "tarjeta"
	MetodoCredito  MetodoPago = "credito"
)

func (m MetodoPago) Valido() bool {
	switch m {
	case MetodoEfectivo, MetodoTarjeta, MetodoCredito:
		return true
	}
	return false
}

// AjusteSaldo is the customer balance change produced by a credit sale.
type AjusteSaldo struct {
	ClienteID     uuid.UUID
	SaldoAnterior decimal.Decimal
	SaldoNuevo    decimal.Decimal
}

// Cobro is everything a checkout must persist. Venta.NumeroTicket and
// Venta.UsuarioID are assigned by the caller at write time.
type Cobro struct {
	Venta       model.Venta
	Movimientos []model.MovimientoInventario
	Saldo       *AjusteSaldo
}

// CalcularCambio returns the change owed. Only cash produces change.
func CalcularCambio(total decimal.Decimal, metodo MetodoPago, recibido decimal.Decimal) decimal.Decimal {
	if metodo != MetodoEfectivo {
		return decimal.Zero
	}
	cambio := recibido.Sub(total)
	if cambio.IsNegative() {
		return decimal.Zero
	}
	return cambio.Round(2)
}

// PuedeCobrar reports whether checkout may proceed. Card and credit need only
// a non-empty ticket; the customer requirement for credit is checked by Cobrar.
func (t *Ticket) PuedeCobrar(metodo MetodoPago, recibido decimal.Decimal) bool {
	if t.Vacio() || !metodo.Valido() {
		return false
	}
	if metodo == MetodoEfectivo {
		return recibido.GreaterThanOrEqual(t.Totales().Total)
	}
	return true
}

// Cobrar builds the sale record, one venta movement per line and, for credit,
// the customer balance change. The ticket is not modified.
func (t *Ticket) Cobrar(metodo MetodoPago, recibido decimal.Decimal) (*Cobro, error) {
	if !metodo.Valido() {
		return nil, ErrMetodoInvalido
	}
	if t.Vacio() {
		return nil, ErrTicketVacio
	}
	if !t.PuedeCobrar(metodo, recibido) {
		return nil, ErrPagoInsuficiente
	}
	esCredito := metodo == MetodoCredito
	if esCredito && t.Cliente == nil {
		return nil, ErrClienteRequerido
	}

	tot := t.Totales()
	venta := model.Venta{
		Subtotal:     tot.Subtotal,
		Descuento:    decimal.Zero,
		Impuesto:     decimal.Zero,
		Total:        tot.Total,
		PagoRecibido: recibido,
		Cambio:       CalcularCambio(tot.Total, metodo, recibido),
		MetodoPago:   string(metodo),
		EsCredito:    esCredito,
		Estado:       model.VentaCompletada,
	}
	if t.Cliente != nil {
		id := t.Cliente.ID
		venta.ClienteID = &id
	}

	cobro := &Cobro{}
	for _, l := range t.Lineas {
		venta.Items = append(venta.Items, model.VentaItem{
			ProductoID:     l.Producto.ID,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Descuento:      l.Descuento,
			Subtotal:       l.Subtotal,
		})
		cobro.Movimientos = append(cobro.Movimientos, model.MovimientoInventario{
			ProductoID:    l.Producto.ID,
			Tipo:          model.MovimientoVenta,
			Cantidad:      l.Cantidad,
			StockAnterior: l.Producto.Stock,
			StockNuevo:    l.Producto.Stock - l.Cantidad,
		})
	}
	cobro.Venta = venta

	if esCredito {
		cobro.Saldo = &AjusteSaldo{
			ClienteID:     t.Cliente.ID,
			SaldoAnterior: t.Cliente.SaldoActual,
			SaldoNuevo:    t.Cliente.SaldoActual.Add(tot.Total),
		}
	}
	return cobro, nil
}
