// Package ticket holds the in-progress sale: line items, unit price
// resolution, stock ceilings, totals, change and the checkout record.
// It performs no I/O; callers persist the result of Cobrar.
package ticket

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"posbuddy/internal/model"
)

// Linea is one product in the ticket. PrecioUnitario is fixed when the line
// is first inserted and never re-resolved afterwards.
type Linea struct {
	ID             uuid.UUID       `json:"id"`
	Producto       model.Producto  `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Ticket is the cart of a single sales session. Lineas keeps insertion order.
type Ticket struct {
	Lineas  []Linea        `json:"lineas"`
	Cliente *model.Cliente `json:"cliente,omitempty"`
}

// Totales of a ticket. Total equals Subtotal: no tax or discount is applied.
type Totales struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

// Nuevo returns an empty ticket.
func Nuevo() *Ticket {
	return &Ticket{Lineas: []Linea{}}
}

func (t *Ticket) Vacio() bool { return len(t.Lineas) == 0 }

// CantidadDe returns how many units of the product the ticket already holds.
func (t *Ticket) CantidadDe(productoID uuid.UUID) int {
	for _, l := range t.Lineas {
		if l.Producto.ID == productoID {
			return l.Cantidad
		}
	}
	return 0
}

// AgregarLinea adds cantidad units of p. When p already has a line the
// quantities are merged and the existing unit price is kept.
// On error the ticket is left unmodified.
func (t *Ticket) AgregarLinea(p model.Producto, cantidad int) (*Linea, error) {
	if cantidad < 1 {
		return nil, ErrCantidadInvalida
	}

	actual := t.CantidadDe(p.ID)
	if actual+cantidad > p.Stock {
		return nil, &StockInsuficienteError{
			ProductoID: p.ID,
			Producto:   p.Nombre,
			Disponible: p.Stock,
			Solicitado: actual + cantidad,
		}
	}

	for i := range t.Lineas {
		l := &t.Lineas[i]
		if l.Producto.ID != p.ID {
			continue
		}
		l.Cantidad += cantidad
		l.Subtotal = subtotal(l.Cantidad, l.PrecioUnitario)
		// latest known stock, used by ActualizarCantidad
		l.Producto.Stock = p.Stock
		return l, nil
	}

	precio := PrecioUnitario(p, cantidad)
	t.Lineas = append(t.Lineas, Linea{
		ID:             uuid.New(),
		Producto:       p,
		Cantidad:       cantidad,
		PrecioUnitario: precio,
		Descuento:      decimal.Zero,
		Subtotal:       subtotal(cantidad, precio),
	})
	return &t.Lineas[len(t.Lineas)-1], nil
}

// ActualizarCantidad sets the quantity of an existing line.
// Quantities below 1 are rejected; use QuitarLinea to drop a line.
func (t *Ticket) ActualizarCantidad(lineaID uuid.UUID, cantidad int) (*Linea, error) {
	if cantidad < 1 {
		return nil, ErrCantidadInvalida
	}
	l := t.linea(lineaID)
	if l == nil {
		return nil, ErrLineaNoEncontrada
	}
	if cantidad > l.Producto.Stock {
		return nil, &StockInsuficienteError{
			ProductoID: l.Producto.ID,
			Producto:   l.Producto.Nombre,
			Disponible: l.Producto.Stock,
			Solicitado: cantidad,
		}
	}
	l.Cantidad = cantidad
	l.Subtotal = subtotal(cantidad, l.PrecioUnitario)
	return l, nil
}

// QuitarLinea removes the line. It reports whether a line was removed.
func (t *Ticket) QuitarLinea(lineaID uuid.UUID) bool {
	for i, l := range t.Lineas {
		if l.ID == lineaID {
			t.Lineas = append(t.Lineas[:i], t.Lineas[i+1:]...)
			return true
		}
	}
	return false
}

// Limpiar empties the ticket and detaches the customer.
func (t *Ticket) Limpiar() {
	t.Lineas = []Linea{}
	t.Cliente = nil
}

func (t *Ticket) AsignarCliente(c model.Cliente) { t.Cliente = &c }

func (t *Ticket) QuitarCliente() { t.Cliente = nil }

// Totales sums the line subtotals, rounded to cents.
func (t *Ticket) Totales() Totales {
	sum := decimal.Zero
	for _, l := range t.Lineas {
		sum = sum.Add(l.Subtotal)
	}
	sum = sum.Round(2)
	return Totales{Subtotal: sum, Total: sum}
}

func (t *Ticket) linea(id uuid.UUID) *Linea {
	for i := range t.Lineas {
		if t.Lineas[i].ID == id {
			return &t.Lineas[i]
		}
	}
	return nil
}

func subtotal(cantidad int, precio decimal.Decimal) decimal.Decimal {
	return precio.Mul(decimal.NewFromInt(int64(cantidad))).Round(2)
}
