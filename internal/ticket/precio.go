package ticket

import (
	"github.com/shopspring/decimal"

	"posbuddy/internal/model"
)

// PrecioUnitario resolves the unit price for a first insert of cantidad units.
// The wholesale threshold is tested against the quantity of this single add,
// never against the running total of the line.
func PrecioUnitario(p model.Producto, cantidad int) decimal.Decimal {
	if p.TieneMayoreo() && cantidad >= *p.CantidadMayoreo {
		return *p.PrecioMayoreo
	}
	return p.PrecioVenta
}
