package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ResumenVentas aggregates completed sales in a time range.
type ResumenVentas struct {
	Total         decimal.Decimal `db:"total"`
	Efectivo      decimal.Decimal `db:"efectivo"`
	Tarjeta       decimal.Decimal `db:"tarjeta"`
	Credito       decimal.Decimal `db:"credito"`
	Transacciones int64           `db:"transacciones"`
}

type TopProducto struct {
	ProductoID string          `db:"producto_id"`
	Nombre     string          `db:"nombre"`
	Cantidad   int64           `db:"cantidad"`
	Total      decimal.Decimal `db:"total"`
}

// ReporteRepository is the read model for sales reporting. It runs plain SQL
// through sqlx over the same connection pool GORM uses.
type ReporteRepository interface {
	ResumenVentas(ctx context.Context, desde, hasta time.Time) (*ResumenVentas, error)
	TopProductos(ctx context.Context, desde, hasta time.Time, limit int) ([]TopProducto, error)
	TotalAbonos(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)
}

type reporteRepo struct{ db *sqlx.DB }

func NewReporteRepository(db *sqlx.DB) ReporteRepository { return &reporteRepo{db: db} }

const resumenVentasSQL = `
SELECT
	COALESCE(SUM(total), 0) AS total,
	COALESCE(SUM(CASE WHEN metodo_pago = 'efectivo' THEN total ELSE 0 END), 0) AS efectivo,
	COALESCE(SUM(CASE WHEN metodo_pago = 'tarjeta' THEN total ELSE 0 END), 0) AS tarjeta,
	COALESCE(SUM(CASE WHEN es_credito THEN total ELSE 0 END), 0) AS credito,
	COUNT(*) AS transacciones
FROM ventas
WHERE estado = 'completada' AND created_at >= ? AND created_at < ?`

const topProductosSQL = `
SELECT vi.producto_id AS producto_id, p.nombre AS nombre,
	SUM(vi.cantidad) AS cantidad, SUM(vi.subtotal) AS total
FROM venta_items vi
JOIN ventas v ON v.id = vi.venta_id
JOIN productos p ON p.id = vi.producto_id
WHERE v.estado = 'completada' AND v.created_at >= ? AND v.created_at < ?
GROUP BY vi.producto_id, p.nombre
ORDER BY cantidad DESC, nombre ASC
LIMIT ?`

const totalAbonosSQL = `
SELECT COALESCE(SUM(monto), 0) FROM abonos_credito
WHERE created_at >= ? AND created_at < ?`

func (r *reporteRepo) ResumenVentas(ctx context.Context, desde, hasta time.Time) (*ResumenVentas, error) {
	var res ResumenVentas
	if err := r.db.GetContext(ctx, &res, r.db.Rebind(resumenVentasSQL), desde, hasta); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reporteRepo) TopProductos(ctx context.Context, desde, hasta time.Time, limit int) ([]TopProducto, error) {
	top := []TopProducto{}
	err := r.db.SelectContext(ctx, &top, r.db.Rebind(topProductosSQL), desde, hasta, limit)
	return top, err
}

func (r *reporteRepo) TotalAbonos(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, r.db.Rebind(totalAbonosSQL), desde, hasta)
	return total, err
}
