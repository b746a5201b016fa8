package infra

import (
	"bytes"
	"fmt"

	"posbuddy/internal/model"

	"github.com/go-pdf/fpdf"
)

var metodoEtiqueta = map[string]string{
	"efectivo": "Efectivo",
	"tarjeta":  "Tarjeta",
	"credito":  "Crédito",
}

// GenerarReciboPDF renders a thermal-receipt sized PDF (74mm wide) for a
// completed sale. Items must have Producto preloaded for names to show.
func GenerarReciboPDF(venta *model.Venta, negocio *model.ConfiguracionNegocio) ([]byte, error) {
	alto := 70.0 + 5*float64(len(venta.Items))
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: alto},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 4)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Encabezado ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 6, tr(negocio.Nombre), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	if negocio.Direccion != nil {
		pdf.CellFormat(contentW, 4, tr(*negocio.Direccion), "", 1, "C", false, 0, "")
	}
	if negocio.Telefono != nil {
		pdf.CellFormat(contentW, 4, "Tel. "+tr(*negocio.Telefono), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Ticket N° %d", venta.NumeroTicket)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if venta.Cliente != nil {
		pdf.CellFormat(contentW, 4, tr("Cliente: "+venta.Cliente.Nombre), "", 1, "L", false, 0, "")
	}
	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	// ── Partidas ─────────────────────────────────────────────────────────────
	col1 := contentW * 0.46
	col2 := contentW * 0.22
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant x P.U.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		if r := []rune(nombre); len(r) > 20 {
			nombre = string(r[:19]) + "."
		}
		pdf.CellFormat(col1, 5, tr(nombre), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%d x %s", item.Cantidad, item.PrecioUnitario.StringFixed(2)), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	// ── Totales ──────────────────────────────────────────────────────────────
	fila := func(etiqueta, valor string) {
		pdf.CellFormat(col1+col2, 4, tr(etiqueta), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, valor, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	etiqueta := metodoEtiqueta[venta.MetodoPago]
	if etiqueta == "" {
		etiqueta = venta.MetodoPago
	}
	fila("Pago ("+etiqueta+"):", "$"+venta.PagoRecibido.StringFixed(2))
	if venta.MetodoPago == "efectivo" {
		fila("Cambio:", "$"+venta.Cambio.StringFixed(2))
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("¡Gracias por su compra!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}
