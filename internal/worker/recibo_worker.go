package worker

// recibo_worker.go
// Renders the PDF receipt of a completed sale, stores it and, when the
// customer has an email address, queues the email delivery.

import (
	"context"
	"encoding/json"
	"fmt"

	"posbuddy/internal/infra"
	"posbuddy/internal/model"
	"posbuddy/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibo.
type ReciboJobPayload struct {
	VentaID string `json:"venta_id"`
}

// EmailEncolador is the part of the Dispatcher the receipt worker needs.
type EmailEncolador interface {
	EncolarEmail(ctx context.Context, payload EmailJobPayload) error
}

type ReciboWorker struct {
	ventas        repository.VentaRepository
	configuracion repository.ConfiguracionRepository
	store         infra.ReciboStore
	emails        EmailEncolador
	nombreNegocio string
}

func NewReciboWorker(
	ventas repository.VentaRepository,
	configuracion repository.ConfiguracionRepository,
	store infra.ReciboStore,
	emails EmailEncolador,
	nombreNegocio string,
) *ReciboWorker {
	return &ReciboWorker{
		ventas:        ventas,
		configuracion: configuracion,
		store:         store,
		emails:        emails,
		nombreNegocio: nombreNegocio,
	}
}

func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("recibo: payload: %v: %w", err, ErrPermanente)
	}
	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		return fmt.Errorf("recibo: venta_id %q: %w", payload.VentaID, ErrPermanente)
	}

	venta, err := w.ventas.FindByID(ctx, ventaID)
	if err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("recibo: venta %s no existe: %w", ventaID, ErrPermanente)
		}
		return fmt.Errorf("recibo: cargar venta: %w", err)
	}

	negocio, err := w.configuracion.Get(ctx)
	if err != nil {
		if !repository.IsNotFound(err) {
			return fmt.Errorf("recibo: cargar configuración: %w", err)
		}
		negocio = &model.ConfiguracionNegocio{Nombre: w.nombreNegocio}
	}

	pdf, err := infra.GenerarReciboPDF(venta, negocio)
	if err != nil {
		return err
	}
	nombre := fmt.Sprintf("ticket_%d.pdf", venta.NumeroTicket)
	ubicacion, err := w.store.Guardar(ctx, nombre, pdf)
	if err != nil {
		return err
	}
	log.Info().Str("venta_id", ventaID.String()).Int("ticket", venta.NumeroTicket).
		Str("ubicacion", ubicacion).Msg("recibo generado")

	if venta.Cliente == nil || venta.Cliente.Email == nil || *venta.Cliente.Email == "" {
		return nil
	}
	return w.emails.EncolarEmail(ctx, EmailJobPayload{
		ToEmail:  *venta.Cliente.Email,
		Subject:  fmt.Sprintf("%s - Ticket N° %d", negocio.Nombre, venta.NumeroTicket),
		Body:     fmt.Sprintf("Hola %s, adjuntamos el recibo de su compra por $%s.", venta.Cliente.Nombre, venta.Total.StringFixed(2)),
		PDF:      pdf,
		Filename: nombre,
	})
}
