package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
// PDF travels inline (base64 in JSON); receipts are a few KB.
type EmailJobPayload struct {
	ToEmail  string `json:"to_email"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	PDF      []byte `json:"pdf,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// Remitente sends one email with an optional PDF attachment.
type Remitente interface {
	EnviarRecibo(to, subject, body string, pdf []byte, filename string) error
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer Remitente
}

func NewEmailWorker(mailer Remitente) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email: payload: %v: %w", err, ErrPermanente)
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email, skipping")
		return nil
	}

	err := w.mailer.EnviarRecibo(payload.ToEmail, payload.Subject, payload.Body, payload.PDF, payload.Filename)
	if err != nil {
		return fmt.Errorf("email: enviar a %s: %w", payload.ToEmail, err)
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: recibo enviado")
	return nil
}
