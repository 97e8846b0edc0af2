package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: renders the receipt PDF into the
// storage directory and, when the owner has an email, queues the delivery.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	ReceiptID string `json:"receipt_id"`
}

// ReceiptFileWriter renders a receipt to a PDF file (infra.ReceiptPDF).
type ReceiptFileWriter interface {
	WriteFile(rec *model.Receipt, storagePath string) (string, error)
}

// EmailEnqueuer queues an email job (Dispatcher).
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

type ReceiptWorker struct {
	receipts    repository.ReceiptRepository
	writer      ReceiptFileWriter
	emails      EmailEnqueuer
	storagePath string
	clinicName  string
}

func NewReceiptWorker(
	receipts repository.ReceiptRepository,
	writer ReceiptFileWriter,
	emails EmailEnqueuer,
	storagePath string,
	clinicName string,
) *ReceiptWorker {
	return &ReceiptWorker{
		receipts:    receipts,
		writer:      writer,
		emails:      emails,
		storagePath: storagePath,
		clinicName:  clinicName,
	}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("receipt_worker: invalid payload: %w", err)
	}
	id, err := uuid.Parse(payload.ReceiptID)
	if err != nil {
		return fmt.Errorf("receipt_worker: invalid receipt_id %q", payload.ReceiptID)
	}

	rec, err := w.receipts.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("receipt_worker: load receipt: %w", err)
	}

	path, err := w.writer.WriteFile(rec, w.storagePath)
	if err != nil {
		return fmt.Errorf("receipt_worker: %w", err)
	}
	log.Info().Str("receipt", rec.ReceiptNumber).Str("path", path).Msg("receipt_worker: pdf generated")

	if rec.Owner == nil || rec.Owner.Email == nil || *rec.Owner.Email == "" {
		return nil
	}
	job := EmailJobPayload{
		ToEmail: *rec.Owner.Email,
		Subject: fmt.Sprintf("%s - Recibo %s", w.clinicName, rec.ReceiptNumber),
		Body: fmt.Sprintf("Hola %s,\n\nAdjuntamos el recibo %s por un total de $%s.\n\n%s",
			rec.Owner.Name, rec.ReceiptNumber, rec.TotalAmount.StringFixed(2), w.clinicName),
		PDFPath: path,
	}
	if err := w.emails.EnqueueEmail(ctx, job); err != nil {
		return fmt.Errorf("receipt_worker: enqueue email: %w", err)
	}
	return nil
}
