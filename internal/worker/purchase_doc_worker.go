package worker

// purchase_doc_worker.go
// Processes purchase-order document jobs: renders the PO PDF and, when the
// vendor has an email on file, chains an email job with the attachment.
// Best-effort by design — a failed document never affects the committed
// purchase.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/infra"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PurchaseDocJobPayload is the job envelope sent to QueuePurchaseDoc.
type PurchaseDocJobPayload struct {
	PurchaseID string `json:"purchase_id"`
}

type PurchaseDocWorker struct {
	purchases   repository.PurchaseRepository
	dispatcher  *Dispatcher
	storagePath string
}

func NewPurchaseDocWorker(purchases repository.PurchaseRepository, dispatcher *Dispatcher, storagePath string) *PurchaseDocWorker {
	return &PurchaseDocWorker{purchases: purchases, dispatcher: dispatcher, storagePath: storagePath}
}

// Process renders the PO PDF and chains a vendor email job.
func (w *PurchaseDocWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload PurchaseDocJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("purchase_doc: invalid payload: %w", err)
	}
	id, err := uuid.Parse(payload.PurchaseID)
	if err != nil {
		return fmt.Errorf("purchase_doc: invalid purchase_id %q: %w", payload.PurchaseID, err)
	}

	purchase, err := w.purchases.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("purchase_doc: load purchase %s: %w", id, err)
	}

	pdfPath, err := infra.GeneratePurchaseOrderPDF(purchase, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("purchase_id", payload.PurchaseID).Str("pdf", pdfPath).Msg("purchase_doc: PO generated")

	if purchase.Vendor == nil || purchase.Vendor.Email == "" {
		return nil // nothing to send
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: purchase.Vendor.Email,
		Subject: fmt.Sprintf("Purchase Order %s", purchase.ID),
		Body:    fmt.Sprintf("Purchase order dated %s, total %s. Document attached.", purchase.PurchaseDate.Format("02/01/2006"), purchase.TotalAmount.StringFixed(2)),
		PDFPath: pdfPath,
	})
}
