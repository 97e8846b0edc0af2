package infra

// pdf.go: receipt rendering using go-pdf/fpdf.
// A4 portrait layout:
//   - Clinic name header
//   - Receipt number, issue date, sale number
//   - Owner block (when the sale has one)
//   - Item table (description, quantity, unit price, total)
//   - Subtotal / discount / tax / bold total
//   - Payment method and status

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/HostingCuenca/vet-system/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var paymentMethodLabels = map[string]string{
	model.PaymentCash:     "Efectivo",
	model.PaymentCard:     "Tarjeta",
	model.PaymentTransfer: "Transferencia",
	model.PaymentCredit:   "Crédito",
}

var paymentStatusLabels = map[string]string{
	model.PaymentStatusPaid:    "Pagado",
	model.PaymentStatusPending: "Pendiente",
}

// ReceiptPDF renders receipts with the clinic's name in the header.
type ReceiptPDF struct {
	clinicName string
}

func NewReceiptPDF(clinicName string) *ReceiptPDF {
	return &ReceiptPDF{clinicName: clinicName}
}

// Render builds the PDF in memory. rec must have Sale.Items loaded.
func (r *ReceiptPDF) Render(rec *model.Receipt) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252, covers Spanish accents

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 9, tr(r.clinicName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Recibo de pago", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Receipt info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW/2, 6, tr("Recibo N° "+rec.ReceiptNumber), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, tr("Fecha: "+rec.IssueDate.Format("02/01/2006 15:04")), "", 1, "R", false, 0, "")
	if rec.Sale != nil {
		pdf.CellFormat(contentW/2, 6, "Venta: "+rec.Sale.SaleNumber, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 6, "Fecha de venta: "+rec.Sale.CreatedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")
	}
	if rec.Owner != nil {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Cliente", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 5, tr(rec.Owner.Name+"  ·  "+rec.Owner.IdentificationNumber), "", 1, "L", false, 0, "")
		if rec.Owner.Email != nil {
			pdf.CellFormat(contentW, 5, tr(*rec.Owner.Email), "", 1, "L", false, 0, "")
		}
	}
	if rec.Veterinarian != nil {
		pdf.CellFormat(contentW, 5, tr("Veterinario: "+rec.Veterinarian.Name), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.50
	col2 := contentW * 0.12
	col3 := contentW * 0.19
	col4 := contentW * 0.19

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(col1, 7, tr("Descripción"), "B", 0, "L", true, 0, "")
	pdf.CellFormat(col2, 7, "Cant.", "B", 0, "C", true, 0, "")
	pdf.CellFormat(col3, 7, "P. unitario", "B", 0, "R", true, 0, "")
	pdf.CellFormat(col4, 7, "Total", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	subtotal, discount, tax := rec.TotalAmount, decimal.Zero, decimal.Zero
	if rec.Sale != nil {
		for _, item := range rec.Sale.Items {
			pdf.CellFormat(col1, 6, tr(item.Description), "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 6, money(item.UnitPrice), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 6, money(item.Total), "", 1, "R", false, 0, "")
		}
		subtotal, discount, tax = rec.Sale.Subtotal, rec.Sale.Discount, rec.Sale.Tax
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := col1 + col2 + col3
	pdf.CellFormat(labelW, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, money(subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "Descuento", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, money(discount), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, "Impuestos", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, money(tax), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelW, 8, "TOTAL", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, money(rec.TotalAmount), "", 1, "R", false, 0, "")

	// ── Payment ──────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr("Forma de pago: "+label(paymentMethodLabels, rec.PaymentMethod)), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, tr("Estado: "+label(paymentStatusLabels, rec.PaymentStatus)), "", 1, "L", false, 0, "")
	if rec.Notes != nil && *rec.Notes != "" {
		pdf.MultiCell(contentW, 5, tr("Notas: "+*rec.Notes), "", "L", false)
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, tr("¡Gracias por confiar en nosotros!"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders rec into storagePath/recibo_<number>.pdf and returns the path.
func (r *ReceiptPDF) WriteFile(rec *model.Receipt, storagePath string) (string, error) {
	data, err := r.Render(rec)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(storagePath, "recibo_"+rec.ReceiptNumber+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return path, nil
}

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

func label(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return key
}
