package infra

// pdf.go — purchase-order document generation using go-pdf/fpdf.
// Renders an A4 PO with vendor block, line-item table (product, barcode,
// quantity, unit cost, line total) and a bold grand total.
// The output file is saved to storagePath/purchase_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"

	"github.com/go-pdf/fpdf"
)

// GeneratePurchaseOrderPDF renders the purchase-order document for a recorded
// purchase. The purchase must arrive with Vendor and Items.Product resolved.
// Returns the absolute path to the generated file.
func GeneratePurchaseOrderPDF(p *model.Purchase, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("purchase_%s.pdf", p.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Purchase Order", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("PO %s", p.ID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Vendor block ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Vendor", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if p.Vendor != nil {
		pdf.CellFormat(contentW, 5, p.Vendor.Name, "", 1, "L", false, 0, "")
		if p.Vendor.Address != "" {
			pdf.CellFormat(contentW, 5, p.Vendor.Address, "", 1, "L", false, 0, "")
		}
		if p.Vendor.Phone != "" {
			pdf.CellFormat(contentW, 5, p.Vendor.Phone, "", 1, "L", false, 0, "")
		}
	}
	pdf.CellFormat(contentW, 5, "Date: "+p.PurchaseDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Items table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.36 // product name
	col2 := contentW * 0.22 // barcode
	col3 := contentW * 0.10 // qty
	col4 := contentW * 0.16 // unit cost
	col5 := contentW * 0.16 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Barcode", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 7, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 7, "Unit Cost", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 7, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range p.Items {
		name, barcode := "", ""
		if item.Product != nil {
			name = item.Product.Name
			barcode = item.Product.Barcode
		}
		if len(name) > 32 {
			name = name[:31] + "…"
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, barcode, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, item.UnitCost.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 6, item.LineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3+col4, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col5, 8, p.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
