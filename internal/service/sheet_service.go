package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/apierror"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/dto"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"
	"github.com/VishnuMK2006/inventory-management-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SheetService ingests externally produced profit spreadsheets and manages
// row-level reconciliation edits. The sheet's derived header fields
// (totalRecords/successRecords/errorRecords/profitSummary) are recomputed
// from the complete row set after every mutation — never patched.
type SheetService interface {
	Ingest(ctx context.Context, fileName string, rows []map[string]any) (*dto.SheetResponse, error)
	IngestWorkbook(ctx context.Context, fileName string, r io.Reader) (*dto.SheetResponse, error)
	GetSheet(ctx context.Context, id uuid.UUID) (*dto.SheetResponse, error)
	ListSheets(ctx context.Context, filter dto.SheetFilter) (*dto.SheetListResponse, error)
	UpdateRow(ctx context.Context, sheetID, rowID uuid.UUID, patch dto.SheetRowPatch) (*dto.SheetResponse, error)
	DeleteRow(ctx context.Context, sheetID, rowID uuid.UUID) (*dto.SheetResponse, error)
	AppendRow(ctx context.Context, sheetID uuid.UUID, raw map[string]any) (*dto.SheetResponse, error)
}

type sheetService struct {
	repo repository.SheetRepository
}

func NewSheetService(repo repository.SheetRepository) SheetService {
	return &sheetService{repo: repo}
}

// ── Ingestion ────────────────────────────────────────────────────────────────

func (s *sheetService) Ingest(ctx context.Context, fileName string, rows []map[string]any) (*dto.SheetResponse, error) {
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name required", apierror.ErrInvalidInput)
	}

	sheet := &model.ProfitSheet{
		FileName:   fileName,
		UploadedAt: time.Now().UTC(),
		Status:     "processed",
	}
	for i, raw := range rows {
		row := NormalizeRow(raw)
		row.Position = i + 1
		sheet.Rows = append(sheet.Rows, row)
	}
	applySummary(sheet, sheet.Rows)

	if err := s.repo.Create(ctx, sheet); err != nil {
		return nil, fmt.Errorf("%w: %v", apierror.ErrTransactionAborted, err)
	}
	return sheetToResponse(sheet, true), nil
}

func (s *sheetService) IngestWorkbook(ctx context.Context, fileName string, r io.Reader) (*dto.SheetResponse, error) {
	rows, err := ParseWorkbook(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierror.ErrInvalidInput, err)
	}
	return s.Ingest(ctx, fileName, rows)
}

// ── Queries ──────────────────────────────────────────────────────────────────

func (s *sheetService) GetSheet(ctx context.Context, id uuid.UUID) (*dto.SheetResponse, error) {
	sheet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s", apierror.ErrNotFound, id)
	}
	return sheetToResponse(sheet, true), nil
}

func (s *sheetService) ListSheets(ctx context.Context, filter dto.SheetFilter) (*dto.SheetListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sheets, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SheetResponse, 0, len(sheets))
	for i := range sheets {
		items = append(items, *sheetToResponse(&sheets[i], false))
	}
	return &dto.SheetListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Row mutations ────────────────────────────────────────────────────────────

func (s *sheetService) UpdateRow(ctx context.Context, sheetID, rowID uuid.UUID, patch dto.SheetRowPatch) (*dto.SheetResponse, error) {
	row, err := s.repo.FindRow(ctx, sheetID, rowID)
	if err != nil {
		return nil, fmt.Errorf("%w: row %s in sheet %s", apierror.ErrNotFound, rowID, sheetID)
	}

	applyPatch(row, patch)
	if err := s.repo.SaveRow(ctx, row); err != nil {
		return nil, err
	}
	return s.recompute(ctx, sheetID)
}

func (s *sheetService) DeleteRow(ctx context.Context, sheetID, rowID uuid.UUID) (*dto.SheetResponse, error) {
	if err := s.repo.DeleteRow(ctx, sheetID, rowID); err != nil {
		return nil, fmt.Errorf("%w: row %s in sheet %s", apierror.ErrNotFound, rowID, sheetID)
	}
	return s.recompute(ctx, sheetID)
}

func (s *sheetService) AppendRow(ctx context.Context, sheetID uuid.UUID, raw map[string]any) (*dto.SheetResponse, error) {
	if _, err := s.repo.FindByID(ctx, sheetID); err != nil {
		return nil, fmt.Errorf("%w: sheet %s", apierror.ErrNotFound, sheetID)
	}
	maxPos, err := s.repo.MaxPosition(ctx, sheetID)
	if err != nil {
		return nil, err
	}

	row := NormalizeRow(raw)
	row.SheetID = sheetID
	row.Position = maxPos + 1
	if err := s.repo.SaveRow(ctx, &row); err != nil {
		return nil, err
	}
	return s.recompute(ctx, sheetID)
}

// recompute re-derives every summary field from the full current row set and
// persists it. O(rows) per edit, by choice: full recomputation cannot drift.
func (s *sheetService) recompute(ctx context.Context, sheetID uuid.UUID) (*dto.SheetResponse, error) {
	sheet, err := s.repo.FindByID(ctx, sheetID)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s", apierror.ErrNotFound, sheetID)
	}
	applySummary(sheet, sheet.Rows)
	if err := s.repo.UpdateSummary(ctx, sheet); err != nil {
		return nil, err
	}
	return sheetToResponse(sheet, true), nil
}

// ── Summary math ─────────────────────────────────────────────────────────────

// applySummary recomputes record counts and the profit summary. Profit parses
// as decimal; a non-numeric value contributes zero to the sums but the row
// still counts. successRecords = rows with a non-blank order id.
func applySummary(sheet *model.ProfitSheet, rows []model.ProfitSheetRow) {
	total, success := 0, 0
	totalProfit, deliveredProfit, rpuProfit := decimal.Zero, decimal.Zero, decimal.Zero

	for i := range rows {
		row := &rows[i]
		total++
		if strings.TrimSpace(row.OrderID) != "" {
			success++
		}

		profit, ok := parseAmount(row.Profit)
		if !ok {
			continue
		}
		totalProfit = totalProfit.Add(profit)
		switch strings.ToLower(strings.TrimSpace(row.Status)) {
		case "delivered", "completed":
			deliveredProfit = deliveredProfit.Add(profit)
		case "rpu", "returned", "return", "rto":
			rpuProfit = rpuProfit.Add(profit)
		}
	}

	sheet.TotalRecords = total
	sheet.SuccessRecords = success
	sheet.ErrorRecords = total - success
	sheet.TotalProfit = totalProfit.Round(2)
	sheet.DeliveredProfit = deliveredProfit.Round(2)
	sheet.RPUProfit = rpuProfit.Round(2)
	sheet.NetProfit = deliveredProfit.Add(rpuProfit).Round(2)
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func applyPatch(row *model.ProfitSheetRow, patch dto.SheetRowPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&row.Month, patch.Month)
	set(&row.SerialNo, patch.SerialNo)
	set(&row.OrderDate, patch.OrderDate)
	set(&row.OrderID, patch.OrderID)
	set(&row.SKU, patch.SKU)
	set(&row.Quantity, patch.Quantity)
	set(&row.Status, patch.Status)
	set(&row.PaymentMode, patch.PaymentMode)
	set(&row.PaymentAmount, patch.PaymentAmount)
	set(&row.PurchasePrice, patch.PurchasePrice)
	set(&row.Profit, patch.Profit)
	set(&row.ReturnClaim, patch.ReturnClaim)
	set(&row.ClaimStatus, patch.ClaimStatus)
	set(&row.Remarks, patch.Remarks)
}

func sheetToResponse(sheet *model.ProfitSheet, includeRows bool) *dto.SheetResponse {
	resp := &dto.SheetResponse{
		ID:             sheet.ID.String(),
		FileName:       sheet.FileName,
		UploadedAt:     sheet.UploadedAt.UTC().Format(time.RFC3339),
		Status:         sheet.Status,
		TotalRecords:   sheet.TotalRecords,
		SuccessRecords: sheet.SuccessRecords,
		ErrorRecords:   sheet.ErrorRecords,
		ProfitSummary: dto.SheetProfitSummary{
			TotalProfit:     sheet.TotalProfit,
			DeliveredProfit: sheet.DeliveredProfit,
			RPUProfit:       sheet.RPUProfit,
			NetProfit:       sheet.NetProfit,
		},
	}
	if includeRows {
		resp.Rows = make([]dto.SheetRowResponse, 0, len(sheet.Rows))
		for _, row := range sheet.Rows {
			resp.Rows = append(resp.Rows, dto.SheetRowResponse{
				ID:            row.ID.String(),
				Position:      row.Position,
				Month:         row.Month,
				SerialNo:      row.SerialNo,
				OrderDate:     row.OrderDate,
				OrderID:       row.OrderID,
				SKU:           row.SKU,
				Quantity:      row.Quantity,
				Status:        row.Status,
				PaymentMode:   row.PaymentMode,
				PaymentAmount: row.PaymentAmount,
				PurchasePrice: row.PurchasePrice,
				Profit:        row.Profit,
				ReturnClaim:   row.ReturnClaim,
				ClaimStatus:   row.ClaimStatus,
				Remarks:       row.Remarks,
			})
		}
	}
	return resp
}
