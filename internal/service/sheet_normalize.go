package service

// sheet_normalize.go
// Pure normalization for externally produced spreadsheets: human-chosen
// column headers (inconsistent casing/spacing) are mapped onto the canonical
// row schema through a fixed alias table, and date cells arrive as native
// dates, Excel serials, or free text. Everything here is stateless and safe
// to run per row in parallel.

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/model"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

// headerAliases maps each canonical row field to the accepted header variants,
// in priority order. Matching happens on normalized keys (lower-cased,
// punctuation stripped, spaces collapsed). An unmatched field stays "".
var headerAliases = map[string][]string{
	"month":          {"month"},
	"serial_no":      {"s no", "sno", "serial no", "sl no", "sr no", "serial"},
	"order_date":     {"order date", "orderdate", "date"},
	"order_id":       {"order id", "orderid", "order no", "order number", "suborder no"},
	"sku":            {"sku", "sku id", "product", "item", "style id"},
	"quantity":       {"quantity", "qty", "pcs", "units"},
	"status":         {"status", "order status", "delivery status"},
	"payment_mode":   {"payment mode", "mode of payment", "payment type"},
	"payment_amount": {"payment received", "settlement amount", "amount received", "payment"},
	"purchase_price": {"purchase price", "cost price", "cost", "purchase"},
	"profit":         {"profit", "net profit", "margin"},
	"return_claim":   {"return claim", "claim", "return", "rto rpu"},
	"claim_status":   {"claim status", "claim state"},
	"remarks":        {"remarks", "notes", "comments", "comment"},
}

// normalizeHeaderKey folds a raw column header into its canonical matching
// form: lower case, punctuation turned into spaces, runs of spaces collapsed.
func normalizeHeaderKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	replacer := strings.NewReplacer(".", " ", "_", " ", "-", " ", "/", " ")
	key = replacer.Replace(key)
	return strings.Join(strings.Fields(key), " ")
}

// NormalizeRow maps an arbitrary-keyed record onto the canonical sheet row.
// It never fails: unmatched fields default to "".
func NormalizeRow(raw map[string]any) model.ProfitSheetRow {
	normalized := make(map[string]any, len(raw))
	for k, v := range raw {
		normalized[normalizeHeaderKey(k)] = v
	}

	pick := func(field string) string {
		for _, alias := range headerAliases[field] {
			if v, ok := normalized[alias]; ok {
				return cellToString(v)
			}
		}
		return ""
	}

	row := model.ProfitSheetRow{
		Month:         pick("month"),
		SerialNo:      pick("serial_no"),
		OrderID:       pick("order_id"),
		SKU:           pick("sku"),
		Quantity:      pick("quantity"),
		Status:        pick("status"),
		PaymentMode:   pick("payment_mode"),
		PaymentAmount: pick("payment_amount"),
		PurchasePrice: pick("purchase_price"),
		Profit:        pick("profit"),
		ReturnClaim:   pick("return_claim"),
		ClaimStatus:   pick("claim_status"),
		Remarks:       pick("remarks"),
	}

	// Order date goes through date normalization on the raw cell so numeric
	// serials survive.
	for _, alias := range headerAliases["order_date"] {
		if v, ok := normalized[alias]; ok {
			row.OrderDate = NormalizeDate(v)
			break
		}
	}
	return row
}

// excelEpoch is the 1899-12-30 serial-date convention used by spreadsheets.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// NormalizeDate accepts a native date, a spreadsheet numeric serial, or a
// free-text date string and returns ISO YYYY-MM-DD. Unparseable input comes
// back unchanged.
func NormalizeDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format("2006-01-02")
	case float64:
		return serialToISO(v)
	case float32:
		return serialToISO(float64(v))
	case int:
		return serialToISO(float64(v))
	case int64:
		return serialToISO(float64(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return v
		}
		// A bare number in a date column is a serial that excelize (or the
		// JSON layer) delivered as text.
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return serialToISO(serial)
		}
		if t, err := dateparse.ParseAny(s); err == nil {
			return t.Format("2006-01-02")
		}
		return v
	default:
		if value == nil {
			return ""
		}
		return cellToString(value)
	}
}

func serialToISO(serial float64) string {
	days := int(serial)
	return excelEpoch.AddDate(0, 0, days).Format("2006-01-02")
}

func cellToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// ParseWorkbook extracts the first worksheet of an .xlsx upload into raw
// records keyed by the original header row. Normalization happens later in
// NormalizeRow; this only flattens the grid.
func ParseWorkbook(r io.Reader) ([]map[string]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return []map[string]any{}, nil
	}

	headers := rows[0]
	records := make([]map[string]any, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		record := make(map[string]any, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if val != "" {
				empty = false
			}
			record[h] = val
		}
		if !empty {
			records = append(records, record)
		}
	}
	return records, nil
}
