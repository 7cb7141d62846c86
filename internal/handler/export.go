package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sdweddings/backend/internal/domain"
)

// exportHeaders are the column names of the CSV and XLSX exports.
var exportHeaders = []string{"name", "role", "url", "wedding_count", "weddings"}

// exportColumnWidths sizes the XLSX columns in exportHeaders order.
var exportColumnWidths = []float64{32, 22, 40, 14, 80}

const exportSheet = "Vendors"

type exportRow struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	URL          string   `json:"url,omitempty"`
	WeddingCount int      `json:"weddingCount"`
	Weddings     []string `json:"weddings"`
}

// GetVendorExport implements GET /export/vendors: the aggregated vendor
// directory as a flat table. Use ?format=csv or ?format=xlsx for a file
// download; the default is JSON.
func (s *Server) GetVendorExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format != "" && format != "json" && format != "csv" && format != "xlsx" {
		writeError(w, http.StatusBadRequest, "format must be one of json, csv, xlsx")
		return
	}

	rows, err := s.export.VendorDirectory(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="vendors.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buildCSV(rows))
	case "xlsx":
		data, err := buildXLSX(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="vendors.xlsx"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	default:
		out := make([]exportRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, exportRow{Name: r.Name, Role: r.Role, URL: r.URL, WeddingCount: r.WeddingCount, Weddings: r.Weddings})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// buildCSV encodes rows as CSV. Wedding names within a row are
// pipe-separated ("|") to keep each vendor on a single line.
func buildCSV(rows []domain.VendorExportRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(exportHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(exportRecord(r))
	}
	w.Flush()
	return buf.Bytes()
}

func exportRecord(r domain.VendorExportRow) []string {
	return []string{r.Name, r.Role, r.URL, strconv.Itoa(r.WeddingCount), strings.Join(r.Weddings, "|")}
}

// buildXLSX renders rows into a single-sheet workbook with a bold, frozen
// header row.
func buildXLSX(rows []domain.VendorExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F3E9E2"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: header style: %w", err)
	}

	for col, h := range exportHeaders {
		if err := setCell(f, col+1, 1, h); err != nil {
			return nil, err
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("handler.buildXLSX: %w", err)
		}
		if err := f.SetColWidth(exportSheet, name, name, exportColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("handler.buildXLSX: column width: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: apply header style: %w", err)
	}

	for i, r := range rows {
		row := i + 2
		values := []any{r.Name, r.Role, r.URL, r.WeddingCount, strings.Join(r.Weddings, ", ")}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("handler.buildXLSX: write: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("handler.setCell: %w", err)
	}
	if err := f.SetCellValue(exportSheet, cell, v); err != nil {
		return fmt.Errorf("handler.setCell %s: %w", cell, err)
	}
	return nil
}
