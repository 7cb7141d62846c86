package handler_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/handler"
)

func exportRows() []domain.VendorExportRow {
	return []domain.VendorExportRow{
		{Name: "Bloom Co", Role: "Florals", URL: "https://bloom.example.com", WeddingCount: 2, Weddings: []string{"Sarah & James", "Mia & Leo"}},
		{Name: "Spin DJs", Role: "DJ & Music", WeddingCount: 1, Weddings: []string{"Mia & Leo"}},
	}
}

func exportServer(rows []domain.VendorExportRow, err error) *handler.Server {
	return handler.NewServer(nil, nil, &mockExportServicer{
		vendorDirectory: func(context.Context) ([]domain.VendorExportRow, error) { return rows, err },
	}, nil)
}

// ---- GET /export/vendors ---------------------------------------------------

func TestGetVendorExport_JSONDefault(t *testing.T) {
	rec := do(t, exportServer(exportRows(), nil), http.MethodGet, "/export/vendors", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]map[string]any](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, "Bloom Co", got[0]["name"])
	assert.EqualValues(t, 2, got[0]["weddingCount"])
	assert.NotContains(t, got[1], "url")
}

func TestGetVendorExport_CSV(t *testing.T) {
	rec := do(t, exportServer(exportRows(), nil), http.MethodGet, "/export/vendors?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "vendors.csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "role", "url", "wedding_count", "weddings"}, records[0])
	assert.Equal(t, []string{"Bloom Co", "Florals", "https://bloom.example.com", "2", "Sarah & James|Mia & Leo"}, records[1])
}

func TestGetVendorExport_XLSX(t *testing.T) {
	rec := do(t, exportServer(exportRows(), nil), http.MethodGet, "/export/vendors?format=XLSX", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "vendors.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Vendors")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "name", rows[0][0])
	assert.Equal(t, "Spin DJs", rows[2][0])
	assert.Equal(t, "Sarah & James, Mia & Leo", rows[1][4])
}

func TestGetVendorExport_UnknownFormat(t *testing.T) {
	rec := do(t, exportServer(nil, nil), http.MethodGet, "/export/vendors?format=pdf", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "format must be one of json, csv, xlsx", errorMessage(t, rec))
}

func TestGetVendorExport_ServiceError(t *testing.T) {
	rec := do(t, exportServer(nil, errors.New("cms down")), http.MethodGet, "/export/vendors?format=csv", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetVendorExport_EmptyCSVHasHeader(t *testing.T) {
	rec := do(t, exportServer(nil, nil), http.MethodGet, "/export/vendors?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "name,role,url,wedding_count,weddings\n", rec.Body.String())
}
