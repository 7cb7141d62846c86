package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/handler"
	"github.com/sdweddings/backend/internal/service"
)

// mockContentServicer is a test double for handler.ContentServicer.
// Set only the method fields your test needs.
type mockContentServicer struct {
	vendorDirectory   func(ctx context.Context) ([]domain.AggregatedVendor, error)
	vendorsByCategory func(ctx context.Context) ([]domain.CategoryGroup, error)
	venues            func(ctx context.Context) ([]domain.AggregatedVenue, error)
	venueMap          func(ctx context.Context) ([]domain.VenueMarker, error)
	listCouples       func(ctx context.Context, p domain.PaginationParams) ([]domain.CoupleView, int64, error)
	getCouple         func(ctx context.Context, slug string) (domain.CoupleView, error)
}

func (m *mockContentServicer) VendorDirectory(ctx context.Context) ([]domain.AggregatedVendor, error) {
	return m.vendorDirectory(ctx)
}
func (m *mockContentServicer) VendorsByCategory(ctx context.Context) ([]domain.CategoryGroup, error) {
	return m.vendorsByCategory(ctx)
}
func (m *mockContentServicer) Venues(ctx context.Context) ([]domain.AggregatedVenue, error) {
	return m.venues(ctx)
}
func (m *mockContentServicer) VenueMap(ctx context.Context) ([]domain.VenueMarker, error) {
	return m.venueMap(ctx)
}
func (m *mockContentServicer) ListCouples(ctx context.Context, p domain.PaginationParams) ([]domain.CoupleView, int64, error) {
	return m.listCouples(ctx, p)
}
func (m *mockContentServicer) GetCouple(ctx context.Context, slug string) (domain.CoupleView, error) {
	return m.getCouple(ctx, slug)
}

type mockContactServicer struct {
	submit func(ctx context.Context, form service.ContactForm) (domain.Inquiry, error)
}

func (m *mockContactServicer) Submit(ctx context.Context, form service.ContactForm) (domain.Inquiry, error) {
	return m.submit(ctx, form)
}

type mockExportServicer struct {
	vendorDirectory func(ctx context.Context) ([]domain.VendorExportRow, error)
}

func (m *mockExportServicer) VendorDirectory(ctx context.Context) ([]domain.VendorExportRow, error) {
	return m.vendorDirectory(ctx)
}

// compile-time checks.
var (
	_ handler.ContentServicer = (*mockContentServicer)(nil)
	_ handler.ContactServicer = (*mockContactServicer)(nil)
	_ handler.ExportServicer  = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// do sends one request through the server's router, the same router main.go mounts.
func do(t *testing.T, srv *handler.Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return decode[handler.ErrorResponse](t, rec).Error
}

func jsonBody(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

