// Package handler implements the HTTP handlers for the wedding site API.
// All handlers are methods on Server. Methods are split into files by area
// (content.go, contact.go, export.go) but share the same Server struct.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/service"
)

// ContentServicer defines the read operations behind the directory pages.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the CMS or service layer.
type ContentServicer interface {
	VendorDirectory(ctx context.Context) ([]domain.AggregatedVendor, error)
	VendorsByCategory(ctx context.Context) ([]domain.CategoryGroup, error)
	Venues(ctx context.Context) ([]domain.AggregatedVenue, error)
	VenueMap(ctx context.Context) ([]domain.VenueMarker, error)
	ListCouples(ctx context.Context, p domain.PaginationParams) ([]domain.CoupleView, int64, error)
	GetCouple(ctx context.Context, slug string) (domain.CoupleView, error)
}

// ContactServicer accepts contact form submissions.
type ContactServicer interface {
	Submit(ctx context.Context, form service.ContactForm) (domain.Inquiry, error)
}

// ExportServicer produces the flat vendor directory export.
type ExportServicer interface {
	VendorDirectory(ctx context.Context) ([]domain.VendorExportRow, error)
}

// Server holds the handler dependencies. Any servicer may be nil; its routes
// are then not registered.
type Server struct {
	content ContentServicer
	contact ContactServicer
	export  ExportServicer
	openAPI []byte
}

// NewServer constructs the Server with all its dependencies.
func NewServer(content ContentServicer, contact ContactServicer, export ExportServicer, openAPI []byte) *Server {
	return &Server{content: content, contact: contact, export: export, openAPI: openAPI}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns the API router. Middleware is added by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	if s.openAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}
	if s.contact != nil {
		r.Post("/api/contact", s.PostContact)
	}
	if s.content != nil {
		r.Get("/vendors", s.GetVendors)
		r.Get("/vendors/categories", s.GetVendorCategories)
		r.Get("/venues", s.GetVenues)
		r.Get("/venues/map", s.GetVenueMap)
		r.Get("/couples", s.ListCouples)
		r.Get("/couples/{slug}", s.GetCouple)
	}
	if s.export != nil {
		r.Get("/export/vendors", s.GetVendorExport)
	}
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
