package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sdweddings/backend/internal/domain"
)

// GetVendors implements GET /vendors: the aggregated vendor directory.
func (s *Server) GetVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := s.content.VendorDirectory(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toAggregatedVendors(vendors))
}

// GetVendorCategories implements GET /vendors/categories.
func (s *Server) GetVendorCategories(w http.ResponseWriter, r *http.Request) {
	groups, err := s.content.VendorsByCategory(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toCategoryGroups(groups))
}

// GetVenues implements GET /venues.
func (s *Server) GetVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.content.Venues(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toAggregatedVenues(venues))
}

// GetVenueMap implements GET /venues/map.
func (s *Server) GetVenueMap(w http.ResponseWriter, r *http.Request) {
	markers, err := s.content.VenueMap(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toVenueMarkers(markers))
}

// ListCouples implements GET /couples?page=&limit=.
func (s *Server) ListCouples(w http.ResponseWriter, r *http.Request) {
	page, ok := optionalInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := optionalInt(w, r, "limit")
	if !ok {
		return
	}
	p := domain.NewPaginationParams(page, limit)

	couples, total, err := s.content.ListCouples(r.Context(), p)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}

	body := coupleList{
		Data: make([]coupleView, 0, len(couples)),
		Pagination: pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: int((total + int64(p.Limit) - 1) / int64(p.Limit)),
		},
	}
	for _, c := range couples {
		body.Data = append(body.Data, toCoupleView(c))
	}
	writeJSON(w, http.StatusOK, body)
}

// GetCouple implements GET /couples/{slug}.
func (s *Server) GetCouple(w http.ResponseWriter, r *http.Request) {
	c, err := s.content.GetCouple(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, err, "couple not found")
		return
	}
	writeJSON(w, http.StatusOK, toCoupleView(c))
}

// optionalInt parses an optional integer query parameter. On a malformed
// value it writes a 400 and returns ok=false.
func optionalInt(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, name+" must be an integer")
		return nil, false
	}
	return &n, true
}
