package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/sdweddings/backend/internal/domain"
)

// Response bodies. Field names follow the JSON the Next.js site consumes.

type weddingRef struct {
	Names string `json:"names"`
	Slug  string `json:"slug"`
	Venue string `json:"venue,omitempty"`
}

type aggregatedVendor struct {
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	URL          string       `json:"url,omitempty"`
	WeddingCount int          `json:"weddingCount"`
	Weddings     []weddingRef `json:"weddings"`
}

type aggregatedVenue struct {
	Name         string       `json:"name"`
	URL          string       `json:"url,omitempty"`
	Location     string       `json:"location,omitempty"`
	WeddingCount int          `json:"weddingCount"`
	Weddings     []weddingRef `json:"weddings"`
}

type vendor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Website      string `json:"website,omitempty"`
	Preferred    bool   `json:"preferred"`
	Featured     bool   `json:"featured"`
	WeddingCount int    `json:"weddingCount"`
}

type categoryGroup struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Vendors  []vendor `json:"vendors"`
}

type venueMarker struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Location     string  `json:"location,omitempty"`
	Website      string  `json:"website,omitempty"`
	WeddingCount int     `json:"weddingCount"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

type vendorCredit struct {
	Name string `json:"name"`
	Role string `json:"role"`
	URL  string `json:"url,omitempty"`
}

type coupleView struct {
	Names         string              `json:"names"`
	Slug          string              `json:"slug"`
	WeddingDate   *openapi_types.Date `json:"weddingDate,omitempty"`
	Venue         string              `json:"venue,omitempty"`
	VenueURL      string              `json:"venueUrl,omitempty"`
	VenueLocation string              `json:"venueLocation,omitempty"`
	Vendors       []vendorCredit      `json:"vendors"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type coupleList struct {
	Data       []coupleView `json:"data"`
	Pagination pagination   `json:"pagination"`
}

func toWeddingRefs(in []domain.WeddingRef) []weddingRef {
	out := make([]weddingRef, 0, len(in))
	for _, w := range in {
		out = append(out, weddingRef{Names: w.Names, Slug: w.Slug, Venue: w.Venue})
	}
	return out
}

func toAggregatedVendors(in []domain.AggregatedVendor) []aggregatedVendor {
	out := make([]aggregatedVendor, 0, len(in))
	for _, v := range in {
		out = append(out, aggregatedVendor{
			Name:         v.Name,
			Role:         v.Role,
			URL:          v.URL,
			WeddingCount: len(v.Weddings),
			Weddings:     toWeddingRefs(v.Weddings),
		})
	}
	return out
}

func toAggregatedVenues(in []domain.AggregatedVenue) []aggregatedVenue {
	out := make([]aggregatedVenue, 0, len(in))
	for _, v := range in {
		out = append(out, aggregatedVenue{
			Name:         v.Name,
			URL:          v.URL,
			Location:     v.Location,
			WeddingCount: len(v.Weddings),
			Weddings:     toWeddingRefs(v.Weddings),
		})
	}
	return out
}

func toCategoryGroups(in []domain.CategoryGroup) []categoryGroup {
	out := make([]categoryGroup, 0, len(in))
	for _, g := range in {
		vendors := make([]vendor, 0, len(g.Vendors))
		for _, v := range g.Vendors {
			vendors = append(vendors, vendor{
				ID:           v.ID,
				Name:         v.Name,
				Slug:         v.Slug,
				Website:      v.Website,
				Preferred:    v.Preferred,
				Featured:     v.Featured,
				WeddingCount: v.WeddingCount,
			})
		}
		out = append(out, categoryGroup{Category: string(g.Category), Title: g.Title, Vendors: vendors})
	}
	return out
}

func toVenueMarkers(in []domain.VenueMarker) []venueMarker {
	out := make([]venueMarker, 0, len(in))
	for _, m := range in {
		out = append(out, venueMarker{
			Name:         m.Name,
			Slug:         m.Slug,
			Location:     m.Location,
			Website:      m.Website,
			WeddingCount: m.WeddingCount,
			Lat:          m.Coordinates.Lat,
			Lng:          m.Coordinates.Lng,
		})
	}
	return out
}

func toCoupleView(c domain.CoupleView) coupleView {
	out := coupleView{
		Names:         c.Names,
		Slug:          c.Slug,
		WeddingDate:   toDate(c.WeddingDate),
		Venue:         c.Venue,
		VenueURL:      c.VenueURL,
		VenueLocation: c.VenueLocation,
		Vendors:       make([]vendorCredit, 0, len(c.Vendors)),
	}
	for _, v := range c.Vendors {
		out.Vendors = append(out.Vendors, vendorCredit{Name: v.Name, Role: v.Role, URL: v.URL})
	}
	return out
}

// toDate drops the time of day; wedding dates are calendar dates.
func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: t.UTC()}
}
