// Package service contains the business logic for the wedding site API.
// Services validate inputs, apply display rules and orchestrate repo calls.
// No CMS queries or SQL live here; services depend on repo interfaces.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sdweddings/backend/internal/aggregate"
	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/geo"
	"github.com/sdweddings/backend/internal/normalize"
	"github.com/sdweddings/backend/internal/repo"
)

// ContentService serves the read-only directory pages.
//
// The directory and map operations sit on the page rendering path: a CMS
// failure is logged and yields an empty result instead of an error.
type ContentService struct {
	couples repo.CoupleRepo
	vendors repo.VendorRepo
	venues  repo.VenueRepo
	places  *geo.Table
	log     *zap.Logger
}

// NewContentService constructs a ContentService. A nil places table means
// the built-in geocode table.
func NewContentService(couples repo.CoupleRepo, vendors repo.VendorRepo, venues repo.VenueRepo, places *geo.Table, log *zap.Logger) *ContentService {
	if places == nil {
		places = geo.Builtin()
	}
	return &ContentService{couples: couples, vendors: vendors, venues: venues, places: places, log: log}
}

// VendorDirectory aggregates vendor credits across every couple.
func (s *ContentService) VendorDirectory(ctx context.Context) ([]domain.AggregatedVendor, error) {
	views, err := s.couples.ListViews(ctx)
	if err != nil {
		s.log.Error("vendor directory: list couples", zap.Error(err))
		return []domain.AggregatedVendor{}, nil
	}
	return aggregate.Vendors(views), nil
}

// VendorsByCategory groups canonical vendor documents under category headings.
func (s *ContentService) VendorsByCategory(ctx context.Context) ([]domain.CategoryGroup, error) {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		s.log.Error("vendor categories: list vendors", zap.Error(err))
		return []domain.CategoryGroup{}, nil
	}
	return aggregate.ByCategory(vendors), nil
}

// Venues aggregates couples by venue.
func (s *ContentService) Venues(ctx context.Context) ([]domain.AggregatedVenue, error) {
	views, err := s.couples.ListViews(ctx)
	if err != nil {
		s.log.Error("venues: list couples", zap.Error(err))
		return []domain.AggregatedVenue{}, nil
	}
	return aggregate.Venues(views), nil
}

// VenueMap returns one marker per venue, canonical documents first.
// Venues that only exist as legacy text on couples still get a marker so
// the map is complete before the venue migration has run. Counts come from
// the venue document when there is one, otherwise from the couple credits.
func (s *ContentService) VenueMap(ctx context.Context) ([]domain.VenueMarker, error) {
	var (
		venues []domain.Venue
		views  []domain.CoupleView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		venues, err = s.venues.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		views, err = s.couples.ListViews(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("venue map: load venues", zap.Error(err))
		return []domain.VenueMarker{}, nil
	}

	markers := make([]domain.VenueMarker, 0, len(venues))
	seen := make(map[string]bool, len(venues))
	for _, v := range venues {
		key := normalize.NameKey(v.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		markers = append(markers, domain.VenueMarker{
			Name:         strings.TrimSpace(v.Name),
			Slug:         v.Slug,
			Location:     v.Location,
			Website:      v.Website,
			WeddingCount: v.WeddingCount,
			Coordinates:  s.places.Lookup(v.Location),
		})
	}
	for _, a := range aggregate.Venues(views) {
		key := normalize.NameKey(a.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		markers = append(markers, domain.VenueMarker{
			Name:         a.Name,
			Slug:         normalize.Slugify(a.Name),
			Location:     a.Location,
			Website:      a.URL,
			WeddingCount: len(a.Weddings),
			Coordinates:  s.places.Lookup(a.Location),
		})
	}

	col := collate.New(language.English)
	sort.SliceStable(markers, func(i, j int) bool {
		if markers[i].WeddingCount != markers[j].WeddingCount {
			return markers[i].WeddingCount > markers[j].WeddingCount
		}
		return col.CompareString(markers[i].Name, markers[j].Name) < 0
	})
	return markers, nil
}

// ListCouples returns one page of couple portfolios and the total count.
func (s *ContentService) ListCouples(ctx context.Context, p domain.PaginationParams) ([]domain.CoupleView, int64, error) {
	views, total, err := s.couples.ListViewsPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ContentService.ListCouples: %w", err)
	}
	return views, total, nil
}

// GetCouple returns the couple portfolio with the given slug.
// Returns domain.ErrNotFound if there is none.
func (s *ContentService) GetCouple(ctx context.Context, slug string) (domain.CoupleView, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.CoupleView{}, fmt.Errorf("service.ContentService.GetCouple: %w: slug is required", domain.ErrValidation)
	}
	view, err := s.couples.GetViewBySlug(ctx, slug)
	if err != nil {
		return domain.CoupleView{}, fmt.Errorf("service.ContentService.GetCouple: %w", err)
	}
	return view, nil
}
