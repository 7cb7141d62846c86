package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/geo"
	"github.com/sdweddings/backend/internal/service"
)

var errCMS = errors.New("cms: 503 service unavailable")

// ---- helpers ---------------------------------------------------------------

func views() []domain.CoupleView {
	return []domain.CoupleView{
		{
			Names: "Sarah & James", Slug: "sarah-james",
			Venue: "Hotel del Coronado", VenueLocation: "Coronado",
			Vendors: []domain.VendorView{{Name: "Bloom Co", Role: "Florist"}},
		},
		{
			Names: "Mia & Leo", Slug: "mia-leo",
			Venue: "Grand Tradition Estate", VenueLocation: "Fallbrook",
			Vendors: []domain.VendorView{{Name: "bloom co", Role: "florals"}, {Name: "Spin DJs", Role: "DJ"}},
		},
		{
			Names: "Ava & Noah", Slug: "ava-noah",
			Venue: "Grand Tradition Estate", VenueLocation: "Fallbrook",
		},
	}
}

func couplesReturning(v []domain.CoupleView, err error) *mockCoupleRepo {
	return &mockCoupleRepo{
		listViews: func(context.Context) ([]domain.CoupleView, error) { return v, err },
	}
}

func newContentService(couples *mockCoupleRepo, vendors *mockVendorRepo, venues *mockVenueRepo, log *zap.Logger) *service.ContentService {
	if vendors == nil {
		vendors = &mockVendorRepo{}
	}
	if venues == nil {
		venues = &mockVenueRepo{}
	}
	return service.NewContentService(couples, vendors, venues, nil, log)
}

// ---- VendorDirectory -------------------------------------------------------

func TestContentService_VendorDirectory(t *testing.T) {
	svc := newContentService(couplesReturning(views(), nil), nil, nil, zap.NewNop())

	got, err := svc.VendorDirectory(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bloom Co", got[0].Name)
	assert.Len(t, got[0].Weddings, 2)
	assert.Equal(t, "Spin DJs", got[1].Name)
}

func TestContentService_VendorDirectory_CMSErrorYieldsEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	svc := newContentService(couplesReturning(nil, errCMS), nil, nil, zap.New(core))

	got, err := svc.VendorDirectory(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.Len())
}

// ---- VendorsByCategory -----------------------------------------------------

func TestContentService_VendorsByCategory(t *testing.T) {
	vendors := &mockVendorRepo{list: func(context.Context) ([]domain.Vendor, error) {
		return []domain.Vendor{
			{Name: "Spin DJs", Category: domain.CategoryDJMusic},
			{Name: "Bloom Co", Category: domain.CategoryFlorals},
		}, nil
	}}
	svc := newContentService(&mockCoupleRepo{}, vendors, nil, zap.NewNop())

	got, err := svc.VendorsByCategory(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.CategoryFlorals, got[0].Category)
}

func TestContentService_VendorsByCategory_CMSErrorYieldsEmpty(t *testing.T) {
	vendors := &mockVendorRepo{list: func(context.Context) ([]domain.Vendor, error) { return nil, errCMS }}
	svc := newContentService(&mockCoupleRepo{}, vendors, nil, zap.NewNop())

	got, err := svc.VendorsByCategory(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

// ---- Venues / VenueMap -----------------------------------------------------

func TestContentService_Venues(t *testing.T) {
	svc := newContentService(couplesReturning(views(), nil), nil, nil, zap.NewNop())

	got, err := svc.Venues(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Grand Tradition Estate", got[0].Name)
	assert.Len(t, got[0].Weddings, 2)
}

func TestContentService_VenueMap_MergesCanonicalAndLegacy(t *testing.T) {
	venues := &mockVenueRepo{list: func(context.Context) ([]domain.Venue, error) {
		return []domain.Venue{{
			Name: "Hotel del Coronado", Slug: "hotel-del-coronado",
			Location: "Coronado", WeddingCount: 5,
		}}, nil
	}}
	svc := newContentService(couplesReturning(views(), nil), nil, venues, zap.NewNop())

	got, err := svc.VenueMap(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)

	del := got[0]
	assert.Equal(t, "Hotel del Coronado", del.Name)
	assert.Equal(t, 5, del.WeddingCount, "canonical count wins over couple credits")
	assert.Equal(t, geo.Lookup("Coronado"), del.Coordinates)

	estate := got[1]
	assert.Equal(t, "Grand Tradition Estate", estate.Name)
	assert.Equal(t, "grand-tradition-estate", estate.Slug)
	assert.Equal(t, 2, estate.WeddingCount)
	assert.Equal(t, geo.Lookup("Fallbrook"), estate.Coordinates)
}

func TestContentService_VenueMap_UnknownLocationUsesDefault(t *testing.T) {
	venues := &mockVenueRepo{list: func(context.Context) ([]domain.Venue, error) {
		return []domain.Venue{{Name: "Secret Garden", Location: "somewhere nice"}}, nil
	}}
	svc := newContentService(couplesReturning(nil, nil), nil, venues, zap.NewNop())

	got, err := svc.VenueMap(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, geo.Builtin().Default(), got[0].Coordinates)
}

func TestContentService_VenueMap_CMSErrorYieldsEmpty(t *testing.T) {
	venues := &mockVenueRepo{list: func(context.Context) ([]domain.Venue, error) { return nil, errCMS }}
	svc := newContentService(couplesReturning(views(), nil), nil, venues, zap.NewNop())

	got, err := svc.VenueMap(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- couples ---------------------------------------------------------------

func TestContentService_ListCouples(t *testing.T) {
	var gotParams domain.PaginationParams
	couples := &mockCoupleRepo{
		listViewsPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.CoupleView, int64, error) {
			gotParams = p
			return views()[:1], 3, nil
		},
	}
	svc := newContentService(couples, nil, nil, zap.NewNop())
	page, limit := 2, 1

	got, total, err := svc.ListCouples(context.Background(), domain.NewPaginationParams(&page, &limit))

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, 1, gotParams.Offset())
}

func TestContentService_ListCouples_Error(t *testing.T) {
	couples := &mockCoupleRepo{
		listViewsPaged: func(context.Context, domain.PaginationParams) ([]domain.CoupleView, int64, error) {
			return nil, 0, errCMS
		},
	}
	svc := newContentService(couples, nil, nil, zap.NewNop())

	_, _, err := svc.ListCouples(context.Background(), domain.NewPaginationParams(nil, nil))

	assert.ErrorIs(t, err, errCMS)
}

func TestContentService_GetCouple(t *testing.T) {
	couples := &mockCoupleRepo{
		getViewBySlug: func(_ context.Context, slug string) (domain.CoupleView, error) {
			if slug == "sarah-james" {
				return views()[0], nil
			}
			return domain.CoupleView{}, domain.ErrNotFound
		},
	}
	svc := newContentService(couples, nil, nil, zap.NewNop())

	got, err := svc.GetCouple(context.Background(), " sarah-james ")
	require.NoError(t, err)
	assert.Equal(t, "Sarah & James", got.Names)

	_, err = svc.GetCouple(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetCouple(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
