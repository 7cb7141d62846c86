package repo

import (
	"context"
	"fmt"

	"github.com/sdweddings/backend/internal/cms"
	"github.com/sdweddings/backend/internal/domain"
)

// CoupleRepo defines access to Couple documents. The CMS owns the couple
// schema; this backend only rewrites the vendor and venue fields.
type CoupleRepo interface {
	// ListViews returns every published couple with vendor and venue
	// references resolved, most recent wedding first.
	ListViews(ctx context.Context) ([]domain.CoupleView, error)

	// ListViewsPaged returns one page of couple views and the total count.
	ListViewsPaged(ctx context.Context, p domain.PaginationParams) ([]domain.CoupleView, int64, error)

	// GetViewBySlug returns a single couple view.
	// Returns domain.ErrNotFound if no couple has that slug.
	GetViewBySlug(ctx context.Context, slug string) (domain.CoupleView, error)

	// ListWithLegacyVendors returns couples with at least one inline vendor
	// entry, oldest first.
	ListWithLegacyVendors(ctx context.Context) ([]domain.Couple, error)

	// ListWithLegacyVenue returns couples whose venue is still a string,
	// oldest first.
	ListWithLegacyVenue(ctx context.Context) ([]domain.Couple, error)

	// SetVendors replaces the couple's whole vendors array.
	SetVendors(ctx context.Context, id string, entries []domain.VendorEntry) error

	// SetVenue points the couple's venue at venueID and records legacyName in
	// venueName.
	SetVenue(ctx context.Context, id, venueID, legacyName string) error
}

type cmsCoupleRepo struct {
	cms cms.Client
}

// NewCoupleRepo constructs a CoupleRepo backed by the CMS.
func NewCoupleRepo(c cms.Client) CoupleRepo {
	return &cmsCoupleRepo{cms: c}
}

const publishedCouples = `_type == "couple" && defined(slug.current) && ` + notDraft

// coupleViewProjection resolves references and falls back to the legacy
// inline values for couples that have not been migrated yet.
const coupleViewProjection = `{
	names,
	"slug": slug.current,
	weddingDate,
	"venue": coalesce(venue->name, venueName, venue),
	"venueUrl": coalesce(venue->website, venueUrl),
	"venueLocation": coalesce(venue->location, location),
	"vendors": vendors[]{
		"name": coalesce(@->name, name),
		"role": coalesce(role, @->category),
		"url": coalesce(@->website, url, website)
	}
}`

const coupleFields = `{
	_id,
	names,
	"slug": slug.current,
	weddingDate,
	venue,
	vendors,
	venueName,
	venueUrl,
	location,
	preferredVenueVendor
}`

func (r *cmsCoupleRepo) ListViews(ctx context.Context) ([]domain.CoupleView, error) {
	q := `*[` + publishedCouples + `] | order(weddingDate desc) ` + coupleViewProjection

	var docs []viewDoc
	if err := r.cms.Query(ctx, q, nil, &docs); err != nil {
		return nil, fmt.Errorf("repo.CoupleRepo.ListViews: %w", err)
	}
	return toViews(docs), nil
}

func (r *cmsCoupleRepo) ListViewsPaged(ctx context.Context, p domain.PaginationParams) ([]domain.CoupleView, int64, error) {
	q := fmt.Sprintf(`{
	"total": count(*[%s]),
	"items": *[%s] | order(weddingDate desc) [%d...%d] %s
}`, publishedCouples, publishedCouples, p.Offset(), p.End(), coupleViewProjection)

	var page struct {
		Total int64     `json:"total"`
		Items []viewDoc `json:"items"`
	}
	if err := r.cms.Query(ctx, q, nil, &page); err != nil {
		return nil, 0, fmt.Errorf("repo.CoupleRepo.ListViewsPaged: %w", err)
	}
	return toViews(page.Items), page.Total, nil
}

func (r *cmsCoupleRepo) GetViewBySlug(ctx context.Context, slug string) (domain.CoupleView, error) {
	q := `*[` + publishedCouples + ` && slug.current == $slug][0] ` + coupleViewProjection

	var doc *viewDoc
	if err := r.cms.Query(ctx, q, map[string]any{"slug": slug}, &doc); err != nil {
		return domain.CoupleView{}, fmt.Errorf("repo.CoupleRepo.GetViewBySlug: %w", err)
	}
	if doc == nil {
		return domain.CoupleView{}, fmt.Errorf("repo.CoupleRepo.GetViewBySlug: %w", domain.ErrNotFound)
	}
	return doc.toDomain(), nil
}

func (r *cmsCoupleRepo) ListWithLegacyVendors(ctx context.Context) ([]domain.Couple, error) {
	q := `*[_type == "couple" && ` + notDraft + ` && count(vendors[!defined(_ref)]) > 0] | order(_createdAt asc) ` + coupleFields

	couples, err := r.listCouples(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CoupleRepo.ListWithLegacyVendors: %w", err)
	}
	return couples, nil
}

func (r *cmsCoupleRepo) ListWithLegacyVenue(ctx context.Context) ([]domain.Couple, error) {
	q := `*[_type == "couple" && ` + notDraft + ` && defined(venue) && !defined(venue._ref)] | order(_createdAt asc) ` + coupleFields

	couples, err := r.listCouples(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CoupleRepo.ListWithLegacyVenue: %w", err)
	}
	return couples, nil
}

func (r *cmsCoupleRepo) listCouples(ctx context.Context, q string) ([]domain.Couple, error) {
	var docs []coupleDoc
	if err := r.cms.Query(ctx, q, nil, &docs); err != nil {
		return nil, err
	}
	couples := make([]domain.Couple, 0, len(docs))
	for _, d := range docs {
		couples = append(couples, d.toDomain())
	}
	return couples, nil
}

func (r *cmsCoupleRepo) SetVendors(ctx context.Context, id string, entries []domain.VendorEntry) error {
	err := r.cms.Patch(ctx, id, cms.Patch{
		Set: map[string]any{"vendors": encodeVendors(entries)},
	})
	if err != nil {
		return fmt.Errorf("repo.CoupleRepo.SetVendors: %w", err)
	}
	return nil
}

func (r *cmsCoupleRepo) SetVenue(ctx context.Context, id, venueID, legacyName string) error {
	err := r.cms.Patch(ctx, id, cms.Patch{
		Set: map[string]any{
			"venue":     cms.NewReference("", venueID),
			"venueName": legacyName,
		},
	})
	if err != nil {
		return fmt.Errorf("repo.CoupleRepo.SetVenue: %w", err)
	}
	return nil
}

func toViews(docs []viewDoc) []domain.CoupleView {
	views := make([]domain.CoupleView, 0, len(docs))
	for _, d := range docs {
		views = append(views, d.toDomain())
	}
	return views
}
