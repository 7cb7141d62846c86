package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sdweddings/backend/internal/cms"
	"github.com/sdweddings/backend/internal/domain"
)

// VenueRepo defines the persistence operations for canonical Venue documents.
type VenueRepo interface {
	// List returns every published venue ordered by name.
	List(ctx context.Context) ([]domain.Venue, error)

	// Create stores a new venue and returns it with its CMS id. An empty
	// v.ID is filled with a new UUID. Returns domain.ErrValidation if the
	// document does not satisfy the venue schema.
	Create(ctx context.Context, v domain.Venue) (domain.Venue, error)

	// IncrementWeddingCount adds by to the venue's weddingCount.
	IncrementWeddingCount(ctx context.Context, id string, by int) error
}

type cmsVenueRepo struct {
	cms cms.Client
}

// NewVenueRepo constructs a VenueRepo backed by the CMS.
func NewVenueRepo(c cms.Client) VenueRepo {
	return &cmsVenueRepo{cms: c}
}

const venueFields = `{
	_id,
	name,
	"slug": slug.current,
	location,
	region,
	type,
	website,
	preferredVendor,
	weddingCount,
	featured
}`

func (r *cmsVenueRepo) List(ctx context.Context) ([]domain.Venue, error) {
	q := `*[_type == "venue" && ` + notDraft + `] | order(name asc) ` + venueFields

	var rows []venueRow
	if err := r.cms.Query(ctx, q, nil, &rows); err != nil {
		return nil, fmt.Errorf("repo.VenueRepo.List: %w", err)
	}
	venues := make([]domain.Venue, 0, len(rows))
	for _, row := range rows {
		venues = append(venues, row.toDomain())
	}
	return venues, nil
}

func (r *cmsVenueRepo) Create(ctx context.Context, v domain.Venue) (domain.Venue, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	doc := newVenueDoc(v)
	if err := validateDoc(doc); err != nil {
		return domain.Venue{}, fmt.Errorf("repo.VenueRepo.Create: %w", err)
	}

	id, err := r.cms.Create(ctx, doc)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("repo.VenueRepo.Create: %w", err)
	}
	v.ID = id
	return v, nil
}

// ValidateVenue reports whether v would be accepted by VenueRepo.Create.
// Failures wrap domain.ErrValidation.
func ValidateVenue(v domain.Venue) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return validateDoc(newVenueDoc(v))
}

func newVenueDoc(v domain.Venue) venueDoc {
	return venueDoc{
		ID:              v.ID,
		Type:            "venue",
		Name:            v.Name,
		Slug:            cms.NewSlug(v.Slug),
		Location:        v.Location,
		Region:          string(v.Region),
		VenueType:       string(v.Type),
		Website:         v.Website,
		PreferredVendor: v.PreferredVendor,
		WeddingCount:    v.WeddingCount,
		Featured:        v.Featured,
	}
}

func (r *cmsVenueRepo) IncrementWeddingCount(ctx context.Context, id string, by int) error {
	if err := incrementCount(ctx, r.cms, id, by); err != nil {
		return fmt.Errorf("repo.VenueRepo.IncrementWeddingCount: %w", err)
	}
	return nil
}
