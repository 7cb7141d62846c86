package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sdweddings/backend/internal/cms"
	"github.com/sdweddings/backend/internal/domain"
)

// VendorRepo defines the persistence operations for canonical Vendor documents.
type VendorRepo interface {
	// List returns every published vendor ordered by name.
	List(ctx context.Context) ([]domain.Vendor, error)

	// Create stores a new vendor and returns it with its CMS id. An empty
	// v.ID is filled with a new UUID. Returns domain.ErrValidation if the
	// document does not satisfy the vendor schema.
	Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error)

	// IncrementWeddingCount adds by to the vendor's weddingCount.
	IncrementWeddingCount(ctx context.Context, id string, by int) error
}

type cmsVendorRepo struct {
	cms cms.Client
}

// NewVendorRepo constructs a VendorRepo backed by the CMS.
func NewVendorRepo(c cms.Client) VendorRepo {
	return &cmsVendorRepo{cms: c}
}

const vendorFields = `{
	_id,
	name,
	"slug": slug.current,
	category,
	website,
	preferred,
	weddingCount,
	featured
}`

func (r *cmsVendorRepo) List(ctx context.Context) ([]domain.Vendor, error) {
	q := `*[_type == "vendor" && ` + notDraft + `] | order(name asc) ` + vendorFields

	var rows []vendorRow
	if err := r.cms.Query(ctx, q, nil, &rows); err != nil {
		return nil, fmt.Errorf("repo.VendorRepo.List: %w", err)
	}
	vendors := make([]domain.Vendor, 0, len(rows))
	for _, row := range rows {
		vendors = append(vendors, row.toDomain())
	}
	return vendors, nil
}

func (r *cmsVendorRepo) Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	doc := newVendorDoc(v)
	if err := validateDoc(doc); err != nil {
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Create: %w", err)
	}

	id, err := r.cms.Create(ctx, doc)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("repo.VendorRepo.Create: %w", err)
	}
	v.ID = id
	return v, nil
}

// ValidateVendor reports whether v would be accepted by VendorRepo.Create.
// Failures wrap domain.ErrValidation.
func ValidateVendor(v domain.Vendor) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return validateDoc(newVendorDoc(v))
}

func newVendorDoc(v domain.Vendor) vendorDoc {
	return vendorDoc{
		ID:           v.ID,
		Type:         "vendor",
		Name:         v.Name,
		Slug:         cms.NewSlug(v.Slug),
		Category:     string(v.Category),
		Website:      v.Website,
		Preferred:    v.Preferred,
		WeddingCount: v.WeddingCount,
		Featured:     v.Featured,
	}
}

func (r *cmsVendorRepo) IncrementWeddingCount(ctx context.Context, id string, by int) error {
	if err := incrementCount(ctx, r.cms, id, by); err != nil {
		return fmt.Errorf("repo.VendorRepo.IncrementWeddingCount: %w", err)
	}
	return nil
}

// incrementCount bumps weddingCount on any canonical document, seeding the
// field for documents an editor created without it.
func incrementCount(ctx context.Context, c cms.Client, id string, by int) error {
	if by == 0 {
		return nil
	}
	return c.Patch(ctx, id, cms.Patch{
		SetIfMissing: map[string]any{"weddingCount": 0},
		Inc:          map[string]int{"weddingCount": by},
	})
}
