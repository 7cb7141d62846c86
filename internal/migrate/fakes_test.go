package migrate_test

import (
	"context"
	"errors"
	"strings"

	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/migrate"
)

// memCMS is an in-memory stand-in for the CMS that implements every store a
// migration needs. It records writes so tests can assert on them.
type memCMS struct {
	vendors []domain.Vendor
	venues  []domain.Venue
	couples []domain.Couple

	creates    int
	patches    int
	increments int

	// createErr, when set, is returned by the Nth create (1-based).
	createErr   error
	createErrAt int
}

var (
	_ migrate.VendorStore = (*memVendors)(nil)
	_ migrate.VenueStore  = (*memVenues)(nil)
	_ migrate.CoupleStore = (*memCMS)(nil)
)

func (m *memCMS) writes() int { return m.creates + m.patches + m.increments }

func (m *memCMS) nextCreate() error {
	m.creates++
	if m.createErr != nil && m.creates == m.createErrAt {
		return m.createErr
	}
	return nil
}

// ---- couples ---------------------------------------------------------------

func (m *memCMS) ListWithLegacyVendors(context.Context) ([]domain.Couple, error) {
	var out []domain.Couple
	for _, c := range m.couples {
		if domain.NeedsVendorMigration(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCMS) ListWithLegacyVenue(context.Context) ([]domain.Couple, error) {
	var out []domain.Couple
	for _, c := range m.couples {
		if _, ok := c.Venue.(domain.LegacyVenue); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCMS) SetVendors(_ context.Context, id string, entries []domain.VendorEntry) error {
	m.patches++
	for i := range m.couples {
		if m.couples[i].ID == id {
			m.couples[i].Vendors = entries
			return nil
		}
	}
	return errors.New("couple not found: " + id)
}

func (m *memCMS) SetVenue(_ context.Context, id, venueID, legacyName string) error {
	m.patches++
	for i := range m.couples {
		if m.couples[i].ID == id {
			m.couples[i].Venue = domain.MigratedVenue{ID: venueID}
			m.couples[i].VenueName = legacyName
			return nil
		}
	}
	return errors.New("couple not found: " + id)
}

// ---- vendors ---------------------------------------------------------------

type memVendors struct{ *memCMS }

func (m memVendors) List(context.Context) ([]domain.Vendor, error) {
	return append([]domain.Vendor(nil), m.vendors...), nil
}

func (m memVendors) Create(_ context.Context, v domain.Vendor) (domain.Vendor, error) {
	if err := m.nextCreate(); err != nil {
		return domain.Vendor{}, err
	}
	m.vendors = append(m.vendors, v)
	return v, nil
}

func (m memVendors) IncrementWeddingCount(_ context.Context, id string, by int) error {
	m.increments++
	for i := range m.vendors {
		if m.vendors[i].ID == id {
			m.vendors[i].WeddingCount += by
			return nil
		}
	}
	return errors.New("vendor not found: " + id)
}

func (m *memCMS) vendorNamed(name string) (domain.Vendor, int) {
	var (
		found domain.Vendor
		n     int
	)
	for _, v := range m.vendors {
		if strings.EqualFold(strings.TrimSpace(v.Name), strings.TrimSpace(name)) {
			found = v
			n++
		}
	}
	return found, n
}

// vendorReferrers counts couples referencing id.
func (m *memCMS) vendorReferrers(id string) int {
	n := 0
	for _, c := range m.couples {
		for _, e := range c.Vendors {
			if ref, ok := e.(domain.VendorReference); ok && ref.ID == id {
				n++
				break
			}
		}
	}
	return n
}

// ---- venues ----------------------------------------------------------------

type memVenues struct{ *memCMS }

func (m memVenues) List(context.Context) ([]domain.Venue, error) {
	return append([]domain.Venue(nil), m.venues...), nil
}

func (m memVenues) Create(_ context.Context, v domain.Venue) (domain.Venue, error) {
	if err := m.nextCreate(); err != nil {
		return domain.Venue{}, err
	}
	m.venues = append(m.venues, v)
	return v, nil
}

func (m memVenues) IncrementWeddingCount(_ context.Context, id string, by int) error {
	m.increments++
	for i := range m.venues {
		if m.venues[i].ID == id {
			m.venues[i].WeddingCount += by
			return nil
		}
	}
	return errors.New("venue not found: " + id)
}

func (m *memCMS) venueReferrers(id string) int {
	n := 0
	for _, c := range m.couples {
		if ref, ok := c.Venue.(domain.MigratedVenue); ok && ref.ID == id {
			n++
		}
	}
	return n
}
