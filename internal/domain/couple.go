package domain

import (
	"strings"
	"time"
)

// VenueRef is the venue field of a Couple. It is either MigratedVenue (a
// reference to a canonical Venue document) or LegacyVenue (the free-text venue
// name written before venues became documents). A nil VenueRef means the
// couple has no venue recorded.
type VenueRef interface {
	isVenueRef()
}

// MigratedVenue points at a canonical Venue document by id.
type MigratedVenue struct {
	ID string
}

// LegacyVenue is a venue recorded as plain text on the couple.
type LegacyVenue struct {
	Name string
}

func (MigratedVenue) isVenueRef() {}
func (LegacyVenue) isVenueRef()   {}

// VendorEntry is one element of a Couple's vendor list: either a
// VendorReference or an inline LegacyVendor object.
type VendorEntry interface {
	// EntryKey is the CMS array item key. It is kept when an inline entry is
	// replaced by a reference so editors see a stable diff.
	EntryKey() string
}

// VendorReference points at a canonical Vendor document by id.
type VendorReference struct {
	Key string
	ID  string
}

// LegacyVendor is an inline vendor object embedded in a couple document.
type LegacyVendor struct {
	Key  string
	Name string
	Role string
	URL  string
}

func (r VendorReference) EntryKey() string { return r.Key }
func (v LegacyVendor) EntryKey() string    { return v.Key }

// Couple is a wedding portfolio record owned by the CMS.
//
// VenueName, VenueURL, Location and PreferredVenueVendor are legacy fields.
// Before the venue migration they describe the venue; afterwards they are a
// read-only historical record and Venue holds a MigratedVenue.
type Couple struct {
	ID                   string
	Names                string
	Slug                 string
	WeddingDate          *time.Time
	Venue                VenueRef
	Vendors              []VendorEntry
	VenueName            string
	VenueURL             string
	Location             string
	PreferredVenueVendor bool
}

// NeedsVendorMigration reports whether any vendor entry on c is still an
// inline object. Couples for which this is false are never touched by the
// vendor migration, which is what makes re-runs safe.
func NeedsVendorMigration(c Couple) bool {
	for _, e := range c.Vendors {
		if _, ok := e.(LegacyVendor); ok {
			return true
		}
	}
	return false
}

// NeedsVenueMigration reports whether c still stores its venue as text.
// A blank legacy name has nothing to migrate and reports false.
func NeedsVenueMigration(c Couple) bool {
	lv, ok := c.Venue.(LegacyVenue)
	return ok && strings.TrimSpace(lv.Name) != ""
}

// CoupleView is the render-time projection of a Couple with its vendor and
// venue references already resolved to display values.
type CoupleView struct {
	Names         string
	Slug          string
	WeddingDate   *time.Time
	Venue         string
	VenueURL      string
	VenueLocation string
	Vendors       []VendorView
}

// VendorView is one resolved vendor credit on a CoupleView.
type VendorView struct {
	Name string
	Role string
	URL  string
}
