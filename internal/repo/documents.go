package repo

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sdweddings/backend/internal/cms"
	"github.com/sdweddings/backend/internal/domain"
)

// vendorDoc is the CMS schema for a canonical vendor.
type vendorDoc struct {
	ID           string   `json:"_id" validate:"required"`
	Type         string   `json:"_type" validate:"eq=vendor"`
	Name         string   `json:"name" validate:"required,max=200"`
	Slug         cms.Slug `json:"slug"`
	Category     string   `json:"category" validate:"required,oneof=photography videography florals catering dj-music band hair-makeup officiant cake-desserts rentals lighting transportation invitations-stationery photo-booth other"`
	Website      string   `json:"website,omitempty" validate:"omitempty,url"`
	Preferred    bool     `json:"preferred"`
	WeddingCount int      `json:"weddingCount" validate:"gte=0"`
	Featured     bool     `json:"featured"`
}

// venueDoc is the CMS schema for a canonical venue.
type venueDoc struct {
	ID              string   `json:"_id" validate:"required"`
	Type            string   `json:"_type" validate:"eq=venue"`
	Name            string   `json:"name" validate:"required,max=200"`
	Slug            cms.Slug `json:"slug"`
	Location        string   `json:"location,omitempty" validate:"max=200"`
	Region          string   `json:"region,omitempty" validate:"omitempty,oneof=la-jolla downtown coronado north-county-coastal north-county-inland east-county south-bay temecula-valley orange-county desert"`
	VenueType       string   `json:"type,omitempty" validate:"omitempty,oneof=golf-course resort hotel winery estate beach garden historic private-club other"`
	Website         string   `json:"website,omitempty" validate:"omitempty,url"`
	PreferredVendor bool     `json:"preferredVendor"`
	WeddingCount    int      `json:"weddingCount" validate:"gte=0"`
	Featured        bool     `json:"featured"`
}

// vendorRow and venueRow are the read projections of the canonical documents.
type vendorRow struct {
	ID           string `json:"_id"`
	Name         text   `json:"name"`
	Slug         text   `json:"slug"`
	Category     text   `json:"category"`
	Website      text   `json:"website"`
	Preferred    bool   `json:"preferred"`
	WeddingCount int    `json:"weddingCount"`
	Featured     bool   `json:"featured"`
}

type venueRow struct {
	ID              string `json:"_id"`
	Name            text   `json:"name"`
	Slug            text   `json:"slug"`
	Location        text   `json:"location"`
	Region          text   `json:"region"`
	Type            text   `json:"type"`
	Website         text   `json:"website"`
	PreferredVendor bool   `json:"preferredVendor"`
	WeddingCount    int    `json:"weddingCount"`
	Featured        bool   `json:"featured"`
}

func (r vendorRow) toDomain() domain.Vendor {
	return domain.Vendor{
		ID:           r.ID,
		Name:         string(r.Name),
		Slug:         string(r.Slug),
		Category:     domain.Category(r.Category),
		Website:      string(r.Website),
		Preferred:    r.Preferred,
		WeddingCount: r.WeddingCount,
		Featured:     r.Featured,
	}
}

func (r venueRow) toDomain() domain.Venue {
	return domain.Venue{
		ID:              r.ID,
		Name:            string(r.Name),
		Slug:            string(r.Slug),
		Location:        string(r.Location),
		Region:          domain.Region(r.Region),
		Type:            domain.VenueType(r.Type),
		Website:         string(r.Website),
		PreferredVendor: r.PreferredVendor,
		WeddingCount:    r.WeddingCount,
		Featured:        r.Featured,
	}
}

// coupleDoc is a raw couple document. venue and vendors keep their raw JSON
// because their shape tells legacy and migrated values apart.
type coupleDoc struct {
	ID                   string          `json:"_id"`
	Names                text            `json:"names"`
	Slug                 text            `json:"slug"`
	WeddingDate          text            `json:"weddingDate"`
	Venue                json.RawMessage `json:"venue"`
	Vendors              json.RawMessage `json:"vendors"`
	VenueName            text            `json:"venueName"`
	VenueURL             text            `json:"venueUrl"`
	Location             text            `json:"location"`
	PreferredVenueVendor bool            `json:"preferredVenueVendor"`
}

func (d coupleDoc) toDomain() domain.Couple {
	return domain.Couple{
		ID:                   d.ID,
		Names:                string(d.Names),
		Slug:                 string(d.Slug),
		WeddingDate:          parseDate(string(d.WeddingDate)),
		Venue:                decodeVenue(d.Venue),
		Vendors:              decodeVendors(d.Vendors),
		VenueName:            string(d.VenueName),
		VenueURL:             string(d.VenueURL),
		Location:             string(d.Location),
		PreferredVenueVendor: d.PreferredVenueVendor,
	}
}

// decodeVenue reads the couple venue field: a JSON string is a legacy venue,
// an object with _ref is a migrated one, anything else is no venue.
func decodeVenue(raw json.RawMessage) domain.VenueRef {
	if isNull(raw) {
		return nil
	}
	var name string
	if json.Unmarshal(raw, &name) == nil {
		return domain.LegacyVenue{Name: name}
	}
	var ref cms.Reference
	if json.Unmarshal(raw, &ref) == nil && ref.Ref != "" {
		return domain.MigratedVenue{ID: ref.Ref}
	}
	return nil
}

// decodeVendors reads the couple vendors array. Items with _ref are
// references; objects without it and bare strings are legacy inline vendors.
// Items of any other shape are dropped.
func decodeVendors(raw json.RawMessage) []domain.VendorEntry {
	if isNull(raw) {
		return nil
	}
	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}

	entries := make([]domain.VendorEntry, 0, len(items))
	for _, item := range items {
		var name string
		if json.Unmarshal(item, &name) == nil {
			entries = append(entries, domain.LegacyVendor{Name: name})
			continue
		}
		var v struct {
			Key     string `json:"_key"`
			Ref     string `json:"_ref"`
			Name    text   `json:"name"`
			Role    text   `json:"role"`
			URL     text   `json:"url"`
			Website text   `json:"website"`
		}
		if json.Unmarshal(item, &v) != nil {
			continue
		}
		if v.Ref != "" {
			entries = append(entries, domain.VendorReference{Key: v.Key, ID: v.Ref})
			continue
		}
		url := string(v.URL)
		if url == "" {
			url = string(v.Website)
		}
		entries = append(entries, domain.LegacyVendor{
			Key:  v.Key,
			Name: string(v.Name),
			Role: string(v.Role),
			URL:  url,
		})
	}
	return entries
}

// inlineVendor is the CMS shape of an inline vendor credit.
type inlineVendor struct {
	Type string `json:"_type"`
	Key  string `json:"_key"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
	URL  string `json:"url,omitempty"`
}

// encodeVendors maps domain entries back to CMS array items. Entries without
// a key get a fresh one, since Sanity requires _key on object array items.
func encodeVendors(entries []domain.VendorEntry) []any {
	items := make([]any, 0, len(entries))
	for _, e := range entries {
		key := e.EntryKey()
		if key == "" {
			key = newKey()
		}
		switch v := e.(type) {
		case domain.VendorReference:
			items = append(items, cms.NewReference(key, v.ID))
		case domain.LegacyVendor:
			items = append(items, inlineVendor{Type: "vendorCredit", Key: key, Name: v.Name, Role: v.Role, URL: v.URL})
		}
	}
	return items
}

// viewDoc is the dereferenced couple projection used for rendering.
type viewDoc struct {
	Names         text             `json:"names"`
	Slug          text             `json:"slug"`
	WeddingDate   text             `json:"weddingDate"`
	Venue         text             `json:"venue"`
	VenueURL      text             `json:"venueUrl"`
	VenueLocation text             `json:"venueLocation"`
	Vendors       []vendorViewItem `json:"vendors"`
}

type vendorViewItem struct {
	Name text `json:"name"`
	Role text `json:"role"`
	URL  text `json:"url"`
}

func (d viewDoc) toDomain() domain.CoupleView {
	v := domain.CoupleView{
		Names:         string(d.Names),
		Slug:          string(d.Slug),
		WeddingDate:   parseDate(string(d.WeddingDate)),
		Venue:         string(d.Venue),
		VenueURL:      string(d.VenueURL),
		VenueLocation: string(d.VenueLocation),
	}
	for _, item := range d.Vendors {
		v.Vendors = append(v.Vendors, domain.VendorView{
			Name: string(item.Name),
			Role: string(item.Role),
			URL:  string(item.URL),
		})
	}
	return v
}

// text decodes a JSON string and treats any other JSON value as "".
// CMS documents are edited by hand and fields occasionally hold the wrong type.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	var s string
	if json.Unmarshal(b, &s) == nil {
		*t = text(s)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// parseDate accepts a Sanity date ("2006-01-02") or datetime (RFC 3339).
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// newKey returns a Sanity array item key.
func newKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
