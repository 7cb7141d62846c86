// Package domain contains the core data types for the wedding site backend.
// It has no dependencies on the CMS, database or HTTP layers and is imported by
// every other internal package.
package domain

// Category is the canonical vendor category tag stored on Vendor documents.
type Category string

const (
	CategoryPhotography  Category = "photography"
	CategoryVideography  Category = "videography"
	CategoryFlorals      Category = "florals"
	CategoryCatering     Category = "catering"
	CategoryDJMusic      Category = "dj-music"
	CategoryBand         Category = "band"
	CategoryHairMakeup   Category = "hair-makeup"
	CategoryOfficiant    Category = "officiant"
	CategoryCakeDesserts Category = "cake-desserts"
	CategoryRentals      Category = "rentals"
	CategoryLighting     Category = "lighting"
	CategoryTransport    Category = "transportation"
	CategoryStationery   Category = "invitations-stationery"
	CategoryPhotoBooth   Category = "photo-booth"
	CategoryOther        Category = "other"
)

// Categories lists every category in display order. Directory pages group
// vendors in this order.
var Categories = []Category{
	CategoryPhotography,
	CategoryVideography,
	CategoryFlorals,
	CategoryCatering,
	CategoryDJMusic,
	CategoryBand,
	CategoryHairMakeup,
	CategoryOfficiant,
	CategoryCakeDesserts,
	CategoryRentals,
	CategoryLighting,
	CategoryTransport,
	CategoryStationery,
	CategoryPhotoBooth,
	CategoryOther,
}

var categoryTitles = map[Category]string{
	CategoryPhotography:  "Photography",
	CategoryVideography:  "Videography",
	CategoryFlorals:      "Florals",
	CategoryCatering:     "Catering",
	CategoryDJMusic:      "DJ & Music",
	CategoryBand:         "Live Band",
	CategoryHairMakeup:   "Hair & Makeup",
	CategoryOfficiant:    "Officiant",
	CategoryCakeDesserts: "Cake & Desserts",
	CategoryRentals:      "Rentals",
	CategoryLighting:     "Lighting",
	CategoryTransport:    "Transportation",
	CategoryStationery:   "Invitations & Stationery",
	CategoryPhotoBooth:   "Photo Booth",
	CategoryOther:        "Other",
}

// Valid reports whether c is one of the known category tags.
func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

// Title returns the human-readable heading for c. Unknown tags fall back to "Other".
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return categoryTitles[CategoryOther]
}

// Vendor is a canonical vendor document.
// Identity is the normalized name key (see normalize.NameKey); no two vendor
// documents may share a key. WeddingCount equals the number of distinct couples
// referencing the vendor.
type Vendor struct {
	ID           string
	Name         string
	Slug         string
	Category     Category
	Website      string
	Preferred    bool
	WeddingCount int
	Featured     bool
}

// CategoryGroup is one heading on the vendor directory page.
type CategoryGroup struct {
	Category Category
	Title    string
	Vendors  []Vendor
}
