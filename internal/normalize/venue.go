package normalize

import (
	"strings"

	"github.com/sdweddings/backend/internal/domain"
)

type regionRule struct {
	keywords []string
	region   domain.Region
}

// regionRules is first-match-wins. South Bay precedes North County Inland so
// "Chula Vista" is not read as "Vista", and the generic "san diego" entry is
// last so a more specific neighbourhood always wins.
var regionRules = []regionRule{
	{keywords: []string{"la jolla"}, region: domain.RegionLaJolla},
	{keywords: []string{"coronado"}, region: domain.RegionCoronado},
	{keywords: []string{"del mar", "solana beach", "encinitas", "cardiff", "leucadia", "carlsbad", "oceanside", "rancho santa fe"}, region: domain.RegionNorthCounty},
	{keywords: []string{"chula vista", "bonita", "national city", "imperial beach", "otay"}, region: domain.RegionSouthBay},
	{keywords: []string{"escondido", "san marcos", "vista", "poway", "ramona", "valley center", "fallbrook", "pauma", "julian", "rancho bernardo"}, region: domain.RegionNorthInland},
	{keywords: []string{"el cajon", "la mesa", "santee", "alpine", "lakeside", "jamul"}, region: domain.RegionEastCounty},
	{keywords: []string{"temecula", "murrieta"}, region: domain.RegionTemecula},
	{keywords: []string{"laguna", "dana point", "newport", "san clemente", "capistrano", "irvine", "orange county"}, region: domain.RegionOrangeCounty},
	{keywords: []string{"palm springs", "palm desert", "la quinta", "indio", "borrego"}, region: domain.RegionDesert},
	{keywords: []string{"downtown", "gaslamp", "little italy", "point loma", "mission bay", "balboa", "old town", "san diego"}, region: domain.RegionDowntown},
}

type venueTypeRule struct {
	keywords  []string
	venueType domain.VenueType
}

// venueTypeRules is first-match-wins: "Golf Club" is a golf course before it
// is a private club, and "Beach Resort" is a resort before it is a beach.
var venueTypeRules = []venueTypeRule{
	{keywords: []string{"golf", "country club", "links"}, venueType: domain.VenueTypeGolfCourse},
	{keywords: []string{"winery", "vineyard", "wine", "cellars"}, venueType: domain.VenueTypeWinery},
	{keywords: []string{"resort"}, venueType: domain.VenueTypeResort},
	{keywords: []string{"hotel", " inn", "lodge", "hyatt", "hilton", "marriott", "westin", "sheraton", "fairmont"}, venueType: domain.VenueTypeHotel},
	{keywords: []string{"beach", "oceanfront", "shores", "cove"}, venueType: domain.VenueTypeBeach},
	{keywords: []string{"garden", "botanic", "arboretum"}, venueType: domain.VenueTypeGarden},
	{keywords: []string{"historic", "mission", "museum", "adobe"}, venueType: domain.VenueTypeHistoric},
	{keywords: []string{"estate", "ranch", "manor", "villa", "farm", "barn", "hacienda"}, venueType: domain.VenueTypeEstate},
	{keywords: []string{"club", "yacht", "society"}, venueType: domain.VenueTypePrivateClub},
}

// RegionFor derives a region from free-text location. It returns "" when no
// keyword matches.
func RegionFor(location string) domain.Region {
	lower := strings.ToLower(location)
	for _, r := range regionRules {
		if containsAny(lower, r.keywords) {
			return r.region
		}
	}
	return ""
}

// VenueTypeFor derives a venue type from the venue name. It returns "" when
// no keyword matches.
func VenueTypeFor(name string) domain.VenueType {
	// Leading space so " inn" matches a name that starts with "Inn".
	lower := " " + strings.ToLower(name)
	for _, r := range venueTypeRules {
		if containsAny(lower, r.keywords) {
			return r.venueType
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
