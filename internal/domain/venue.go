package domain

// Region is the coarse area a venue sits in, derived from its location text.
// The empty Region means no keyword matched.
type Region string

const (
	RegionLaJolla      Region = "la-jolla"
	RegionDowntown     Region = "downtown"
	RegionCoronado     Region = "coronado"
	RegionNorthCounty  Region = "north-county-coastal"
	RegionNorthInland  Region = "north-county-inland"
	RegionEastCounty   Region = "east-county"
	RegionSouthBay     Region = "south-bay"
	RegionTemecula     Region = "temecula-valley"
	RegionOrangeCounty Region = "orange-county"
	RegionDesert       Region = "desert"
)

// VenueType is derived from the venue name. The empty VenueType means no
// keyword matched.
type VenueType string

const (
	VenueTypeGolfCourse  VenueType = "golf-course"
	VenueTypeResort      VenueType = "resort"
	VenueTypeHotel       VenueType = "hotel"
	VenueTypeWinery      VenueType = "winery"
	VenueTypeEstate      VenueType = "estate"
	VenueTypeBeach       VenueType = "beach"
	VenueTypeGarden      VenueType = "garden"
	VenueTypeHistoric    VenueType = "historic"
	VenueTypePrivateClub VenueType = "private-club"
	VenueTypeOther       VenueType = "other"
)

// Venue is a canonical venue document. Dedup and count rules match Vendor.
type Venue struct {
	ID              string
	Name            string
	Slug            string
	Location        string
	Region          Region
	Type            VenueType
	Website         string
	PreferredVendor bool
	WeddingCount    int
	Featured        bool
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// VenueMarker is one pin on the venue map.
type VenueMarker struct {
	Name         string
	Slug         string
	Location     string
	Website      string
	WeddingCount int
	Coordinates  Coordinates
}
