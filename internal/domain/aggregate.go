package domain

// WeddingRef is one wedding credited to an aggregated vendor or venue.
type WeddingRef struct {
	Names string
	Slug  string
	Venue string
}

// AggregatedVendor is the display-time grouping of every couple that credits
// the same vendor name. It is derived on each request and never persisted.
type AggregatedVendor struct {
	Name     string
	Role     string
	URL      string
	Weddings []WeddingRef
}

// AggregatedVenue is the venue counterpart of AggregatedVendor.
type AggregatedVenue struct {
	Name     string
	URL      string
	Location string
	Weddings []WeddingRef
}

// VendorExportRow is a single row in the vendor directory export: one row per
// aggregated vendor with its credited weddings flattened into names.
type VendorExportRow struct {
	Name         string
	Role         string
	URL          string
	WeddingCount int

	// Weddings holds couple names in the order they were credited.
	// Callers that need a joined string (e.g. CSV) should join with "|".
	Weddings []string
}
