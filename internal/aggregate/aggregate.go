// Package aggregate builds the render-time vendor and venue directories from
// couple records. Functions here are pure: missing or malformed entries are
// skipped, never reported, because they run on the page rendering path.
package aggregate

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/normalize"
)

// Key is the grouping key for display names: lower-cased and trimmed.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Vendors groups every couple->vendor credit by vendor name.
//
// Each distinct Key gets exactly one entry; its Weddings list keeps couple
// iteration order. The first credit fixes the display name and role; a later
// credit fills the URL if it is still unset. Output is ordered by wedding
// count descending, then name ascending (English collation).
func Vendors(couples []domain.CoupleView) []domain.AggregatedVendor {
	byKey := make(map[string]int)
	var out []domain.AggregatedVendor

	for _, c := range couples {
		wedding := weddingRef(c)
		for _, v := range c.Vendors {
			key := Key(v.Name)
			if key == "" {
				continue
			}
			url := strings.TrimSpace(v.URL)
			if i, ok := byKey[key]; ok {
				out[i].Weddings = append(out[i].Weddings, wedding)
				if out[i].URL == "" && url != "" {
					out[i].URL = url
				}
				continue
			}
			byKey[key] = len(out)
			out = append(out, domain.AggregatedVendor{
				Name:     strings.TrimSpace(v.Name),
				Role:     normalize.NormalizeRole(v.Role),
				URL:      url,
				Weddings: []domain.WeddingRef{wedding},
			})
		}
	}

	sortByWeddings(out, func(v domain.AggregatedVendor) (int, string) { return len(v.Weddings), v.Name })
	if out == nil {
		return []domain.AggregatedVendor{}
	}
	return out
}

// Venues groups couples by venue name with the same rules as Vendors.
// Location is backfilled like URL.
func Venues(couples []domain.CoupleView) []domain.AggregatedVenue {
	byKey := make(map[string]int)
	var out []domain.AggregatedVenue

	for _, c := range couples {
		key := Key(c.Venue)
		if key == "" {
			continue
		}
		wedding := weddingRef(c)
		url := strings.TrimSpace(c.VenueURL)
		loc := strings.TrimSpace(c.VenueLocation)
		if i, ok := byKey[key]; ok {
			out[i].Weddings = append(out[i].Weddings, wedding)
			if out[i].URL == "" && url != "" {
				out[i].URL = url
			}
			if out[i].Location == "" && loc != "" {
				out[i].Location = loc
			}
			continue
		}
		byKey[key] = len(out)
		out = append(out, domain.AggregatedVenue{
			Name:     strings.TrimSpace(c.Venue),
			URL:      url,
			Location: loc,
			Weddings: []domain.WeddingRef{wedding},
		})
	}

	sortByWeddings(out, func(v domain.AggregatedVenue) (int, string) { return len(v.Weddings), v.Name })
	if out == nil {
		return []domain.AggregatedVenue{}
	}
	return out
}

func weddingRef(c domain.CoupleView) domain.WeddingRef {
	return domain.WeddingRef{
		Names: strings.TrimSpace(c.Names),
		Slug:  c.Slug,
		Venue: strings.TrimSpace(c.Venue),
	}
}

// sortByWeddings orders items by count descending, then name ascending.
// A Collator is not safe for concurrent use, so each call builds its own.
func sortByWeddings[T any](items []T, fields func(T) (int, string)) {
	col := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		ci, ni := fields(items[i])
		cj, nj := fields(items[j])
		if ci != cj {
			return ci > cj
		}
		return col.CompareString(ni, nj) < 0
	})
}
