// Package normalize maps free-text CMS values onto canonical forms: vendor
// roles onto category tags, names onto dedup keys and slugs, venue locations
// and names onto region and type tags.
//
// Every function here is pure and safe for concurrent use.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sdweddings/backend/internal/domain"
)

// roleRule maps any of its keywords (substring match on the lower-cased role)
// or word prefixes (must start a word) to a category and display label.
type roleRule struct {
	keywords []string
	prefixes []string
	category domain.Category
	label    string
}

// roleRules is checked top to bottom and the first match wins, so order is
// part of the contract:
//   - "booth" precedes "photo" so "Photo Booth" is not photography.
//   - "video"/"film" precede "photo" so "Photo & Film" is videography.
//   - "band" precedes "music" so "Live Band Music" is a band.
//   - "cake" precedes "cater".
//   - "hair" must start a word, so "Chair Rentals" is not hair and makeup.
var roleRules = []roleRule{
	{keywords: []string{"booth"}, category: domain.CategoryPhotoBooth, label: "Photo Booth Rentals"},
	{keywords: []string{"video", "film", "cinema"}, category: domain.CategoryVideography, label: "Videography"},
	{keywords: []string{"photo"}, category: domain.CategoryPhotography, label: "Photography"},
	{keywords: []string{"flor", "flower", "bloom"}, category: domain.CategoryFlorals, label: "Florals"},
	{keywords: []string{"cake", "dessert", "bakery", "pastry", "sweet"}, category: domain.CategoryCakeDesserts, label: "Cake & Desserts"},
	{keywords: []string{"cater", "food", "chef"}, category: domain.CategoryCatering, label: "Catering"},
	{keywords: []string{"band", "orchestra", "quartet", "ensemble"}, category: domain.CategoryBand, label: "Live Band"},
	{keywords: []string{"dj", "music", "entertainment"}, category: domain.CategoryDJMusic, label: "DJ & Music"},
	{keywords: []string{"makeup", "make-up", "beauty", "salon"}, prefixes: []string{"hair"}, category: domain.CategoryHairMakeup, label: "Hair & Makeup"},
	{keywords: []string{"officiant", "minister", "pastor", "celebrant"}, category: domain.CategoryOfficiant, label: "Officiant"},
	{keywords: []string{"invitation", "stationer", "calligraph", "paper"}, category: domain.CategoryStationery, label: "Invitations & Stationery"},
	{keywords: []string{"light"}, category: domain.CategoryLighting, label: "Lighting"},
	{keywords: []string{"rental", "linen", "decor", "furniture", "chair"}, category: domain.CategoryRentals, label: "Rentals"},
	{keywords: []string{"transport", "limo", "shuttle", "trolley", "coach"}, category: domain.CategoryTransport, label: "Transportation"},
}

// matchRole returns the first rule whose keyword or word prefix occurs in role.
func matchRole(role string) (roleRule, bool) {
	lower := strings.ToLower(role)
	for _, r := range roleRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r, true
			}
		}
		for _, p := range r.prefixes {
			if hasWordPrefix(lower, p) {
				return r, true
			}
		}
	}
	return roleRule{}, false
}

// hasWordPrefix reports whether some word of s starts with prefix. A word
// starts at the beginning of s or after a rune that is not a letter or digit.
func hasWordPrefix(s, prefix string) bool {
	for i := 0; i+len(prefix) <= len(s); {
		j := strings.Index(s[i:], prefix)
		if j < 0 {
			return false
		}
		at := i + j
		if at == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:at])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return true
		}
		i = at + 1
	}
	return false
}

// NormalizeRole returns the display label for a free-text vendor role, e.g.
// "florist" -> "Florals", "DJ/Music" -> "DJ & Music". Unmatched roles are
// returned trimmed with the first letter upper-cased; "" stays "".
func NormalizeRole(role string) string {
	if r, ok := matchRole(role); ok {
		return r.label
	}
	return capitalize(strings.TrimSpace(role))
}

// CategoryForRole returns the category tag for a free-text vendor role,
// falling back to domain.CategoryOther.
func CategoryForRole(role string) domain.Category {
	if r, ok := matchRole(role); ok {
		return r.category
	}
	return domain.CategoryOther
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
