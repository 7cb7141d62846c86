package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSlugLength matches the CMS slug field's default maxLength.
const maxSlugLength = 96

// foldAccents strips combining marks, e.g. "Café Flórès" -> "Cafe Flores".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NameKey returns the dedup key for a vendor or venue name: accents folded,
// lower-cased, with every non-alphanumeric rune removed.
// "Ashley Paige Photography" and " ashley-paige photography " share a key.
func NameKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(foldAccents(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slugify converts a display name to a URL-safe slug.
//
// Accents are folded, letters are lower-cased, and every run of other
// characters becomes a single hyphen. Leading and trailing hyphens are
// dropped and the result is cut to 96 runes.
//
//	Slugify("Ashley Paige Photography") // "ashley-paige-photography"
//	Slugify("Café & Co.")               // "cafe-co"
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	n := 0
	for _, r := range strings.ToLower(foldAccents(name)) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingHyphen = true
			continue
		}
		hyphen := pendingHyphen && n > 0
		need := 1
		if hyphen {
			need = 2
		}
		if n+need > maxSlugLength {
			break
		}
		if hyphen {
			b.WriteByte('-')
		}
		b.WriteRune(r)
		n += need
		pendingHyphen = false
	}
	return b.String()
}
