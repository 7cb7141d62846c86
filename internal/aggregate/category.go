package aggregate

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sdweddings/backend/internal/domain"
)

// ByCategory groups canonical vendors under their category headings in
// domain.Categories order. Vendors with an unknown category land in "other".
// Within a group preferred vendors come first, then names ascending. Empty
// groups are omitted.
func ByCategory(vendors []domain.Vendor) []domain.CategoryGroup {
	grouped := make(map[domain.Category][]domain.Vendor)
	for _, v := range vendors {
		if Key(v.Name) == "" {
			continue
		}
		cat := v.Category
		if !cat.Valid() {
			cat = domain.CategoryOther
		}
		grouped[cat] = append(grouped[cat], v)
	}

	col := collate.New(language.English)
	groups := []domain.CategoryGroup{}
	for _, cat := range domain.Categories {
		vs := grouped[cat]
		if len(vs) == 0 {
			continue
		}
		sort.SliceStable(vs, func(i, j int) bool {
			if vs[i].Preferred != vs[j].Preferred {
				return vs[i].Preferred
			}
			return col.CompareString(vs[i].Name, vs[j].Name) < 0
		})
		groups = append(groups, domain.CategoryGroup{
			Category: cat,
			Title:    cat.Title(),
			Vendors:  vs,
		})
	}
	return groups
}
