// Package geo maps free-text venue locations to map coordinates using a
// static table of known places. It never fails: anything it cannot place
// lands on the default city.
package geo

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sdweddings/backend/internal/domain"
)

//go:embed places.yaml
var placesYAML []byte

// Place is one entry in the lookup table.
type Place struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
}

func (p Place) coordinates() domain.Coordinates {
	return domain.Coordinates{Lat: p.Lat, Lng: p.Lng}
}

// Table is an ordered place list with an exact-match index.
// Iteration order decides which entry wins a substring match.
type Table struct {
	places []Place
	index  map[string]int
	def    Place
}

type tableFile struct {
	Default string  `yaml:"default"`
	Places  []Place `yaml:"places"`
}

// NewTable builds a Table from places. def names the entry returned for
// blank or unknown locations and must be present in places.
func NewTable(def string, places []Place) (*Table, error) {
	t := &Table{index: make(map[string]int, len(places))}
	for _, p := range places {
		p.Name = normalizeLocation(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("geo.NewTable: place with empty name")
		}
		if _, dup := t.index[p.Name]; dup {
			return nil, fmt.Errorf("geo.NewTable: duplicate place %q", p.Name)
		}
		t.index[p.Name] = len(t.places)
		t.places = append(t.places, p)
	}
	i, ok := t.index[normalizeLocation(def)]
	if !ok {
		return nil, fmt.Errorf("geo.NewTable: default place %q not in table", def)
	}
	t.def = t.places[i]
	return t, nil
}

// ParseTable decodes a YAML table in the places.yaml format.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("geo.ParseTable: %w", err)
	}
	return NewTable(f.Default, f.Places)
}

// Lookup returns the best-guess coordinates for location:
//  1. blank input -> default place
//  2. exact (case-insensitive, trimmed) name match
//  3. first place, in table order, whose name contains the input or is
//     contained in it
//  4. default place
func (t *Table) Lookup(location string) domain.Coordinates {
	loc := normalizeLocation(location)
	if loc == "" {
		return t.def.coordinates()
	}
	if i, ok := t.index[loc]; ok {
		return t.places[i].coordinates()
	}
	for _, p := range t.places {
		if strings.Contains(loc, p.Name) || strings.Contains(p.Name, loc) {
			return p.coordinates()
		}
	}
	return t.def.coordinates()
}

// Default returns the default place's coordinates.
func (t *Table) Default() domain.Coordinates {
	return t.def.coordinates()
}

// Len returns the number of places in the table.
func (t *Table) Len() int {
	return len(t.places)
}

func normalizeLocation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var builtin = mustParse(placesYAML)

func mustParse(data []byte) *Table {
	t, err := ParseTable(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Builtin returns the embedded San Diego area table.
func Builtin() *Table {
	return builtin
}

// Lookup resolves location against the embedded table.
func Lookup(location string) domain.Coordinates {
	return builtin.Lookup(location)
}

// LookupPtr is Lookup for optional CMS fields; nil resolves to the default.
func LookupPtr(location *string) domain.Coordinates {
	if location == nil {
		return builtin.Default()
	}
	return builtin.Lookup(*location)
}
