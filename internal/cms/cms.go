// Package cms is a small client for the Sanity content API.
//
// Only the three operations the backend needs are exposed: run a GROQ query,
// create a document and patch a document (set fields, increment numbers).
package cms

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Client is the document-store surface used by the repos.
// Implementations must be safe for concurrent use.
type Client interface {
	// Query runs a GROQ query with named parameters and decodes the result
	// into out. Parameter values are JSON-encoded.
	Query(ctx context.Context, query string, params map[string]any, out any) error

	// Create stores a new document and returns its id. doc must marshal to a
	// JSON object carrying _type; if it carries _id that id is used.
	Create(ctx context.Context, doc any) (string, error)

	// Patch applies set and inc operations to one document.
	Patch(ctx context.Context, id string, p Patch) error
}

// Patch is a single-document mutation. Empty maps are omitted. Sanity applies
// SetIfMissing before Inc, so a counter can be seeded and bumped in one patch.
type Patch struct {
	Set          map[string]any
	SetIfMissing map[string]any
	Inc          map[string]int
}

// Empty reports whether p would change nothing.
func (p Patch) Empty() bool {
	return len(p.Set) == 0 && len(p.SetIfMissing) == 0 && len(p.Inc) == 0
}

// Config identifies a Sanity project and dataset.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	// Token authorises writes and draft reads. Empty means anonymous access.
	Token string
	// UseCDN routes anonymous queries through apicdn.sanity.io.
	UseCDN bool
	// BaseURL overrides both hosts; used by tests.
	BaseURL string
	Timeout time.Duration
}

// APIHost is the base URL for mutations and authenticated queries.
func (c Config) APIHost() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.api.sanity.io", c.ProjectID)
}

// QueryHost is the base URL for queries. The CDN is only used for tokenless
// reads because it does not serve authenticated requests.
func (c Config) QueryHost() string {
	if c.BaseURL == "" && c.UseCDN && c.Token == "" {
		return fmt.Sprintf("https://%s.apicdn.sanity.io", c.ProjectID)
	}
	return c.APIHost()
}

func (c Config) version() string {
	v := strings.TrimSpace(c.APIVersion)
	if v == "" {
		v = "2024-01-01"
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Reference is a Sanity reference object, as stored in reference fields and
// reference arrays.
type Reference struct {
	Type string `json:"_type"`
	Key  string `json:"_key,omitempty"`
	Ref  string `json:"_ref" validate:"required"`
}

// NewReference builds a reference to id. key is only needed for array items.
func NewReference(key, id string) Reference {
	return Reference{Type: "reference", Key: key, Ref: id}
}

// Slug is Sanity's slug object.
type Slug struct {
	Type    string `json:"_type"`
	Current string `json:"current" validate:"required,max=96"`
}

// NewSlug wraps s in a slug object.
func NewSlug(s string) Slug {
	return Slug{Type: "slug", Current: s}
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode  int
	Type        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("sanity: HTTP %d", e.StatusCode)
	}
	if e.Type == "" {
		return fmt.Sprintf("sanity: HTTP %d: %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("sanity: HTTP %d: %s: %s", e.StatusCode, e.Type, e.Description)
}
