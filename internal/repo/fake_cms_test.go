package repo_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sdweddings/backend/internal/cms"
)

// fakeCMS answers queries with canned JSON and records every write.
type fakeCMS struct {
	mu sync.Mutex

	// queryFn returns the raw JSON "result" for a query.
	queryFn func(query string, params map[string]any) (string, error)
	// createFn returns the id for a created document. Defaults to the
	// document's own _id.
	createFn func(doc any) (string, error)
	patchErr error

	queries []string
	creates []map[string]any
	patches []patchCall
}

type patchCall struct {
	ID    string
	Patch cms.Patch
}

var _ cms.Client = (*fakeCMS)(nil)

func (f *fakeCMS) Query(_ context.Context, query string, params map[string]any, out any) error {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	result := "null"
	if f.queryFn != nil {
		r, err := f.queryFn(query, params)
		if err != nil {
			return err
		}
		result = r
	}
	return json.Unmarshal([]byte(result), out)
}

func (f *fakeCMS) Create(_ context.Context, doc any) (string, error) {
	// Round-trip through JSON so tests see exactly what would be sent.
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return "", err
	}

	f.mu.Lock()
	f.creates = append(f.creates, m)
	f.mu.Unlock()

	if f.createFn != nil {
		return f.createFn(doc)
	}
	id, _ := m["_id"].(string)
	return id, nil
}

func (f *fakeCMS) Patch(_ context.Context, id string, p cms.Patch) error {
	if f.patchErr != nil {
		return f.patchErr
	}
	f.mu.Lock()
	f.patches = append(f.patches, patchCall{ID: id, Patch: p})
	f.mu.Unlock()
	return nil
}

func (f *fakeCMS) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}
