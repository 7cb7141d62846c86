package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdweddings/backend/internal/domain"
)

func intPtr(n int) *int { return &n }

func TestNewPaginationParams(t *testing.T) {
	cases := []struct {
		name        string
		page, limit *int
		want        domain.PaginationParams
	}{
		{"defaults", nil, nil, domain.PaginationParams{Page: 1, Limit: 12}},
		{"explicit", intPtr(3), intPtr(20), domain.PaginationParams{Page: 3, Limit: 20}},
		{"limit capped", nil, intPtr(500), domain.PaginationParams{Page: 1, Limit: 48}},
		{"non-positive ignored", intPtr(0), intPtr(-4), domain.PaginationParams{Page: 1, Limit: 12}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.NewPaginationParams(tc.page, tc.limit))
		})
	}
}

func TestPaginationParams_Bounds(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(3), intPtr(10))

	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 30, p.End())
}
