package service

import (
	"context"
	"fmt"

	"github.com/sdweddings/backend/internal/aggregate"
	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/repo"
)

// ExportService assembles the flat vendor directory export.
type ExportService struct {
	couples repo.CoupleRepo
}

// NewExportService constructs an ExportService backed by the couple repo.
func NewExportService(couples repo.CoupleRepo) *ExportService {
	return &ExportService{couples: couples}
}

// VendorDirectory returns one row per aggregated vendor, in directory order.
// Unlike the directory page, a CMS failure is returned to the caller.
func (s *ExportService) VendorDirectory(ctx context.Context) ([]domain.VendorExportRow, error) {
	views, err := s.couples.ListViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.VendorDirectory: %w", err)
	}

	vendors := aggregate.Vendors(views)
	rows := make([]domain.VendorExportRow, 0, len(vendors))
	for _, v := range vendors {
		names := make([]string, 0, len(v.Weddings))
		for _, w := range v.Weddings {
			names = append(names, w.Names)
		}
		rows = append(rows, domain.VendorExportRow{
			Name:         v.Name,
			Role:         v.Role,
			URL:          v.URL,
			WeddingCount: len(v.Weddings),
			Weddings:     names,
		})
	}
	return rows, nil
}
