package migrate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/normalize"
	"github.com/sdweddings/backend/internal/repo"
)

// VendorMigrator replaces inline vendor objects on couples with references to
// canonical Vendor documents, creating those documents on first sight.
type VendorMigrator struct {
	job
	vendors VendorStore
	couples CoupleStore
}

// NewVendorMigrator constructs a VendorMigrator.
func NewVendorMigrator(vendors VendorStore, couples CoupleStore, log *zap.Logger, opts Options) *VendorMigrator {
	return &VendorMigrator{job: newJob(log, opts), vendors: vendors, couples: couples}
}

// Run executes the migration and returns what it did. On error the report
// covers the work done before the failure.
func (m *VendorMigrator) Run(ctx context.Context) (Report, error) {
	var rep Report

	existing, err := m.vendors.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("migrate.VendorMigrator.Run: load vendors: %w", err)
	}
	index := make(map[string]string, len(existing))
	for _, v := range existing {
		key := normalize.NameKey(v.Name)
		if _, dup := index[key]; key == "" || dup {
			continue
		}
		index[key] = v.ID
	}

	couples, err := m.couples.ListWithLegacyVendors(ctx)
	if err != nil {
		return rep, fmt.Errorf("migrate.VendorMigrator.Run: load couples: %w", err)
	}
	m.log.Info("vendor migration started",
		zap.Int("existing_vendors", len(index)),
		zap.Int("couples", len(couples)),
	)

	counts := newTally()
	for _, c := range couples {
		rep.CouplesScanned++
		if !domain.NeedsVendorMigration(c) {
			m.detail("skip couple", zap.String("couple", c.Slug), zap.String("reason", "already migrated"))
			continue
		}

		entries, changed, err := m.migrateCouple(ctx, c, index, counts, &rep)
		if err != nil {
			return rep, fmt.Errorf("migrate.VendorMigrator.Run: couple %s: %w", c.ID, err)
		}
		if !changed {
			m.detail("skip couple", zap.String("couple", c.Slug), zap.String("reason", "no entry could be migrated"))
			continue
		}

		m.action("patch couple",
			zap.String("couple", c.Slug),
			zap.String("couple_id", c.ID),
			zap.Int("references", len(entries)),
		)
		if !m.opts.DryRun {
			if err := m.couples.SetVendors(ctx, c.ID, entries); err != nil {
				return rep, fmt.Errorf("migrate.VendorMigrator.Run: couple %s: %w", c.ID, err)
			}
		}
		rep.CouplesPatched++
	}

	for _, inc := range counts.increments() {
		m.action("increment wedding count", zap.String("vendor_id", inc.ID), zap.Int("by", inc.By))
		if !m.opts.DryRun {
			if err := m.vendors.IncrementWeddingCount(ctx, inc.ID, inc.By); err != nil {
				return rep, fmt.Errorf("migrate.VendorMigrator.Run: %w", err)
			}
		}
		rep.CountUpdates++
	}
	return rep, nil
}

// migrateCouple resolves every entry of c to a reference. Existing references
// are kept, blank inline entries are dropped, and a vendor listed twice on the
// same couple is referenced once. An inline entry that would make an invalid
// vendor document stays inline. changed reports whether the entry list differs
// from c.Vendors.
func (m *VendorMigrator) migrateCouple(ctx context.Context, c domain.Couple, index map[string]string, counts *tally, rep *Report) (entries []domain.VendorEntry, changed bool, err error) {
	entries = make([]domain.VendorEntry, 0, len(c.Vendors))
	onCouple := make(map[string]bool, len(c.Vendors))

	for _, e := range c.Vendors {
		switch v := e.(type) {
		case domain.VendorReference:
			if onCouple[v.ID] {
				changed = true
				continue
			}
			onCouple[v.ID] = true
			entries = append(entries, v)

		case domain.LegacyVendor:
			key := normalize.NameKey(v.Name)
			if key == "" {
				rep.Skipped++
				changed = true
				m.detail("skip vendor entry", zap.String("couple", c.Slug), zap.String("reason", "blank name"))
				continue
			}

			id, reused := index[key]
			if !reused {
				created, err := m.create(ctx, v)
				if errors.Is(err, domain.ErrValidation) {
					rep.Skipped++
					m.log.Warn("skip vendor entry",
						zap.String("couple", c.Slug),
						zap.String("name", v.Name),
						zap.String("reason", "invalid vendor document"),
						zap.Error(err),
					)
					entries = append(entries, v)
					continue
				}
				if err != nil {
					return nil, false, err
				}
				id = created.ID
				index[key] = id
				counts.markCreated(id)
				rep.Created++
			}

			changed = true
			if onCouple[id] {
				m.detail("skip vendor entry", zap.String("couple", c.Slug), zap.String("name", v.Name), zap.String("reason", "duplicate on couple"))
				continue
			}
			if reused {
				rep.Reused++
				m.detail("reuse vendor", zap.String("couple", c.Slug), zap.String("name", v.Name), zap.String("vendor_id", id))
			}
			onCouple[id] = true
			counts.reference(id)
			entries = append(entries, domain.VendorReference{Key: v.Key, ID: id})
		}
	}
	return entries, changed, nil
}

func (m *VendorMigrator) create(ctx context.Context, lv domain.LegacyVendor) (domain.Vendor, error) {
	name := strings.TrimSpace(lv.Name)
	v := domain.Vendor{
		ID:           m.newID(),
		Name:         name,
		Slug:         normalize.Slugify(name),
		Category:     normalize.CategoryForRole(lv.Role),
		Website:      normalize.Website(lv.URL),
		WeddingCount: 1,
	}
	if err := repo.ValidateVendor(v); err != nil {
		return domain.Vendor{}, err
	}

	m.action("create vendor",
		zap.String("name", v.Name),
		zap.String("slug", v.Slug),
		zap.String("category", string(v.Category)),
	)
	if m.opts.DryRun {
		return v, nil
	}
	return m.vendors.Create(ctx, v)
}
