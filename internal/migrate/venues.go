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

// VenueMigrator replaces the plain-text venue on couples with a reference to a
// canonical Venue document. The original text is kept in the couple's
// venueName field.
type VenueMigrator struct {
	job
	venues  VenueStore
	couples CoupleStore
}

// NewVenueMigrator constructs a VenueMigrator.
func NewVenueMigrator(venues VenueStore, couples CoupleStore, log *zap.Logger, opts Options) *VenueMigrator {
	return &VenueMigrator{job: newJob(log, opts), venues: venues, couples: couples}
}

// Run executes the migration and returns what it did. On error the report
// covers the work done before the failure.
func (m *VenueMigrator) Run(ctx context.Context) (Report, error) {
	var rep Report

	existing, err := m.venues.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("migrate.VenueMigrator.Run: load venues: %w", err)
	}
	index := make(map[string]string, len(existing))
	for _, v := range existing {
		key := normalize.NameKey(v.Name)
		if _, dup := index[key]; key == "" || dup {
			continue
		}
		index[key] = v.ID
	}

	couples, err := m.couples.ListWithLegacyVenue(ctx)
	if err != nil {
		return rep, fmt.Errorf("migrate.VenueMigrator.Run: load couples: %w", err)
	}
	m.log.Info("venue migration started",
		zap.Int("existing_venues", len(index)),
		zap.Int("couples", len(couples)),
	)

	counts := newTally()
	for _, c := range couples {
		rep.CouplesScanned++
		if !domain.NeedsVenueMigration(c) {
			m.detail("skip couple", zap.String("couple", c.Slug), zap.String("reason", "no legacy venue"))
			continue
		}
		legacy := c.Venue.(domain.LegacyVenue)

		key := normalize.NameKey(legacy.Name)
		if key == "" {
			rep.Skipped++
			m.detail("skip couple", zap.String("couple", c.Slug), zap.String("reason", "venue name has no letters or digits"))
			continue
		}

		id, ok := index[key]
		if ok {
			rep.Reused++
			m.detail("reuse venue", zap.String("couple", c.Slug), zap.String("name", legacy.Name), zap.String("venue_id", id))
		} else {
			created, err := m.create(ctx, c, legacy)
			if errors.Is(err, domain.ErrValidation) {
				rep.Skipped++
				m.log.Warn("skip couple",
					zap.String("couple", c.Slug),
					zap.String("name", legacy.Name),
					zap.String("reason", "invalid venue document"),
					zap.Error(err),
				)
				continue
			}
			if err != nil {
				return rep, fmt.Errorf("migrate.VenueMigrator.Run: couple %s: %w", c.ID, err)
			}
			id = created.ID
			index[key] = id
			counts.markCreated(id)
			rep.Created++
		}

		m.action("patch couple",
			zap.String("couple", c.Slug),
			zap.String("couple_id", c.ID),
			zap.String("venue_name", legacy.Name),
		)
		if !m.opts.DryRun {
			if err := m.couples.SetVenue(ctx, c.ID, id, legacy.Name); err != nil {
				return rep, fmt.Errorf("migrate.VenueMigrator.Run: couple %s: %w", c.ID, err)
			}
		}
		counts.reference(id)
		rep.CouplesPatched++
	}

	for _, inc := range counts.increments() {
		m.action("increment wedding count", zap.String("venue_id", inc.ID), zap.Int("by", inc.By))
		if !m.opts.DryRun {
			if err := m.venues.IncrementWeddingCount(ctx, inc.ID, inc.By); err != nil {
				return rep, fmt.Errorf("migrate.VenueMigrator.Run: %w", err)
			}
		}
		rep.CountUpdates++
	}
	return rep, nil
}

// create builds a venue from the couple's legacy fields. Region and type are
// best effort and stay empty when no keyword matches.
func (m *VenueMigrator) create(ctx context.Context, c domain.Couple, legacy domain.LegacyVenue) (domain.Venue, error) {
	name := strings.TrimSpace(legacy.Name)
	location := strings.TrimSpace(c.Location)
	v := domain.Venue{
		ID:              m.newID(),
		Name:            name,
		Slug:            normalize.Slugify(name),
		Location:        location,
		Region:          normalize.RegionFor(location),
		Type:            normalize.VenueTypeFor(name),
		Website:         normalize.Website(c.VenueURL),
		PreferredVendor: c.PreferredVenueVendor,
		WeddingCount:    1,
	}
	if err := repo.ValidateVenue(v); err != nil {
		return domain.Venue{}, err
	}

	m.action("create venue",
		zap.String("name", v.Name),
		zap.String("slug", v.Slug),
		zap.String("region", string(v.Region)),
		zap.String("type", string(v.Type)),
	)
	if m.opts.DryRun {
		return v, nil
	}
	return m.venues.Create(ctx, v)
}
