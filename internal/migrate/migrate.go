// Package migrate holds the one-shot jobs that turn legacy inline vendor and
// venue data on couple documents into canonical documents plus references.
//
// Jobs run strictly sequentially: the in-memory name index must be updated
// before the next couple is looked at, otherwise two couples could each create
// a document for the same name. An entry that would produce an invalid
// document is logged, left as legacy data and counted as skipped. Any CMS
// error aborts the run. Writes already made stay written, and a re-run only
// picks up couples that still carry legacy data.
package migrate

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sdweddings/backend/internal/domain"
)

// VendorStore is the canonical vendor storage a job needs.
// repo.VendorRepo satisfies it.
type VendorStore interface {
	List(ctx context.Context) ([]domain.Vendor, error)
	Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error)
	IncrementWeddingCount(ctx context.Context, id string, by int) error
}

// VenueStore is the canonical venue storage a job needs.
// repo.VenueRepo satisfies it.
type VenueStore interface {
	List(ctx context.Context) ([]domain.Venue, error)
	Create(ctx context.Context, v domain.Venue) (domain.Venue, error)
	IncrementWeddingCount(ctx context.Context, id string, by int) error
}

// CoupleStore reads couples that still need migrating and rewrites their
// vendor and venue fields. repo.CoupleRepo satisfies it.
type CoupleStore interface {
	ListWithLegacyVendors(ctx context.Context) ([]domain.Couple, error)
	ListWithLegacyVenue(ctx context.Context) ([]domain.Couple, error)
	SetVendors(ctx context.Context, id string, entries []domain.VendorEntry) error
	SetVenue(ctx context.Context, id, venueID, legacyName string) error
}

// Options control a migration run.
type Options struct {
	// DryRun walks every step and logs every intended write without making
	// it. Created documents get placeholder ids so dedup still works.
	DryRun bool
	// Verbose promotes per-item messages (reuse, skip) from debug to info.
	Verbose bool
}

// Report counts what a run did (or, in dry-run mode, would have done).
type Report struct {
	CouplesScanned int
	CouplesPatched int
	Created        int
	Reused         int
	Skipped        int
	CountUpdates   int
}

// Fields renders r for a summary log line.
func (r Report) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("couples_scanned", r.CouplesScanned),
		zap.Int("couples_patched", r.CouplesPatched),
		zap.Int("created", r.Created),
		zap.Int("reused", r.Reused),
		zap.Int("skipped", r.Skipped),
		zap.Int("count_updates", r.CountUpdates),
	}
}

const dryRunPrefix = "dry-run-"

// job holds what both migrations share: options, logging and id minting.
type job struct {
	opts Options
	log  *zap.Logger
}

func newJob(log *zap.Logger, opts Options) job {
	return job{opts: opts, log: log.With(zap.Bool("dry_run", opts.DryRun))}
}

// action logs an intended write. Dry and real runs log the same actions.
func (j job) action(msg string, fields ...zap.Field) {
	j.log.Info(msg, fields...)
}

// detail logs per-item progress.
func (j job) detail(msg string, fields ...zap.Field) {
	if j.opts.Verbose {
		j.log.Info(msg, fields...)
		return
	}
	j.log.Debug(msg, fields...)
}

// newID mints the id for a document this run creates.
func (j job) newID() string {
	if j.opts.DryRun {
		return dryRunPrefix + uuid.NewString()
	}
	return uuid.NewString()
}

// tally tracks, per canonical document, how many couples this run pointed at
// it and whether this run created it.
type tally struct {
	order   []string
	refs    map[string]int
	created map[string]bool
}

func newTally() *tally {
	return &tally{refs: make(map[string]int), created: make(map[string]bool)}
}

func (t *tally) markCreated(id string) {
	t.created[id] = true
}

func (t *tally) reference(id string) {
	if _, ok := t.refs[id]; !ok {
		t.order = append(t.order, id)
	}
	t.refs[id]++
}

type increment struct {
	ID string
	By int
}

// increments returns the weddingCount corrections, in first-reference order.
// A document created in this run already counts its first couple, so it is
// bumped by (couples - 1). A document that existed before the run is bumped
// by the full number of couples that now reference it.
func (t *tally) increments() []increment {
	var out []increment
	for _, id := range t.order {
		by := t.refs[id]
		if t.created[id] {
			by--
		}
		if by > 0 {
			out = append(out, increment{ID: id, By: by})
		}
	}
	return out
}
