package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/sdweddings/backend/internal/analytics"
	"github.com/sdweddings/backend/internal/domain"
	"github.com/sdweddings/backend/internal/mailer"
	"github.com/sdweddings/backend/internal/repo"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones a test needs.

type mockCoupleRepo struct {
	listViews             func(ctx context.Context) ([]domain.CoupleView, error)
	listViewsPaged        func(ctx context.Context, p domain.PaginationParams) ([]domain.CoupleView, int64, error)
	getViewBySlug         func(ctx context.Context, slug string) (domain.CoupleView, error)
	listWithLegacyVendors func(ctx context.Context) ([]domain.Couple, error)
	listWithLegacyVenue   func(ctx context.Context) ([]domain.Couple, error)
	setVendors            func(ctx context.Context, id string, entries []domain.VendorEntry) error
	setVenue              func(ctx context.Context, id, venueID, legacyName string) error
}

func (m *mockCoupleRepo) ListViews(ctx context.Context) ([]domain.CoupleView, error) {
	return m.listViews(ctx)
}
func (m *mockCoupleRepo) ListViewsPaged(ctx context.Context, p domain.PaginationParams) ([]domain.CoupleView, int64, error) {
	return m.listViewsPaged(ctx, p)
}
func (m *mockCoupleRepo) GetViewBySlug(ctx context.Context, slug string) (domain.CoupleView, error) {
	return m.getViewBySlug(ctx, slug)
}
func (m *mockCoupleRepo) ListWithLegacyVendors(ctx context.Context) ([]domain.Couple, error) {
	return m.listWithLegacyVendors(ctx)
}
func (m *mockCoupleRepo) ListWithLegacyVenue(ctx context.Context) ([]domain.Couple, error) {
	return m.listWithLegacyVenue(ctx)
}
func (m *mockCoupleRepo) SetVendors(ctx context.Context, id string, entries []domain.VendorEntry) error {
	return m.setVendors(ctx, id, entries)
}
func (m *mockCoupleRepo) SetVenue(ctx context.Context, id, venueID, legacyName string) error {
	return m.setVenue(ctx, id, venueID, legacyName)
}

type mockVendorRepo struct {
	list   func(ctx context.Context) ([]domain.Vendor, error)
	create func(ctx context.Context, v domain.Vendor) (domain.Vendor, error)
	incr   func(ctx context.Context, id string, by int) error
}

func (m *mockVendorRepo) List(ctx context.Context) ([]domain.Vendor, error) { return m.list(ctx) }
func (m *mockVendorRepo) Create(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	return m.create(ctx, v)
}
func (m *mockVendorRepo) IncrementWeddingCount(ctx context.Context, id string, by int) error {
	return m.incr(ctx, id, by)
}

type mockVenueRepo struct {
	list   func(ctx context.Context) ([]domain.Venue, error)
	create func(ctx context.Context, v domain.Venue) (domain.Venue, error)
	incr   func(ctx context.Context, id string, by int) error
}

func (m *mockVenueRepo) List(ctx context.Context) ([]domain.Venue, error) { return m.list(ctx) }
func (m *mockVenueRepo) Create(ctx context.Context, v domain.Venue) (domain.Venue, error) {
	return m.create(ctx, v)
}
func (m *mockVenueRepo) IncrementWeddingCount(ctx context.Context, id string, by int) error {
	return m.incr(ctx, id, by)
}

type mockInquiryRepo struct {
	create     func(ctx context.Context, in domain.Inquiry) (domain.Inquiry, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Inquiry, error)
	listRecent func(ctx context.Context, limit int) ([]domain.Inquiry, error)
}

func (m *mockInquiryRepo) Create(ctx context.Context, in domain.Inquiry) (domain.Inquiry, error) {
	return m.create(ctx, in)
}
func (m *mockInquiryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Inquiry, error) {
	return m.getByID(ctx, id)
}
func (m *mockInquiryRepo) ListRecent(ctx context.Context, limit int) ([]domain.Inquiry, error) {
	return m.listRecent(ctx, limit)
}

// recordingSender records every message and fails the ones failFn selects.
type recordingSender struct {
	sent   []mailer.Message
	failFn func(msg mailer.Message) error
}

func (s *recordingSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	if s.failFn != nil {
		if err := s.failFn(msg); err != nil {
			return "", err
		}
	}
	s.sent = append(s.sent, msg)
	return "msg-" + msg.Subject, nil
}

type trackedEvent struct {
	name  string
	props map[string]any
}

type recordingTracker struct {
	events []trackedEvent
	err    error
}

func (t *recordingTracker) Track(_ context.Context, event string, props map[string]any) error {
	t.events = append(t.events, trackedEvent{name: event, props: props})
	return t.err
}

// compile-time checks.
var (
	_ repo.CoupleRepo   = (*mockCoupleRepo)(nil)
	_ repo.VendorRepo   = (*mockVendorRepo)(nil)
	_ repo.VenueRepo    = (*mockVenueRepo)(nil)
	_ repo.InquiryRepo  = (*mockInquiryRepo)(nil)
	_ mailer.Sender     = (*recordingSender)(nil)
	_ analytics.Tracker = (*recordingTracker)(nil)
)
