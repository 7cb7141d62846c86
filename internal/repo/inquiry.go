package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sdweddings/backend/internal/domain"
)

// InquiryRepo defines the persistence operations for contact form inquiries.
type InquiryRepo interface {
	// Create inserts a new inquiry and returns the persisted record with its
	// generated id and created_at.
	Create(ctx context.Context, in domain.Inquiry) (domain.Inquiry, error)

	// GetByID retrieves a single inquiry.
	// Returns domain.ErrNotFound if no inquiry with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Inquiry, error)

	// ListRecent returns up to limit inquiries, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.Inquiry, error)
}

// pgInquiryRepo is the Postgres implementation of InquiryRepo.
type pgInquiryRepo struct {
	db db
}

// NewInquiryRepo constructs an InquiryRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewInquiryRepo(db db) InquiryRepo {
	return &pgInquiryRepo{db: db}
}

// Create inserts an inquiry row and returns the full persisted record.
func (r *pgInquiryRepo) Create(ctx context.Context, in domain.Inquiry) (domain.Inquiry, error) {
	const q = `
		INSERT INTO inquiries (name, email, phone, wedding_date, venue, message)
		VALUES (@name, @email, @phone, @wedding_date, @venue, @message)
		RETURNING id, name, email, phone, wedding_date, venue, message, created_at`

	args := pgx.NamedArgs{
		"name":         in.Name,
		"email":        in.Email,
		"phone":        in.Phone,
		"wedding_date": in.WeddingDate, // nil becomes NULL
		"venue":        in.Venue,
		"message":      in.Message,
	}

	result, err := scanInquiry(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("repo.InquiryRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an inquiry by primary key.
func (r *pgInquiryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Inquiry, error) {
	const q = `
		SELECT id, name, email, phone, wedding_date, venue, message, created_at
		FROM inquiries
		WHERE id = @id`

	result, err := scanInquiry(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("repo.InquiryRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListRecent returns the newest inquiries first.
func (r *pgInquiryRepo) ListRecent(ctx context.Context, limit int) ([]domain.Inquiry, error) {
	const q = `
		SELECT id, name, email, phone, wedding_date, venue, message, created_at
		FROM inquiries
		ORDER BY created_at DESC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.InquiryRepo.ListRecent: %w", err)
	}
	defer rows.Close()

	inquiries := []domain.Inquiry{}
	for rows.Next() {
		in, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.InquiryRepo.ListRecent: scan: %w", err)
		}
		inquiries = append(inquiries, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.InquiryRepo.ListRecent: rows: %w", err)
	}
	return inquiries, nil
}

// scanInquiry maps a single database row into a domain.Inquiry.
func scanInquiry(s scanner) (domain.Inquiry, error) {
	var (
		in          domain.Inquiry
		id          pgtype.UUID
		weddingDate pgtype.Date
	)
	err := s.Scan(&id, &in.Name, &in.Email, &in.Phone, &weddingDate, &in.Venue, &in.Message, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Inquiry{}, domain.ErrNotFound
		}
		return domain.Inquiry{}, err
	}

	in.ID = uuid.UUID(id.Bytes)
	if weddingDate.Valid {
		d := weddingDate.Time
		in.WeddingDate = &d
	}
	return in, nil
}
