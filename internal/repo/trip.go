// Package repo contains all database access logic for the planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// Only SQL and type mapping live here.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so multi-statement writes nest cleanly inside that test transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a trip together with its initial participants in a single
	// transaction and returns both as persisted (ids populated). Either
	// everything is written or nothing is.
	Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// Update overwrites destination and dates of an existing trip and returns
	// the updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Confirm marks the trip as confirmed by its owner. Confirming twice is not
	// an error. Returns domain.ErrNotFound if no trip with that ID exists.
	Confirm(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, destination, starts_at, ends_at, is_confirmed, created_at`

// Create inserts the trip row, then each participant row, inside one transaction.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, []domain.Participant, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.Create: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
		INSERT INTO trips (destination, starts_at, ends_at)
		VALUES (@destination, @starts_at, @ends_at)
		RETURNING ` + tripColumns

	created, err := scanTrip(tx.QueryRow(ctx, q, pgx.NamedArgs{
		"destination": trip.Destination,
		"starts_at":   trip.StartsAt,
		"ends_at":     trip.EndsAt,
	}))
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	saved := make([]domain.Participant, 0, len(participants))
	for _, p := range participants {
		p.TripID = created.ID
		sp, err := insertParticipant(ctx, tx, p)
		if err != nil {
			return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.Create: participant %s: %w", p.Email, err)
		}
		saved = append(saved, sp)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, nil, fmt.Errorf("repo.TripRepo.Create: commit: %w", err)
	}
	return created, saved, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination = @destination,
		    starts_at   = @starts_at,
		    ends_at     = @ends_at
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"destination": trip.Destination,
		"starts_at":   trip.StartsAt,
		"ends_at":     trip.EndsAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Confirm sets is_confirmed on the trip.
func (r *pgTripRepo) Confirm(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE trips SET is_confirmed = TRUE WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Confirm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Confirm: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// Timestamps are normalised to UTC so callers never depend on the session time zone.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Destination, &t.StartsAt, &t.EndsAt, &t.IsConfirmed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartsAt = t.StartsAt.UTC()
	t.EndsAt = t.EndsAt.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
