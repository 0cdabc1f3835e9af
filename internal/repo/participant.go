package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ParticipantRepo defines the persistence operations for trip participants.
type ParticipantRepo interface {
	// Create adds a participant to a trip. If the e-mail is already on the
	// trip the existing row is returned unchanged, so inviting twice is safe.
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// GetByID retrieves a participant by UUID.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)

	// ListByTripID returns the trip's participants, owner first, then by e-mail.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// Confirm records the participant's name and marks them confirmed.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	Confirm(ctx context.Context, id uuid.UUID, name string) (domain.Participant, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db connection.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

const participantColumns = `id, trip_id, name, email, is_confirmed, is_owner`

// Create upserts by (trip_id, email).
func (r *pgParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	result, err := insertParticipant(ctx, r.db, p)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `SELECT ` + participantColumns + ` FROM participants WHERE id = @id`

	result, err := scanParticipant(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY is_owner DESC, email ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var out []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: rows: %w", err)
	}
	return out, nil
}

func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID, name string) (domain.Participant, error) {
	const q = `
		UPDATE participants
		SET name = @name, is_confirmed = TRUE
		WHERE id = @id
		RETURNING ` + participantColumns

	result, err := scanParticipant(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "name": name}))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}
	return result, nil
}

// insertParticipant is shared by ParticipantRepo.Create and the transactional
// TripRepo.Create. The DO UPDATE SET trick forces the RETURNING clause to fire
// even when the row already exists. With DO NOTHING, RETURNING yields no row.
func insertParticipant(ctx context.Context, q db, p domain.Participant) (domain.Participant, error) {
	const sql = `
		INSERT INTO participants (trip_id, name, email, is_confirmed, is_owner)
		VALUES (@trip_id, @name, @email, @is_confirmed, @is_owner)
		ON CONFLICT (trip_id, email) DO UPDATE SET email = EXCLUDED.email
		RETURNING ` + participantColumns

	return scanParticipant(q.QueryRow(ctx, sql, pgx.NamedArgs{
		"trip_id":      p.TripID,
		"name":         p.Name,
		"email":        p.Email,
		"is_confirmed": p.IsConfirmed,
		"is_owner":     p.IsOwner,
	}))
}

func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
	)
	if err := s.Scan(&id, &tripID, &p.Name, &p.Email, &p.IsConfirmed, &p.IsOwner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	return p, nil
}
