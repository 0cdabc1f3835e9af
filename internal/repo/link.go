package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// LinkRepo defines the persistence operations for trip Links.
type LinkRepo interface {
	// Create inserts a new link and returns the persisted record.
	Create(ctx context.Context, l domain.Link) (domain.Link, error)

	// ListByTripID returns all links of a trip ordered by title.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

// pgLinkRepo is the Postgres implementation of LinkRepo.
type pgLinkRepo struct {
	db db
}

// NewLinkRepo constructs a LinkRepo backed by the provided db connection.
func NewLinkRepo(db db) LinkRepo {
	return &pgLinkRepo{db: db}
}

func (r *pgLinkRepo) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	const q = `
		INSERT INTO links (trip_id, title, url)
		VALUES (@trip_id, @title, @url)
		RETURNING id, trip_id, title, url`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id": l.TripID,
		"title":   l.Title,
		"url":     l.URL,
	})
	result, err := scanLink(row)
	if err != nil {
		return domain.Link{}, fmt.Errorf("repo.LinkRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLinkRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	const q = `
		SELECT id, trip_id, title, url
		FROM links
		WHERE trip_id = @trip_id
		ORDER BY title ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LinkRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var out []domain.Link
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LinkRepo.ListByTripID: scan: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LinkRepo.ListByTripID: rows: %w", err)
	}
	return out, nil
}

func scanLink(s scanner) (domain.Link, error) {
	var (
		l      domain.Link
		id     pgtype.UUID
		tripID pgtype.UUID
	)
	if err := s.Scan(&id, &tripID, &l.Title, &l.URL); err != nil {
		return domain.Link{}, err
	}
	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	return l, nil
}
