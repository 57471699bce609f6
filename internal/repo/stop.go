package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pmillerd/hauliq/internal/domain"
)

// StopRepo defines the persistence operations for Stops.
type StopRepo interface {
	// Create inserts a new stop and returns the persisted record.
	Create(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// ListByTripID returns all stops for a trip ordered by sequence.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

const stopColumns = `
	id, trip_id, stop_type, location, latitude, longitude,
	arrival_time, departure_time, duration, distance_from_start, sequence`

func (r *pgStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		INSERT INTO stops (
			trip_id, stop_type, location, latitude, longitude,
			arrival_time, departure_time, duration, distance_from_start, sequence
		)
		VALUES (
			@trip_id, @stop_type, @location, @latitude, @longitude,
			@arrival_time, @departure_time, @duration, @distance_from_start, @sequence
		)
		RETURNING` + stopColumns

	args := pgx.NamedArgs{
		"trip_id":             stop.TripID,
		"stop_type":           string(stop.Type),
		"location":            stop.Location,
		"latitude":            stop.Lat,
		"longitude":           stop.Lng,
		"arrival_time":        stop.ArrivalTime,
		"departure_time":      stop.DepartureTime, // nil becomes NULL
		"duration":            stop.Duration,
		"distance_from_start": stop.DistanceFromStart,
		"sequence":            stop.Sequence,
	}

	result, err := scanStop(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `SELECT` + stopColumns + `
		FROM stops
		WHERE trip_id = @trip_id
		ORDER BY sequence`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByTripID: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: rows: %w", err)
	}
	return stops, nil
}

// scanStop maps a single database row into a domain.Stop.
func scanStop(s scanner) (domain.Stop, error) {
	var (
		st       domain.Stop
		id       pgtype.UUID
		tripID   pgtype.UUID
		stopType string
		departed pgtype.Timestamptz
	)

	err := s.Scan(
		&id, &tripID, &stopType, &st.Location, &st.Lat, &st.Lng,
		&st.ArrivalTime, &departed, &st.Duration, &st.DistanceFromStart, &st.Sequence,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	st.Type = domain.StopType(stopType)
	if departed.Valid {
		d := departed.Time
		st.DepartureTime = &d
	}
	return st, nil
}
