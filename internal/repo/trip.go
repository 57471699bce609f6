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

// TripRepo defines the persistence operations for Trips.
// All single-trip reads and writes are scoped by userID to enforce
// ownership; the anonymous sentinel is a valid owner like any other.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID, scoped to the owner.
	// Returns domain.ErrNotFound if no such trip exists for that owner.
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)

	// ListByUser returns all trips for an owner, most recent first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// UpdateStatus sets a trip's status. The transition itself is validated
	// by the service layer. Returns domain.ErrNotFound if the trip does not
	// exist for that owner.
	UpdateStatus(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) (domain.Trip, error)

	// Delete removes a trip (stops, segments, and log sheets cascade).
	// Returns domain.ErrNotFound if the trip does not exist for that owner.
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool or a Store transaction; in tests pass a
// pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `
	id, user_id, name, status,
	current_location, current_lat, current_lng,
	pickup_location, pickup_lat, pickup_lng,
	dropoff_location, dropoff_lat, dropoff_lng,
	current_cycle_hours, total_distance, estimated_driving_time, total_trip_time,
	created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (
			user_id, name, status,
			current_location, current_lat, current_lng,
			pickup_location, pickup_lat, pickup_lng,
			dropoff_location, dropoff_lat, dropoff_lng,
			current_cycle_hours, total_distance, estimated_driving_time, total_trip_time
		)
		VALUES (
			@user_id, @name, @status,
			@current_location, @current_lat, @current_lng,
			@pickup_location, @pickup_lat, @pickup_lng,
			@dropoff_location, @dropoff_lat, @dropoff_lng,
			@current_cycle_hours, @total_distance, @estimated_driving_time, @total_trip_time
		)
		RETURNING` + tripColumns

	args := pgx.NamedArgs{
		"user_id":                trip.UserID,
		"name":                   trip.Name,
		"status":                 string(trip.Status),
		"current_location":       trip.Current.Address,
		"current_lat":            trip.Current.Lat,
		"current_lng":            trip.Current.Lng,
		"pickup_location":        trip.Pickup.Address,
		"pickup_lat":             trip.Pickup.Lat,
		"pickup_lng":             trip.Pickup.Lng,
		"dropoff_location":       trip.Dropoff.Address,
		"dropoff_lat":            trip.Dropoff.Lat,
		"dropoff_lng":            trip.Dropoff.Lng,
		"current_cycle_hours":    trip.CurrentCycleHours,
		"total_distance":         trip.TotalDistance,
		"estimated_driving_time": trip.EstimatedDrivingTime,
		"total_trip_time":        trip.TotalTripTime,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	const q = `SELECT` + tripColumns + `
		FROM trips
		WHERE id = @id AND user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": tripID, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `SELECT` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}
	return trips, nil
}

func (r *pgTripRepo) UpdateStatus(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET status = @status, updated_at = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING` + tripColumns

	args := pgx.NamedArgs{"id": tripID, "user_id": userID, "status": string(status)}
	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateStatus: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": tripID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		status string
	)

	err := s.Scan(
		&id, &userID, &t.Name, &status,
		&t.Current.Address, &t.Current.Lat, &t.Current.Lng,
		&t.Pickup.Address, &t.Pickup.Lat, &t.Pickup.Lng,
		&t.Dropoff.Address, &t.Dropoff.Lat, &t.Dropoff.Lng,
		&t.CurrentCycleHours, &t.TotalDistance, &t.EstimatedDrivingTime, &t.TotalTripTime,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.Status = domain.TripStatus(status)
	return t, nil
}
