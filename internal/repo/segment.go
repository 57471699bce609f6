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

// RouteSegmentRepo defines the persistence operations for RouteSegments.
type RouteSegmentRepo interface {
	// Create inserts a new route segment and returns the persisted record.
	Create(ctx context.Context, seg domain.RouteSegment) (domain.RouteSegment, error)

	// ListByTripID returns all segments for a trip ordered by sequence.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.RouteSegment, error)
}

// pgRouteSegmentRepo is the Postgres implementation of RouteSegmentRepo.
type pgRouteSegmentRepo struct {
	db db
}

// NewRouteSegmentRepo constructs a RouteSegmentRepo backed by the provided
// db connection.
func NewRouteSegmentRepo(db db) RouteSegmentRepo {
	return &pgRouteSegmentRepo{db: db}
}

const segmentColumns = `
	id, trip_id, start_stop_id, end_stop_id,
	distance, estimated_time, polyline, sequence`

func (r *pgRouteSegmentRepo) Create(ctx context.Context, seg domain.RouteSegment) (domain.RouteSegment, error) {
	const q = `
		INSERT INTO route_segments (
			trip_id, start_stop_id, end_stop_id,
			distance, estimated_time, polyline, sequence
		)
		VALUES (
			@trip_id, @start_stop_id, @end_stop_id,
			@distance, @estimated_time, @polyline, @sequence
		)
		RETURNING` + segmentColumns

	args := pgx.NamedArgs{
		"trip_id":        seg.TripID,
		"start_stop_id":  seg.StartStopID,
		"end_stop_id":    seg.EndStopID,
		"distance":       seg.Distance,
		"estimated_time": seg.EstimatedTime,
		"polyline":       seg.Polyline,
		"sequence":       seg.Sequence,
	}

	result, err := scanSegment(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.RouteSegment{}, fmt.Errorf("repo.RouteSegmentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgRouteSegmentRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.RouteSegment, error) {
	const q = `SELECT` + segmentColumns + `
		FROM route_segments
		WHERE trip_id = @trip_id
		ORDER BY sequence`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.RouteSegmentRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var segs []domain.RouteSegment
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RouteSegmentRepo.ListByTripID: scan: %w", err)
		}
		segs = append(segs, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RouteSegmentRepo.ListByTripID: rows: %w", err)
	}
	return segs, nil
}

// scanSegment maps a single database row into a domain.RouteSegment.
func scanSegment(s scanner) (domain.RouteSegment, error) {
	var (
		seg    domain.RouteSegment
		id     pgtype.UUID
		tripID pgtype.UUID
		start  pgtype.UUID
		end    pgtype.UUID
	)

	err := s.Scan(
		&id, &tripID, &start, &end,
		&seg.Distance, &seg.EstimatedTime, &seg.Polyline, &seg.Sequence,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RouteSegment{}, domain.ErrNotFound
		}
		return domain.RouteSegment{}, err
	}

	seg.ID = uuid.UUID(id.Bytes)
	seg.TripID = uuid.UUID(tripID.Bytes)
	seg.StartStopID = uuid.UUID(start.Bytes)
	seg.EndStopID = uuid.UUID(end.Bytes)
	return seg, nil
}
