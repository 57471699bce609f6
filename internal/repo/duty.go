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

// DutyStatusRepo defines the persistence operations for DutyStatusChanges.
type DutyStatusRepo interface {
	// CreateBatch inserts the changes in order for one log sheet.
	CreateBatch(ctx context.Context, sheetID uuid.UUID, changes []domain.DutyStatusChange) error

	// ListByLogSheet returns a sheet's changes ordered by start_time.
	ListByLogSheet(ctx context.Context, sheetID uuid.UUID) ([]domain.DutyStatusChange, error)
}

// pgDutyStatusRepo is the Postgres implementation of DutyStatusRepo.
type pgDutyStatusRepo struct {
	db db
}

// NewDutyStatusRepo constructs a DutyStatusRepo backed by the provided db
// connection.
func NewDutyStatusRepo(db db) DutyStatusRepo {
	return &pgDutyStatusRepo{db: db}
}

const dutyColumns = `
	id, log_sheet_id, status, start_time, end_time,
	duration, location, latitude, longitude, remarks`

func (r *pgDutyStatusRepo) CreateBatch(ctx context.Context, sheetID uuid.UUID, changes []domain.DutyStatusChange) error {
	const q = `
		INSERT INTO duty_status_changes (
			log_sheet_id, status, start_time, end_time,
			duration, location, latitude, longitude, remarks
		)
		VALUES (
			@log_sheet_id, @status, @start_time, @end_time,
			@duration, @location, @latitude, @longitude, @remarks
		)`

	for _, c := range changes {
		args := pgx.NamedArgs{
			"log_sheet_id": sheetID,
			"status":       string(c.Status),
			"start_time":   c.StartTime,
			"end_time":     c.EndTime,
			"duration":     c.Duration,
			"location":     c.Location,
			"latitude":     c.Lat,
			"longitude":    c.Lng,
			"remarks":      c.Remarks,
		}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.DutyStatusRepo.CreateBatch: %w", err)
		}
	}
	return nil
}

func (r *pgDutyStatusRepo) ListByLogSheet(ctx context.Context, sheetID uuid.UUID) ([]domain.DutyStatusChange, error) {
	const q = `SELECT` + dutyColumns + `
		FROM duty_status_changes
		WHERE log_sheet_id = @log_sheet_id
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"log_sheet_id": sheetID})
	if err != nil {
		return nil, fmt.Errorf("repo.DutyStatusRepo.ListByLogSheet: %w", err)
	}
	defer rows.Close()

	var changes []domain.DutyStatusChange
	for rows.Next() {
		c, err := scanDutyChange(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DutyStatusRepo.ListByLogSheet: scan: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DutyStatusRepo.ListByLogSheet: rows: %w", err)
	}
	return changes, nil
}

// scanDutyChange maps a single database row into a domain.DutyStatusChange.
func scanDutyChange(s scanner) (domain.DutyStatusChange, error) {
	var (
		c       domain.DutyStatusChange
		id      pgtype.UUID
		sheetID pgtype.UUID
		status  string
		endTime pgtype.Timestamptz
		lat     pgtype.Float8
		lng     pgtype.Float8
	)

	err := s.Scan(
		&id, &sheetID, &status, &c.StartTime, &endTime,
		&c.Duration, &c.Location, &lat, &lng, &c.Remarks,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DutyStatusChange{}, domain.ErrNotFound
		}
		return domain.DutyStatusChange{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.LogSheetID = uuid.UUID(sheetID.Bytes)
	c.Status = domain.DutyStatus(status)
	if endTime.Valid {
		t := endTime.Time
		c.EndTime = &t
	}
	if lat.Valid {
		v := lat.Float64
		c.Lat = &v
	}
	if lng.Valid {
		v := lng.Float64
		c.Lng = &v
	}
	return c, nil
}
