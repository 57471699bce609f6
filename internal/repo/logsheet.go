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

// LogSheetRepo defines the persistence operations for LogSheets.
type LogSheetRepo interface {
	// Upsert atomically inserts a log sheet for (trip, user, date) or, when
	// one already exists, refreshes only its vehicle/trailer metadata
	// (empty inputs leave existing values untouched). The returned bool is
	// true when a new row was inserted. A single statement with ON CONFLICT
	// makes concurrent generation for the same date safe: exactly one
	// caller observes inserted=true.
	Upsert(ctx context.Context, sheet domain.LogSheet) (domain.LogSheet, bool, error)

	// GetByID retrieves a log sheet by its UUID.
	// Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.LogSheet, error)

	// ListByTrip returns a trip's log sheets ordered by date.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error)

	// ListByUser returns all log sheets for an owner, most recent date first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.LogSheet, error)

	// Certify marks a sheet certified if and only if it is not already;
	// the state check and the write are one statement. Returns
	// domain.ErrNotFound when no uncertified sheet with that ID exists;
	// callers distinguish "absent" from "already certified" with a follow-up
	// read.
	Certify(ctx context.Context, id uuid.UUID, certifiedBy uuid.UUID) (domain.LogSheet, error)

	// UpdateVisualData replaces the sheet's visual annotation blob.
	// Returns domain.ErrNotFound if the sheet does not exist.
	UpdateVisualData(ctx context.Context, id uuid.UUID, data []byte) (domain.LogSheet, error)
}

// pgLogSheetRepo is the Postgres implementation of LogSheetRepo.
type pgLogSheetRepo struct {
	db db
}

// NewLogSheetRepo constructs a LogSheetRepo backed by the provided db
// connection.
func NewLogSheetRepo(db db) LogSheetRepo {
	return &pgLogSheetRepo{db: db}
}

const logSheetColumns = `
	id, trip_id, user_id, log_date, status,
	vehicle_number, trailer_number, visual_data,
	certified_by, certified_at, created_at, updated_at`

func (r *pgLogSheetRepo) Upsert(ctx context.Context, sheet domain.LogSheet) (domain.LogSheet, bool, error) {
	// xmax = 0 distinguishes a fresh insert from a conflict-update: updated
	// rows carry the deleting transaction's ID in xmax, inserts carry zero.
	const q = `
		INSERT INTO log_sheets (trip_id, user_id, log_date, vehicle_number, trailer_number)
		VALUES (@trip_id, @user_id, @log_date, @vehicle_number, @trailer_number)
		ON CONFLICT (trip_id, user_id, log_date) DO UPDATE
		SET vehicle_number = CASE WHEN EXCLUDED.vehicle_number <> ''
		                          THEN EXCLUDED.vehicle_number
		                          ELSE log_sheets.vehicle_number END,
		    trailer_number = CASE WHEN EXCLUDED.trailer_number <> ''
		                          THEN EXCLUDED.trailer_number
		                          ELSE log_sheets.trailer_number END,
		    updated_at = now()
		RETURNING` + logSheetColumns + `, (xmax = 0) AS inserted`

	args := pgx.NamedArgs{
		"trip_id":        sheet.TripID,
		"user_id":        sheet.UserID,
		"log_date":       sheet.Date,
		"vehicle_number": sheet.VehicleNumber,
		"trailer_number": sheet.TrailerNumber,
	}

	var inserted bool
	result, err := scanLogSheet(r.db.QueryRow(ctx, q, args), &inserted)
	if err != nil {
		return domain.LogSheet{}, false, fmt.Errorf("repo.LogSheetRepo.Upsert: %w", err)
	}
	return result, inserted, nil
}

func (r *pgLogSheetRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.LogSheet, error) {
	const q = `SELECT` + logSheetColumns + `
		FROM log_sheets
		WHERE id = @id`

	result, err := scanLogSheet(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}), nil)
	if err != nil {
		return domain.LogSheet{}, fmt.Errorf("repo.LogSheetRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgLogSheetRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error) {
	const q = `SELECT` + logSheetColumns + `
		FROM log_sheets
		WHERE trip_id = @trip_id
		ORDER BY log_date`

	return r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID}, "ListByTrip")
}

func (r *pgLogSheetRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.LogSheet, error) {
	const q = `SELECT` + logSheetColumns + `
		FROM log_sheets
		WHERE user_id = @user_id
		ORDER BY log_date DESC`

	return r.list(ctx, q, pgx.NamedArgs{"user_id": userID}, "ListByUser")
}

func (r *pgLogSheetRepo) list(ctx context.Context, q string, args pgx.NamedArgs, op string) ([]domain.LogSheet, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.LogSheetRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var sheets []domain.LogSheet
	for rows.Next() {
		sheet, err := scanLogSheet(rows, nil)
		if err != nil {
			return nil, fmt.Errorf("repo.LogSheetRepo.%s: scan: %w", op, err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LogSheetRepo.%s: rows: %w", op, err)
	}
	return sheets, nil
}

func (r *pgLogSheetRepo) Certify(ctx context.Context, id uuid.UUID, certifiedBy uuid.UUID) (domain.LogSheet, error) {
	const q = `
		UPDATE log_sheets
		SET status = 'certified',
		    certified_by = @certified_by,
		    certified_at = now(),
		    updated_at = now()
		WHERE id = @id AND status <> 'certified'
		RETURNING` + logSheetColumns

	args := pgx.NamedArgs{"id": id, "certified_by": certifiedBy}
	result, err := scanLogSheet(r.db.QueryRow(ctx, q, args), nil)
	if err != nil {
		return domain.LogSheet{}, fmt.Errorf("repo.LogSheetRepo.Certify: %w", err)
	}
	return result, nil
}

func (r *pgLogSheetRepo) UpdateVisualData(ctx context.Context, id uuid.UUID, data []byte) (domain.LogSheet, error) {
	const q = `
		UPDATE log_sheets
		SET visual_data = @visual_data, updated_at = now()
		WHERE id = @id
		RETURNING` + logSheetColumns

	args := pgx.NamedArgs{"id": id, "visual_data": data}
	result, err := scanLogSheet(r.db.QueryRow(ctx, q, args), nil)
	if err != nil {
		return domain.LogSheet{}, fmt.Errorf("repo.LogSheetRepo.UpdateVisualData: %w", err)
	}
	return result, nil
}

// scanLogSheet maps a single database row into a domain.LogSheet.
// inserted, when non-nil, receives the trailing "inserted" column scanned
// by Upsert.
func scanLogSheet(s scanner, inserted *bool) (domain.LogSheet, error) {
	var (
		sheet       domain.LogSheet
		id          pgtype.UUID
		tripID      pgtype.UUID
		userID      pgtype.UUID
		logDate     pgtype.Date
		status      string
		visual      []byte
		certifiedBy pgtype.UUID
		certifiedAt pgtype.Timestamptz
	)

	dest := []any{
		&id, &tripID, &userID, &logDate, &status,
		&sheet.VehicleNumber, &sheet.TrailerNumber, &visual,
		&certifiedBy, &certifiedAt, &sheet.CreatedAt, &sheet.UpdatedAt,
	}
	if inserted != nil {
		dest = append(dest, inserted)
	}

	if err := s.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LogSheet{}, domain.ErrNotFound
		}
		return domain.LogSheet{}, err
	}

	sheet.ID = uuid.UUID(id.Bytes)
	sheet.TripID = uuid.UUID(tripID.Bytes)
	sheet.UserID = uuid.UUID(userID.Bytes)
	sheet.Date = logDate.Time
	sheet.Status = domain.LogStatus(status)
	sheet.VisualData = visual
	if certifiedBy.Valid {
		by := uuid.UUID(certifiedBy.Bytes)
		sheet.CertifiedBy = &by
	}
	if certifiedAt.Valid {
		at := certifiedAt.Time
		sheet.CertifiedAt = &at
	}
	return sheet, nil
}
