// Package repo contains all database access for the HOS trip planner.
// Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly lets
// production code and transactional scopes share the same repo types, and
// lets integration tests pass a transaction that is rolled back after each
// test for free per-test isolation.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles one repo per resource, all backed by the same connection
// or transaction.
type Repos struct {
	Trips       TripRepo
	Stops       StopRepo
	Segments    RouteSegmentRepo
	LogSheets   LogSheetRepo
	DutyChanges DutyStatusRepo
}

// NewRepos constructs the full repo set over the given connection.
func NewRepos(db db) Repos {
	return Repos{
		Trips:       NewTripRepo(db),
		Stops:       NewStopRepo(db),
		Segments:    NewRouteSegmentRepo(db),
		LogSheets:   NewLogSheetRepo(db),
		DutyChanges: NewDutyStatusRepo(db),
	}
}

// Store is the root persistence handle: plain repos over the pool for
// single-statement work, and InTx for multi-record sequences that must
// commit or roll back as one unit (trip + stops + segment creation, log
// sheet + duty change seeding).
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store over the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Repos returns the non-transactional repo set.
func (s *Store) Repos() Repos {
	return NewRepos(s.pool)
}

// InTx runs fn with a repo set bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise, so a
// failure partway through a multi-record creation never leaves orphans.
func (s *Store) InTx(ctx context.Context, fn func(Repos) error) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
	if err != nil {
		return fmt.Errorf("repo.Store.InTx: %w", err)
	}
	return nil
}
