// Package postgres implements store.Store backed by PostgreSQL.
//
// Connections come from the database/sql pool over the pgx stdlib
// driver, so each operation acquires and releases a connection on
// every exit path. Schema management runs through goose migrations
// embedded in the binary, applied idempotently on Ensure.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jmcleod/authgate/store"
	"github.com/jmcleod/authgate/store/postgres/migrations"
)

// Store implements store.Store backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// New returns a Store over an existing database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open creates a database/sql pool for the DSN and returns a new
// Store. The connection is not validated here; Ensure and the lookup
// operations surface store.ErrUnavailable when the server is
// unreachable.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}
	return New(db), nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure applies the embedded migrations. All statements are
// idempotent, so it is safe on every process start.
func (s *Store) Ensure(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(ctx, s.db, "."); err != nil {
		return classify(err)
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, username string) (*store.User, error) {
	const query = `SELECT id, username, password_hash FROM users WHERE username = $1`

	user := &store.User{}
	err := s.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		return nil, classify(err)
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*store.User, error) {
	const query = `INSERT INTO users (username, password_hash)
	 VALUES ($1, $2)
	 RETURNING id`

	user := &store.User{Username: username, PasswordHash: passwordHash}
	err := s.db.QueryRowContext(ctx, query, username, passwordHash).Scan(&user.ID)
	if err != nil {
		return nil, classify(err)
	}
	return user, nil
}

// classify maps driver-level errors onto the store taxonomy so that
// callers can tell "no match" and "store unavailable" apart from plain
// query failures.
func classify(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		// unique_violation
		return fmt.Errorf("%w: %v", store.ErrExists, err)
	}
	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return fmt.Errorf("postgres query: %w", err)
}
