// Package mysql persists the registry in MySQL. Every WithinTx call runs one
// serializable transaction; repositories pick it up from the context.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_registry/internal/domain"
)

const (
	errDuplicateKey = 1062
	errLockWait     = 1205
	errDeadlock     = 1213

	maxTxAttempts = 3
)

type txKey struct{}

// conn is the part of *sql.DB and *sql.Tx the repositories use.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// Open connects and pings. The DSN must carry parseTime=true.
func Open(dsn string) (*Store, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	if !cfg.ParseTime {
		cfg.ParseTime = true
	}
	cfg.Loc = time.UTC
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) DB() *sql.DB                    { return s.db }
func (s *Store) Close() error                   { return s.db.Close() }
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Guests() *GuestRepo       { return &GuestRepo{s: s} }
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{s: s} }
func (s *Store) Rooms() *RoomRepo         { return &RoomRepo{s: s} }
func (s *Store) Bookings() *BookingRepo   { return &BookingRepo{s: s} }
func (s *Store) Resources() *ResourceRepo { return &ResourceRepo{s: s} }

// WithinTx joins the transaction already on ctx, or begins one. A deadlock
// or lock wait timeout restarts the whole transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if !retryable(err) {
			return err
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("transaction conflict, retrying")
	}
	return err
}

func (s *Store) runTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) conn(ctx context.Context) conn {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func retryable(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && (me.Number == errDeadlock || me.Number == errLockWait)
}

// dbErr maps unique key violations onto the domain; anything else passes
// through unchanged.
func dbErr(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == errDuplicateKey {
		return fmt.Errorf("%w: %s", domain.ErrIllegalOperation, me.Message)
	}
	return err
}

func (s *Store) exists(ctx context.Context, table string, id int64) (bool, error) {
	var ok bool
	err := s.conn(ctx).QueryRowContext(ctx, fmt.Sprintf(existsSQL, table), id).Scan(&ok)
	return ok, err
}

// deleted turns a zero-row delete into ErrNotFound.
func deleted(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// pairs reads (owner, id) rows into owner -> ids.
func pairs(ctx context.Context, c conn, query string, args ...any) (map[int64][]int64, error) {
	rows, err := c.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[int64][]int64{}
	for rows.Next() {
		var owner, id int64
		if err := rows.Scan(&owner, &id); err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], id)
	}
	return out, rows.Err()
}

func ids(ctx context.Context, c conn, query string, args ...any) ([]int64, error) {
	rows, err := c.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// orEmpty keeps JSON output as [] rather than null.
func orEmpty(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}

func nullInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func refID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
