package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// DB wraps the sqlx handle used by repositories. Pool is only set for
// postgres, where the sql.DB is backed by a pgx pool.
type DB struct {
	*sqlx.DB
	Pool *pgxpool.Pool
}

func New(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case DriverPostgres, "":
		cfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, err
		}
		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		db := sqlx.NewDb(stdlib.OpenDBFromPool(p), DriverPostgres)
		if err := db.PingContext(ctx); err != nil {
			p.Close()
			return nil, err
		}
		return &DB{DB: db, Pool: p}, nil
	case DriverSQLite:
		db, err := sqlx.Open(DriverSQLite, dsn)
		if err != nil {
			return nil, err
		}
		// pragmas are per connection, so keep exactly one.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &DB{DB: db}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

func (d *DB) Close() error {
	err := d.DB.Close()
	if d.Pool != nil {
		d.Pool.Close()
	}
	return err
}

// IsUniqueViolation reports whether err comes from a UNIQUE constraint on
// either supported backend.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
