// Package migrate applies the goose schema migrations for the PostgreSQL
// store.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/shishir-py/personal-portfolio-sub000/db"
)

const migrateTimeout = time.Minute

// Runner wraps database migration capabilities.
type Runner struct {
	pool   *pgxpool.Pool
	fsys   fs.FS
	source string
	log    *slog.Logger
}

// New returns a migration runner backed by goose. Migrations are read from
// migrationsDir when it exists on disk, otherwise from the embedded copy.
func New(pool *pgxpool.Pool, migrationsDir string, log *slog.Logger) (Runner, error) {
	if pool == nil {
		return Runner{}, errors.New("nil pool provided")
	}
	if log == nil {
		log = slog.Default()
	}
	fsys, source, err := Source(migrationsDir)
	if err != nil {
		return Runner{}, err
	}
	return Runner{pool: pool, fsys: fsys, source: source, log: log}, nil
}

// Source resolves the migration files: a directory on disk wins, the
// embedded set is the fallback.
func Source(migrationsDir string) (fs.FS, string, error) {
	if migrationsDir != "" {
		info, err := os.Stat(migrationsDir)
		switch {
		case err == nil && info.IsDir():
			return os.DirFS(migrationsDir), migrationsDir, nil
		case err == nil:
			return nil, "", fmt.Errorf("migrations path %s is not a directory", migrationsDir)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, "", fmt.Errorf("locate migrations dir: %w", err)
		}
	}
	sub, err := fs.Sub(db.Migrations, "migrations")
	if err != nil {
		return nil, "", fmt.Errorf("embedded migrations: %w", err)
	}
	return sub, "embedded", nil
}

// Ensure applies pending migrations.
func (r Runner) Ensure(ctx context.Context) error {
	return r.withDB(func(sqlDB *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		defer cancel()

		r.log.Info("applying migrations", "source", r.source)
		if err := goose.UpContext(runCtx, sqlDB, "."); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		version, err := goose.GetDBVersionContext(runCtx, sqlDB)
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		r.log.Info("migrations applied", "version", version)
		return nil
	})
}

// Status reports applied and pending migrations.
func (r Runner) Status(ctx context.Context) error {
	return r.withDB(func(sqlDB *sql.DB) error {
		r.log.Info("migration status", "source", r.source)
		if err := goose.StatusContext(ctx, sqlDB, "."); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
		return nil
	})
}

// Down rolls back migrations either to the previous version or a specific target version.
func (r Runner) Down(ctx context.Context, targetVersion int64) error {
	return r.withDB(func(sqlDB *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		defer cancel()

		if targetVersion > 0 {
			r.log.Info("rolling back migrations", "target", targetVersion)
			if err := goose.DownToContext(runCtx, sqlDB, ".", targetVersion); err != nil {
				return fmt.Errorf("rollback to version %d: %w", targetVersion, err)
			}
		} else {
			r.log.Info("rolling back latest migration")
			if err := goose.DownContext(runCtx, sqlDB, "."); err != nil {
				return fmt.Errorf("rollback latest migration: %w", err)
			}
		}

		r.log.Info("rollback complete")
		return nil
	})
}

// Ping ensures the database connection is alive.
func (r Runner) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close releases underlying connections.
func (r Runner) Close() {
	r.pool.Close()
}

// withDB borrows the pool through database/sql for goose. goose keeps its
// dialect and base FS in package state, so both are set on every call.
func (r Runner) withDB(fn func(*sql.DB) error) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}
	goose.SetBaseFS(r.fsys)
	defer goose.SetBaseFS(nil)

	sqlDB := stdlib.OpenDBFromPool(r.pool)
	defer sqlDB.Close()
	return fn(sqlDB)
}
