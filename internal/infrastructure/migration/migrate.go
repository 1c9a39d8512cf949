package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Runner drives golang-migrate over the SQL file pairs in a directory.
type Runner struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// NewRunner wraps an open Postgres connection and a migrations directory.
func NewRunner(db *sql.DB, dir string, logger *zap.Logger) (*Runner, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}

	return &Runner{m: m, logger: logger}, nil
}

// Up applies every pending migration.
func (r *Runner) Up() error {
	return r.report("up", r.m.Up())
}

// Down rolls back every applied migration.
func (r *Runner) Down() error {
	return r.report("down", r.m.Down())
}

// Steps applies n migrations; negative n rolls back.
func (r *Runner) Steps(n int) error {
	return r.report(fmt.Sprintf("step %d", n), r.m.Steps(n))
}

// To migrates up or down until the schema is at version.
func (r *Runner) To(version uint) error {
	return r.report(fmt.Sprintf("goto %d", version), r.m.Migrate(version))
}

// Version reports the current schema version. A database with no applied
// migrations reports version 0, not an error.
func (r *Runner) Version() (uint, bool, error) {
	version, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL. Only for
// recovering a dirty schema state.
func (r *Runner) Force(version int) error {
	r.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := r.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the connected database.
func (r *Runner) Drop() error {
	r.logger.Warn("Dropping all database objects")
	if err := r.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the source and database handles.
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

func (r *Runner) report(action string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		r.logger.Info("Schema already up to date", zap.String("action", action))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration %s: %w", action, err)
	}

	version, dirty, verr := r.Version()
	if verr != nil {
		return verr
	}
	r.logger.Info("Migration applied",
		zap.String("action", action),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}
