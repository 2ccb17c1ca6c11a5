// Package migration applies the versioned Postgres schema with
// golang-migrate and authors new migration file pairs.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

var errNoSource = errors.New("migration source has neither Dir nor FS")

// Source locates the migration files. Dir wins over FS when both are set.
type Source struct {
	Dir string // directory on disk
	FS  fs.FS  // e.g. the embedded migrations.FS
}

// Migrator drives golang-migrate against one Postgres database.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// Open builds a Migrator over db. Close the Migrator before db.
func Open(db *sql.DB, src Source, log *zap.Logger) (*Migrator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if src.Dir == "" && src.FS == nil {
		return nil, errNoSource
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	var m *migrate.Migrate
	if src.Dir != "" {
		m, err = migrate.NewWithDatabaseInstance("file://"+src.Dir, "postgres", driver)
	} else {
		files, ferr := iofs.New(src.FS, ".")
		if ferr != nil {
			return nil, fmt.Errorf("open embedded migrations: %w", ferr)
		}
		m, err = migrate.NewWithInstance("iofs", files, "postgres", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return &Migrator{m: m, log: log.Named("migrate")}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error { return mg.apply("up", mg.m.Up) }

// Down rolls every migration back.
func (mg *Migrator) Down() error { return mg.apply("down", mg.m.Down) }

// Steps moves n migrations forward, or back when n is negative.
func (mg *Migrator) Steps(n int) error {
	return mg.apply(fmt.Sprintf("steps %+d", n), func() error { return mg.m.Steps(n) })
}

// GoTo migrates up or down to version.
func (mg *Migrator) GoTo(version uint) error {
	return mg.apply(fmt.Sprintf("goto %d", version), func() error { return mg.m.Migrate(version) })
}

// apply runs op, treating "nothing to do" as success, and logs the version
// the schema ends up at.
func (mg *Migrator) apply(op string, fn func() error) error {
	mg.log.Info("Migrating", zap.String("op", op))

	err := fn()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info("Schema already current", zap.String("op", op))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", op, err)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	mg.log.Info("Migration finished", zap.String("op", op), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Version reports the applied version and whether the last migration
// failed halfway. An empty schema is version 0.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied and clean without running anything;
// -1 clears the record. Used to recover from a dirty schema.
func (mg *Migrator) Force(version int) error {
	mg.log.Warn("Forcing schema version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database.
func (mg *Migrator) Drop() error {
	mg.log.Warn("Dropping all database objects")
	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
