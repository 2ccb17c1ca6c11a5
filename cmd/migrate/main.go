// Command migrate applies and authors the Postgres schema migrations of the
// website idea backend.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"

	"github.com/ideagen/backend/internal/infrastructure/config"
	"github.com/ideagen/backend/internal/infrastructure/logger"
	"github.com/ideagen/backend/internal/infrastructure/migration"
	"github.com/ideagen/backend/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

var errUsage = errors.New("invalid usage")

// schema is the subset of migration.Migrator the schema commands drive
type schema interface {
	Up() error
	Down() error
	Steps(n int) error
	GoTo(version uint) error
	Version() (uint, bool, error)
	Force(version int) error
	Drop() error
}

type env struct {
	log    *zap.Logger
	out    io.Writer
	dir    string // empty means the SQL compiled into the binary
	schema schema
}

type command struct {
	args    string
	summary string
	schema  bool // needs a database connection
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"up":      {summary: "Apply all pending migrations", schema: true, run: runUp},
	"down":    {summary: "Roll back all migrations", schema: true, run: runDown},
	"step":    {args: "<n>", summary: "Apply n migrations (negative rolls back)", schema: true, run: runStep},
	"goto":    {args: "<version>", summary: "Migrate to a specific version", schema: true, run: runGoTo},
	"version": {summary: "Show the applied version", schema: true, run: runVersion},
	"force":   {args: "<version>", summary: "Set the version without migrating (repairs a dirty state)", schema: true, run: runForce},
	"drop":    {args: "-confirm", summary: "Drop every database object", schema: true, run: runDrop},
	"create":  {args: "<name> [description]", summary: "Write the next numbered up/down file pair", run: runCreate},
	"list":    {summary: "List migration files", run: runList},
}

func main() {
	var dir, logLevel string
	flag.StringVar(&dir, "path", "", "Migrations directory (default: SQL compiled into the binary; ./migrations for create/list)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage(os.Stderr)
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	if dir != "" {
		if dir, err = filepath.Abs(dir); err != nil {
			log.Fatal("Invalid migrations path", zap.Error(err))
		}
	}

	e := &env{log: log, out: os.Stdout, dir: dir}
	if cmd.schema {
		closeFn, err := e.openSchema()
		if err != nil {
			log.Fatal("Failed to open migrator", zap.Error(err))
		}
		defer closeFn()
	}

	log.Debug("Running migration command", zap.String("command", args[0]), zap.String("path", dir))
	if err := cmd.run(e, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%v\nusage: migrate %s %s\n", err, args[0], cmd.args)
			os.Exit(2)
		}
		log.Fatal("Migration command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

// openSchema connects to the configured Postgres database and builds the migrator
func (e *env) openSchema() (func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return nil, fmt.Errorf("SQL migrations target postgres, configured driver is %q (sqlite uses database.auto_migrate)", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.Open(db, migration.Source{Dir: e.dir, FS: migrations.FS}, e.log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	e.schema = m
	return func() {
		if err := m.Close(); err != nil {
			e.log.Warn("Failed to close migrator", zap.Error(err))
		}
		_ = db.Close()
	}, nil
}

func (e *env) filesDir() string {
	if e.dir == "" {
		return defaultMigrationsDir
	}
	return e.dir
}

func runUp(e *env, _ []string) error   { return e.schema.Up() }
func runDown(e *env, _ []string) error { return e.schema.Down() }

func runStep(e *env, args []string) error {
	n, err := intArg(args, "step count")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: step count cannot be 0", errUsage)
	}
	return e.schema.Steps(n)
}

func runGoTo(e *env, args []string) error {
	n, err := intArg(args, "version")
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("%w: version must be positive", errUsage)
	}
	return e.schema.GoTo(uint(n))
}

func runForce(e *env, args []string) error {
	n, err := intArg(args, "version")
	if err != nil {
		return err
	}
	// -1 clears the version entirely
	if n < -1 {
		return fmt.Errorf("%w: version must be -1 or greater", errUsage)
	}
	return e.schema.Force(n)
}

func runVersion(e *env, _ []string) error {
	version, dirty, err := e.schema.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		fmt.Fprintln(e.out, "no migrations applied")
		return nil
	}
	state := "clean"
	if dirty {
		state = "dirty"
	}
	fmt.Fprintf(e.out, "version %d (%s)\n", version, state)
	return nil
}

func runDrop(e *env, args []string) error {
	if !slices.Contains(args, "-confirm") && !slices.Contains(args, "--confirm") {
		return fmt.Errorf("%w: drop destroys all data, pass -confirm", errUsage)
	}
	return e.schema.Drop()
}

func runCreate(e *env, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: migration name required", errUsage)
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(e.filesDir(), args[0], description)
	if err != nil {
		return err
	}
	e.log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
	fmt.Fprintln(e.out, mf.UpPath)
	fmt.Fprintln(e.out, mf.DownPath)
	return nil
}

func runList(e *env, _ []string) error {
	names, err := migration.ListMigrations(e.filesDir())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(e.out, "no migrations found")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(e.out, name)
	}
	return nil
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s required", errUsage, what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", errUsage, what, args[0])
	}
	return n, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Website Idea Generator - database migrations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: migrate [-path dir] [-log-level level] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(w, "  %-26s %s\n", name+" "+cmd.args, cmd.summary)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Connection settings come from config.toml or IDEAGEN_DATABASE_* variables.")
}
