package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"design-dojo/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

const oracleVersionTable = `CREATE TABLE schema_migrations (
    version    VARCHAR2(255) NOT NULL,
    applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL,
    CONSTRAINT pk_schema_migrations PRIMARY KEY (version)
)`

// RunMigrations applies every pending up migration for the driver.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver string) error {
	if driver == DriverPostgres {
		return runPostgresMigrations(db)
	}
	return runOracleMigrations(ctx, db)
}

func runPostgresMigrations(db *sqlx.DB) error {
	src, err := iofs.New(migrationsFS, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("could not open postgres migrations: %w", err)
	}
	drv, err := pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", drv)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply postgres migrations: %w", err)
	}
	version, dirty, _ := m.Version()
	logger.Get().Info("Postgres migrations completed", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// runOracleMigrations executes embedded .up.sql files statement by statement
// and records each applied file in schema_migrations.
func runOracleMigrations(ctx context.Context, db *sqlx.DB) error {
	l := logger.Get()

	if _, err := db.ExecContext(ctx, oracleVersionTable); err != nil && !isOracleError(err, oraNameInUse) {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}

	var versions []string
	if err := db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return fmt.Errorf("could not read applied migrations: %w", err)
	}
	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	files, err := fs.Glob(migrationsFS, "migrations/oracle/*.up.sql")
	if err != nil {
		return fmt.Errorf("could not list oracle migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".up.sql")
		if applied[version] {
			continue
		}

		content, err := migrationsFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", version, err)
			}
		}
		if _, err := db.ExecContext(ctx, db.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), version); err != nil {
			return fmt.Errorf("could not record migration %s: %w", version, err)
		}
		l.Info("Executed migration", zap.String("version", version))
	}

	l.Info("Oracle migrations completed", zap.Int("files", len(files)))
	return nil
}

// SplitStatements splits a script on semicolons that end a line. Oracle
// rejects multi-statement execs and trailing semicolons.
func SplitStatements(script string) []string {
	var stmts []string
	var current strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(strings.TrimRight(line, " \t\r"), ";"))
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				stmts = append(stmts, stmt)
			}
			current.Reset()
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		stmts = append(stmts, stmt)
	}
	return stmts
}
