package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ai-interviewer/database/migrations"
	"ai-interviewer/internal/config"
	"ai-interviewer/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrate applies the embedded migrations for driver in the given direction.
func Migrate(ctx context.Context, db *sqlx.DB, driver string, direction Direction) error {
	dir := "postgres"
	if driver == config.DBDriverOracle {
		dir = "oracle"
	}
	src, err := iofs.New(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	defer src.Close()

	switch driver {
	case config.DBDriverPostgres:
		return migratePostgres(db, src, direction)
	case config.DBDriverOracle:
		return migrateOracle(ctx, db, src, direction)
	default:
		return fmt.Errorf("unsupported driver for migrations: %s", driver)
	}
}

func migratePostgres(db *sqlx.DB, src source.Driver, direction Direction) error {
	driver, err := pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction: %s", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}
	logger.Get().Info("Migrations completed", zap.String("driver", config.DBDriverPostgres), zap.String("direction", string(direction)))
	return nil
}

// migrateOracle walks the migration source itself and records applied versions
// in schema_migrations.
func migrateOracle(ctx context.Context, db *sqlx.DB, src source.Driver, direction Direction) error {
	if direction != Up {
		return fmt.Errorf("oracle migrations only support %q", Up)
	}
	if err := ensureVersionTable(ctx, db); err != nil {
		return err
	}

	var versions []int64
	if err := db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}
	applied := make(map[uint]bool, len(versions))
	for _, v := range versions {
		applied[uint(v)] = true
	}

	version, err := src.First()
	for err == nil {
		if !applied[version] {
			if applyErr := applyOracleVersion(ctx, db, src, version); applyErr != nil {
				return applyErr
			}
		}
		version, err = src.Next(version)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to iterate migrations: %w", err)
	}
	logger.Get().Info("Migrations completed", zap.String("driver", config.DBDriverOracle))
	return nil
}

func ensureVersionTable(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'"); err != nil {
		return fmt.Errorf("failed to inspect schema_migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, "CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY, applied_at TIMESTAMP NOT NULL)"); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	return nil
}

func applyOracleVersion(ctx context.Context, db *sqlx.DB, src source.Driver, version uint) error {
	r, identifier, err := src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("failed to read migration %d: %w", version, err)
	}

	// Oracle DDL is auto-committed, so statements run one by one outside a transaction.
	for _, stmt := range SplitStatements(string(body)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d_%s failed: %w", version, identifier, err)
		}
	}
	if _, err := db.ExecContext(ctx, db.Rebind("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)"), int64(version), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", version, err)
	}
	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", identifier))
	return nil
}

// SplitStatements splits a migration file on statement-terminating semicolons.
func SplitStatements(script string) []string {
	var stmts []string
	var current strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			stmts = append(stmts, stmt)
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
