package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"thrift-store-be/internal/config"
	"thrift-store-be/internal/db"
	"thrift-store-be/internal/logger"

	"go.uber.org/zap"
)

const schemaTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
`

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "./migrations", "directory holding *.sql migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	conn, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect db", zap.Error(err))
	}
	defer conn.Close()

	if err := run(conn, *mode, *dir); err != nil {
		logger.L().Fatal("migration failed", zap.String("mode", *mode), zap.Error(err))
	}
}

func run(conn *sql.DB, mode, migrationsDir string) error {
	if _, err := conn.Exec(schemaTable); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	// file names carry a timestamp prefix
	sort.Strings(files)

	switch mode {
	case "up":
		return runMigrationsUp(conn, files)
	case "down":
		return runMigrationsDown(conn, files)
	case "status":
		return printStatus(conn, files)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'status')", mode)
	}
}

func isApplied(conn *sql.DB, version string) (bool, error) {
	var exists bool
	err := conn.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// runMigrationsUp applies every pending file. Each file and its version row
// commit together, so a failed file leaves no record behind.
func runMigrationsUp(conn *sql.DB, files []string) error {
	log := logger.L().With(zap.String("mode", "up"))
	applied := 0

	for _, file := range files {
		version := filepath.Base(file)

		exists, err := isApplied(conn, version)
		if err != nil {
			return err
		}
		if exists {
			log.Debug("skipping applied migration", zap.String("version", version))
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		log.Info("applying migration", zap.String("version", version))
		err = inTx(conn, func(tx *sql.Tx) error {
			if _, err := tx.Exec(extractMigrationPart(string(content), "Up")); err != nil {
				return fmt.Errorf("migration failed (%s): %w", version, err)
			}
			if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
				return fmt.Errorf("failed to record migration version: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		applied++
	}

	log.Info("migrations complete", zap.Int("applied", applied))
	return nil
}

func runMigrationsDown(conn *sql.DB, files []string) error {
	log := logger.L().With(zap.String("mode", "down"))

	var lastVersion string
	err := conn.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`).Scan(&lastVersion)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	filePath := ""
	for _, f := range files {
		if filepath.Base(f) == lastVersion {
			filePath = f
			break
		}
	}
	if filePath == "" {
		return fmt.Errorf("migration file not found for version: %s", lastVersion)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	log.Info("rolling back migration", zap.String("version", lastVersion))
	err = inTx(conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(extractMigrationPart(string(content), "Down")); err != nil {
			return fmt.Errorf("rollback failed (%s): %w", lastVersion, err)
		}
		if _, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = $1`, lastVersion); err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("rollback successful", zap.String("version", lastVersion))
	return nil
}

func printStatus(conn *sql.DB, files []string) error {
	for _, file := range files {
		version := filepath.Base(file)
		exists, err := isApplied(conn, version)
		if err != nil {
			return err
		}
		state := "pending"
		if exists {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, version)
	}
	return nil
}

func inTx(conn *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func extractMigrationPart(content string, section string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "-- +migrate "+section) {
			inPart = true
			continue
		}
		if inPart && strings.HasPrefix(line, "-- +migrate") {
			break
		}
		if inPart {
			part.WriteString(line + "\n")
		}
	}
	return part.String()
}
