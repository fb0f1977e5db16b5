package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var DB *sqlx.DB

// Init opens the PostgreSQL pool, retrying while the database container
// comes up alongside the server.
func Init(databaseURL string) error {
	const maxRetries = 10
	const retryInterval = 2 * time.Second

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		DB, err = sqlx.Connect("postgres", databaseURL)
		if err == nil {
			log.Info().Msg("connected to database")
			return nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Dur("retry_in", retryInterval).
			Msg("database connection failed")
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
}

// RunMigrations executes every "*.up.sql" under migrationsPath in name
// order. Migrations are idempotent (CREATE IF NOT EXISTS) so they run at
// every startup; the first failing file aborts the run.
func RunMigrations(migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)

	for _, file := range files {
		stmt, err := os.ReadFile(file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("failed to read migration")
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		if len(stmt) == 0 {
			continue
		}
		if _, err := DB.Exec(string(stmt)); err != nil {
			return fmt.Errorf("error executing migration %q: %w", file, err)
		}
	}

	log.Info().Int("count", len(files)).Msg("migrations applied")
	return nil
}
