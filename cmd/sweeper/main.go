// Command sweeper runs one pass of the automatic status sweep and exits.
// It is meant to be invoked by cron (hourly is the documented cadence;
// sub-hourly is safe, the pass is idempotent). Exit code 0 covers full
// and partial success; non-zero means setup failed and nothing ran.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/mvcastillo/healthoffice-backend/config"
	"github.com/mvcastillo/healthoffice-backend/internal/sweeper"
	"github.com/mvcastillo/healthoffice-backend/pkg/storage/mariadb"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339, NoColor: true}).
		With().Timestamp().Logger()

	config.LoadConfig()

	db, err := mariadb.Open()
	if err != nil {
		// Fatal exits non-zero so the scheduler's monitoring can alert
		// on repeated failures.
		logger.Fatal().Err(err).Msg("cannot open storage")
	}
	defer db.Close()

	now := time.Now()
	result := sweeper.New(db, logger).RunAllUpdates(now)

	failed := result.Errs()
	logger.Info().
		Int64("updated", result.Updated).
		Int("failed_types", len(failed)).
		Msg("sweep run finished")

	// Partial failure still exits 0: the per-type errors are already on
	// the log sink, and the next scheduled run retries the same
	// predicates.
	os.Exit(0)
}
