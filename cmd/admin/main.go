// Command admin manages the schema, API keys and links directly against the
// database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AndrewN04/url-shortner/internal/config"
	"github.com/AndrewN04/url-shortner/internal/events"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/db"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/logger"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/messaging"
	"github.com/spf13/cobra"
)

const commandTimeout = 30 * time.Second

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Administer the URL shortener database",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Nop()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// connect opens a pool using DATABASE_URL and returns the pepper alongside
// it. The caller closes the pool.
func connect(ctx context.Context) (*db.Postgres, string, error) {
	pgCfg, pepper, err := config.LoadDatabase()
	if err != nil {
		return nil, "", err
	}
	pg, err := db.ConnectPostgres(ctx, pgCfg)
	if err != nil {
		return nil, "", fmt.Errorf("connect to database: %w", err)
	}
	return pg, pepper, nil
}

// openPublisher builds the audit publisher from EVENTS_ENABLED and KAFKA_*.
// Call it after connect so the .env files are already loaded. A close
// failure is reported on stderr rather than failing the finished command.
func openPublisher(cmd *cobra.Command) (events.Publisher, func(), error) {
	pub, closePub, err := messaging.NewPublisher(config.LoadEvents())
	if err != nil {
		return nil, nil, fmt.Errorf("events publisher: %w", err)
	}
	return pub, func() {
		if err := closePub(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: closing events publisher:", err)
		}
	}, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), commandTimeout)
}
