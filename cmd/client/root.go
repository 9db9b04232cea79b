package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-notes/internal/adapter"
	"github.com/MKhiriev/go-notes/internal/client"
	"github.com/MKhiriev/go-notes/internal/config"
	"github.com/MKhiriev/go-notes/internal/logger"
	"github.com/MKhiriev/go-notes/internal/service"
	"github.com/MKhiriev/go-notes/internal/store"
	"github.com/MKhiriev/go-notes/internal/tui"
	"github.com/MKhiriev/go-notes/models"
)

var (
	flagConfig        config.StructuredConfig
	flagLogFile       string
	flagServerAddress string
)

var rootCmd = &cobra.Command{
	Use:   "go-notes",
	Short: "Minimal markdown notes with share links",
	Long: `go-notes keeps markdown notes on a go-notes server.

Run it without a command to open the terminal editor. Notes save themselves
while you type and can be published with a share link.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, cmd.OutOrStdout(), func(ctx context.Context, app *client.App) error {
			return app.Run(ctx)
		})
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagServerAddress, "server", "a", "", "server address, host:port or base URL")
	flags.DurationVar(&flagConfig.Adapter.RequestTimeout, "timeout", 0, "timeout of a single request (e.g. 10s)")
	flags.StringVarP(&flagConfig.Storage.DB.DSN, "db", "d", "", "path of the local database file")
	flags.StringVar(&flagConfig.App.HashKey, "hash-key", "", "request integrity hash key")
	flags.DurationVar(&flagConfig.Workers.DraftFlushInterval, "flush-interval", 0, "how often unsaved drafts are retried")
	flags.StringVarP(&flagConfig.JSONFilePath, "config", "c", "", "JSON config file path")
	flags.StringVar(&flagLogFile, "log-file", logger.DefaultClientLogPath(), "log file path")
}

// withApp builds the client from the flags and runs fn with a context that
// is cancelled on SIGINT or SIGTERM. Command reports are written to out.
func withApp(cmd *cobra.Command, out io.Writer, fn func(ctx context.Context, app *client.App) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewClientLogger("go-notes-client", flagLogFile)

	flagConfig.Adapter.HTTPAddress = flagServerAddress
	cfg, err := config.GetClientConfig(&flagConfig)
	if err != nil {
		return fmt.Errorf("get configs: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("open local storage: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("failed to close local storage")
		}
	}()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services := service.NewClientServices(storages, serverAdapter, client.PrintPushes(out), log)
	ui := tui.New(services, buildInfo, log)

	app := client.NewApp(services, ui, cfg.Workers.DraftFlushInterval, buildInfo.Version(), out, log)

	start := time.Now()
	err = fn(ctx, app)
	log.Debug().Str("command", cmd.Name()).Dur("took", time.Since(start)).Err(err).Msg("command finished")
	return err
}
