package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/forcetree/internal/dataset"
	"github.com/ziadkadry99/forcetree/internal/db"
	"github.com/ziadkadry99/forcetree/internal/journal"
	"github.com/ziadkadry99/forcetree/internal/metrics"
	"github.com/ziadkadry99/forcetree/internal/page"
	"github.com/ziadkadry99/forcetree/internal/server"
	"github.com/ziadkadry99/forcetree/internal/session"
	"github.com/ziadkadry99/forcetree/internal/tree"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live diagram",
	Long:  `Loads the dataset and serves the interactive diagram, its websocket and the REST API. The dataset is reloaded when it changes on disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		root, err := loadDataset(cfg)
		if err != nil {
			return err
		}

		// Open the journal database.
		var database *db.DB
		if cfg.JournalPath == "" {
			database, err = db.OpenMemory()
		} else {
			database, err = db.Open(cfg.JournalPath)
		}
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer database.Close()
		store := journal.NewStore(database)
		if n, err := pruneJournal(cmd.Context(), store, cfg.JournalRetentionDays, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: pruning journal: %v\n", err)
		} else if n > 0 && verbose {
			fmt.Fprintf(os.Stderr, "Pruned %d journal entries older than %d days\n", n, cfg.JournalRetentionDays)
		}

		m := metrics.New()
		hub := session.NewHub(root, cfg.ViewOptions(), store).WithMetrics(m)
		if _, err := hub.InitialFrame(); err != nil {
			return fmt.Errorf("rendering %s: %w", cfg.DataPath, err)
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, database)

		r := srv.Router()
		page.RegisterRoutes(r)
		hub.RegisterRoutes(r)
		journal.RegisterRoutes(r, store)
		m.RegisterRoutes(r)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Watch {
			w, err := dataset.NewWatcher(cfg.DataPath, dataset.WithOnReload(func(next *tree.Node) {
				fmt.Fprintf(os.Stderr, "Dataset changed, reloading %s\n", cfg.DataPath)
				hub.Reload(next)
			}))
			if err != nil {
				return fmt.Errorf("watching dataset: %w", err)
			}
			if err := w.Start(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not watch %s: %v\n", cfg.DataPath, err)
			} else {
				defer w.Stop()
			}
		}

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		journalDesc := cfg.JournalPath
		if journalDesc == "" {
			journalDesc = "(in memory)"
		}
		fmt.Fprintf(os.Stderr, "forcetree v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Dataset: %s\n", cfg.DataPath)
		fmt.Fprintf(os.Stderr, "  Journal: %s\n", journalDesc)
		if verbose {
			fmt.Fprintf(os.Stderr, "  View: %+v\n", cfg.View)
			fmt.Fprintf(os.Stderr, "  Color: %+v\n", cfg.Color)
			fmt.Fprintf(os.Stderr, "  Simulation: %+v\n", cfg.Simulation)
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
