package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/finiquito/internal/api"
	"github.com/rgehrsitz/finiquito/internal/domain"
	"github.com/rgehrsitz/finiquito/internal/roster"
	"github.com/rgehrsitz/finiquito/internal/store/sqlite"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		addr    string
		dbPath  string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator and the stored roster over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.engine(domain.DefaultLFTRules())
			if err != nil {
				return err
			}
			store, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r, err := roster.Open(ctx, engine, store)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.NewRouter(api.NewHandler(r, engine, opts.logger), origins),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				opts.logger.Infof("listening on %s (roster %s)", addr, dbPath)
				if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				opts.logger.Infof("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", defaultDBPath, "SQLite roster database")
	cmd.Flags().StringSliceVar(&origins, "origins", nil, "Allowed CORS origins (defaults to local dev servers)")
	return cmd
}
