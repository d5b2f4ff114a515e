package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/oukeidos/caplet/internal/devserver"
	"github.com/oukeidos/caplet/internal/logger"
)

func newDevserverCmd(opts *globalOptions) *cobra.Command {
	var (
		bind   string
		dbPath string
		secret string
	)

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local identity and record-store backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(opts); err != nil {
				return err
			}
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}

			store, err := devserver.OpenStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := &http.Server{
				Addr:              bind,
				Handler:           devserver.NewServer(store, secret).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signalContext()
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("Devserver listening", "addr", bind, "db", dbPath)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&bind, "bind", "127.0.0.1:8787", "Address to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "caplet-dev.db", "Path to the SQLite database")
	cmd.Flags().StringVar(&secret, "secret", "", "Secret for token signing and credential hashing")
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
