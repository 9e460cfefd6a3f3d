package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/braintranscriber/bt/api"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the run, translate, check and dis operations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "localhost:8080", "Address to listen on")
	cmd.Flags().Duration("timeout", api.DefaultTimeout, "Time limit for a single run")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	handler := api.NewRouter(api.Config{
		Logger:   a.logger,
		TapeSize: a.v.GetInt("tape-size"),
		MaxSteps: a.v.GetInt64("max-steps"),
		Timeout:  a.v.GetDuration("timeout"),
	})
	srv := &http.Server{
		Addr:              a.v.GetString("addr"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	a.logger.Info().Str("addr", srv.Addr).Msg("listening")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
