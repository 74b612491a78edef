package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/learnstyle-lambda/internal/config"
	"github.com/saulo-duarte/learnstyle-lambda/internal/container"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settings := config.Load()
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		settings.Port = p
	}
	log := config.WithContext(ctx)

	c, err := container.New(ctx, settings)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}
	defer c.Close()

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Servidor rodando em :%s", settings.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
