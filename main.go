// File: trimly/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trimly/api"
	"trimly/config"
	"trimly/forms"
	"trimly/mockapi"
	"trimly/session"
	"trimly/storage"
	"trimly/utils"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	command, args := os.Args[1], os.Args[2:]

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}
	logger := utils.GetLogger()
	defer logger.Sync()

	if command == "mock" {
		runMock()
		return
	}

	store, err := storage.Open(config.AppConfig.StatePath)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open local state: %v", err)
	}
	defer store.Close()

	client := api.New(config.AppConfig.APIBaseURL, config.AppConfig.RequestTimeout, logger)
	manager := session.New(client, store, logger)

	ctx := context.Background()
	manager.Restore(ctx)

	cli := &cli{client: client, manager: manager}
	if err := cli.run(ctx, command, args); err != nil {
		var fieldErrs forms.FieldErrors
		if errors.As(err, &fieldErrs) {
			for field, msg := range fieldErrs {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
			}
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runMock serves the in-memory API double until interrupted.
func runMock() {
	logger := utils.GetLogger()
	srv := &http.Server{
		Addr:    config.AppConfig.MockAddr,
		Handler: mockapi.New(logger).Handler(),
	}

	logger.Sugar().Infof("Starting mock API on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("mock: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("mock: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("mock: server forced to shutdown: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: trimly <command> [flags]

commands:
  signin     -email -password
  signup     -name -email -password
  signout
  whoami
  profile    -name -email [-old-password -password -confirm]
  avatar     -file
  providers
  agenda     -provider [-date YYYY-MM-DD]
  book       -provider -date YYYY-MM-DD -hour H
  mock       serve the in-memory API double`)
}
