package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leados.app/inbox/common/logger"
	"leados.app/inbox/core/config"
	"leados.app/inbox/internal/cli"
	"leados.app/inbox/internal/gateway"
	"leados.app/inbox/internal/inbox"
)

func main() {
	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Logs go to stderr so command output stays pipeable.
	slog.SetDefault(slog.New(logger.NewHandler(cfg, os.Stderr)))

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid APPOINTMENT_TIMEZONE %q: %v\n", cfg.Timezone, err)
		os.Exit(1)
	}

	client := gateway.New(cfg.Client.APIURL, cfg.Client.SessionID, &http.Client{Timeout: 30 * time.Second})
	app := cli.NewApp(client, inbox.NewList(), location)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
