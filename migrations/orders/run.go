package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

// Usage: go run ./migrations/orders [up|down|status|version]
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	command := migrator.CommandUp
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrator.Run(ctx, cfg.DatabaseURL, MigrationsFS, command); err != nil {
		panic(err)
	}
}
