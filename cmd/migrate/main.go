// Command migrate applies goose migrations. Usage:
//
//	migrate [up|down|status] [dir]
package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/lib/pq"

	"github.com/rakibulhaque/trendibay-backend/pkg/config"
	"github.com/rakibulhaque/trendibay-backend/pkg/env"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/migrate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("trendibay-migrate", "dev", "info", os.Stderr).Fatal("load config", err)
	}

	logg := logger.New("trendibay-migrate", cfg.App.Env, cfg.App.LogLevel, os.Stdout)

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	dir := env.Get("TRENDIBAY_MIGRATIONS_DIR", migrate.DefaultDir)
	if len(os.Args) > 2 {
		dir = os.Args[2]
	}

	sqlDB, err := sql.Open("postgres", cfg.DB.DSN())
	if err != nil {
		logg.Fatal("open postgres", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	switch command {
	case "up":
		err = migrate.Up(ctx, sqlDB, dir)
	case "down":
		err = migrate.Down(ctx, sqlDB, dir)
	case "status":
		err = migrate.Status(ctx, sqlDB, dir)
	default:
		logg.Fatal("unknown command "+command, nil)
	}
	if err != nil {
		logg.Fatal("run "+command, err)
	}
	logg.WithField("command", command).Info("migrations complete")
}
