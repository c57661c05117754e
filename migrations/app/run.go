// Command app applies the LocalLoop PostgreSQL schema.
package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/theEquinoxDev/LocalLoop/pkg/config"
	"github.com/theEquinoxDev/LocalLoop/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(cfg.DefinitionDatabaseURL, MigrationsFS); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
