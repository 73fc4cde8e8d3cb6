package main

import (
	"embed"

	"github.com/ghuser/provchain/pkg/config"
	"github.com/ghuser/provchain/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := migrator.RunMigrations(cfg.LedgerDatabaseURL, MigrationsFS); err != nil {
		panic(err)
	}
}
