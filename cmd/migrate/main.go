package main

import (
	"context"
	"flag"
	"log"

	"github.com/muhammadchandra19/marketsim/internal/config"
	"github.com/muhammadchandra19/marketsim/pkg/migration"
	"github.com/muhammadchandra19/marketsim/pkg/postgresql"
)

func main() {
	var (
		direction    = flag.String("direction", "up", "migration direction: up or down")
		steps        = flag.Int("steps", 0, "number of migrations to apply (0 = all for up)")
		migrationDir = flag.String("dir", "internal/infrastructure/postgres/migrations", "migration directory")
	)
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer client.Close()

	runner := migration.NewRunner(client, migration.Config{
		MigrationDir: *migrationDir,
	})

	if err := runner.EnsureMigrationTable(ctx); err != nil {
		log.Fatalf("Failed to ensure migration table: %v", err)
	}

	switch *direction {
	case "up":
		err = runner.MigrateUp(ctx, *steps)
	case "down":
		err = runner.MigrateDown(ctx, *steps)
	default:
		log.Fatalf("Unknown direction %q", *direction)
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully")
}
