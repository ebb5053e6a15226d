package main

// Run database migrations for RECORD_STORE=postgres:
//   go run ./cmd/migrate [up|down|version]

import (
	"context"
	"fmt"
	"log"
	"os"

	"forms-backend/internal/shared/config"
	"forms-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	switch command {
	case "up":
		err = db.RunMigrations(ctx, sqlDB)
	case "down":
		err = db.RollbackMigration(ctx, sqlDB)
	case "version":
		var version int64
		version, err = db.MigrationVersion(ctx, sqlDB)
		if err == nil {
			fmt.Println(version)
		}
	default:
		err = fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		log.Printf("migrate %s failed: %v", command, err)
		sqlDB.Close()
		os.Exit(1)
	}
}
