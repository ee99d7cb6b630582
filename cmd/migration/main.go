package main

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/app/drivers/database"
	"checkout-service/internal/migration"
	"flag"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "maximum number of migrations to apply, 0 means all")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	migrateDirection := migrate.Up
	switch *direction {
	case "up":
	case "down":
		migrateDirection = migrate.Down
	default:
		log.Fatalf("Unknown migration direction %q", *direction)
	}

	driverConfig := config.NewDriverConfig()
	db := database.NewPostgresDB(driverConfig)
	defer db.Close()

	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migration.Files,
		Root:       ".",
	}

	n, err := migrate.ExecMax(db, "postgres", migrations, migrateDirection, *steps)
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}

	log.WithFields(logrus.Fields{
		"direction": *direction,
		"applied":   n,
	}).Info("Migrations applied")
}
