// Package commands implements the CLI subcommands of the translation hub.
package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"transhub/internal/container"
	"transhub/internal/models"
	"transhub/internal/services"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RunSeed migrates the schema and installs the baseline catalog, then exits.
func RunSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	timeout := fs.Duration("timeout", 2*time.Minute, "overall timeout for the seed run")
	fs.Usage = func() {
		fmt.Println("Usage: transhub seed [--timeout 2m]")
		fmt.Println()
		fmt.Println("Registers the baseline translation keys and creates their global")
		fmt.Println("English rows. Safe to run repeatedly; existing data is never touched.")
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	c, err := container.BuildContainer()
	if err != nil {
		logrus.Fatalf("Failed to build container: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	err = c.Invoke(func(db *gorm.DB, seedService *services.SeedService) error {
		if err := db.AutoMigrate(
			&models.SystemSetting{},
			&models.Translation{},
			&models.TranslationKey{},
			&models.TranslationAudit{},
			&models.TenantAccessKey{},
		); err != nil {
			return fmt.Errorf("database auto-migration failed: %w", err)
		}

		result, err := seedService.Seed(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Seed completed: %d keys registered, %d translations created\n",
			result.KeysRegistered, result.TranslationsCreated)
		return nil
	})
	if err != nil {
		logrus.Fatalf("Seed failed: %v", err)
	}
}
