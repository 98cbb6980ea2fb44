// cmd/nexus/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dangerclosesec/nexus/internal/config"
	"github.com/dangerclosesec/nexus/internal/model"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const version = "1.0.0"

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "Nexus is the management CLI for the Nexus CMMS backend",
	Long:  `Nexus manages the CMMS database: schema migration and demo data seeding.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Create or update all Nexus tables to match the current models.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDatabase()

		// Enum and extension prerequisites AutoMigrate cannot create.
		for _, stmt := range []string{
			`CREATE EXTENSION IF NOT EXISTS citext`,
			`DO $$ BEGIN CREATE TYPE user_role AS ENUM ('USER', 'ADMIN'); EXCEPTION WHEN duplicate_object THEN null; END $$`,
			`DO $$ BEGIN CREATE TYPE asset_status AS ENUM ('ACTIVE', 'INACTIVE', 'UNDER_MAINTENANCE'); EXCEPTION WHEN duplicate_object THEN null; END $$`,
			`DO $$ BEGIN CREATE TYPE criticality AS ENUM ('LOW', 'MEDIUM', 'HIGH', 'CRITICAL'); EXCEPTION WHEN duplicate_object THEN null; END $$`,
			`DO $$ BEGIN CREATE TYPE work_order_status AS ENUM ('OPEN', 'IN_PROGRESS', 'ON_HOLD', 'COMPLETED', 'CANCELLED'); EXCEPTION WHEN duplicate_object THEN null; END $$`,
		} {
			if err := db.Exec(stmt).Error; err != nil {
				log.Fatalf("Failed to prepare database types: %v", err)
			}
		}

		err := db.AutoMigrate(
			&model.Organization{},
			&model.User{},
			&model.Asset{},
			&model.WorkOrder{},
			&model.Comment{},
			&model.ActivityLog{},
		)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Migration completed")
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data",
	Long:  `Insert a demo organization with users, assets and work orders for local development.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDatabase()
		if err := seed(db); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Println("Seeding completed")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nexus version %s\n", version)
	},
}

func mustOpenDatabase() *gorm.DB {
	if err := godotenv.Load(); err != nil && verbose {
		fmt.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SearchPath,
	)

	logLevel := logger.Warn
	if verbose {
		logLevel = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
