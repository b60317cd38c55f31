package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the fintrack database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "migrations directory (default: $MIGRATIONS_DIR or ./migrations)")
	_ = viper.BindPFlag("migrations_dir", rootCmd.PersistentFlags().Lookup("dir"))
	_ = viper.BindEnv("migrations_dir", "MIGRATIONS_DIR")

	rootCmd.AddCommand(upCmd(), downCmd(), versionCmd(), seedCmd())
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

// openManager connects to the configured database.
func openManager() (*database.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dir := viper.GetString("migrations_dir"); dir != "" {
		cfg.MigrationsDir = dir
	}

	manager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	return manager, nil
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			manager, err := openManager()
			if err != nil {
				return err
			}
			defer manager.Close()

			if err := manager.Migrate(); err != nil {
				return err
			}
			logger.Get().Info("Migrations applied successfully")
			return nil
		},
	}
}

func downCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			steps := viper.GetInt("steps")

			manager, err := openManager()
			if err != nil {
				return err
			}
			defer manager.Close()

			if err := manager.Rollback(steps); err != nil {
				return err
			}
			logger.Get().Infof("Rolled back %d migration(s)", steps)
			return nil
		},
	}
	cmd.Flags().Int("steps", 1, "number of migrations to roll back")
	_ = viper.BindPFlag("steps", cmd.Flags().Lookup("steps"))
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(_ *cobra.Command, _ []string) error {
			manager, err := openManager()
			if err != nil {
				return err
			}
			defer manager.Close()

			version, dirty, err := manager.Version()
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default categories that are missing",
		RunE: func(_ *cobra.Command, _ []string) error {
			manager, err := openManager()
			if err != nil {
				return err
			}
			defer manager.Close()

			if err := services.NewCategoryService(manager.DB(), nil).SeedDefaults(); err != nil {
				return fmt.Errorf("failed to seed default categories: %w", err)
			}
			logger.Get().Info("Default categories seeded")
			return nil
		},
	}
}
