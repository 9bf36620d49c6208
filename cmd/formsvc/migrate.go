package main

import (
	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/form-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/form-service/pkg"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the forms and responses tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return err
		}
		if err := postgres.NewRepository(db).Migrate(cmd.Context()); err != nil {
			return err
		}
		logger.Info("Database migrated")

		// cached forms were encoded against the previous schema
		formCache, closeCache := pkg.NewFormCache(cmd.Context(), cfg, logger)
		defer closeCache()
		if err := formCache.Flush(cmd.Context()); err != nil {
			logger.Warn("Failed to flush form cache", "error", err)
		}
		return nil
	},
}
