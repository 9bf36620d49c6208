package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/form-service/internal/config"
	"github.com/SAP-F-2025/form-service/internal/utils"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "formsvc",
	Short:         "Form builder service",
	Long:          "Stores Categorize, Cloze and Comprehension forms and collects responses to them.",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if store, _ := cmd.Flags().GetString("store"); store != "" {
			loaded.StoreURL = store
		}
		cfg = loaded
		logger = utils.NewLogger(cfg.IsProduction(), cmd.ErrOrStderr())
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "Base URL of the form store (overrides STORE_URL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(respondCmd)
}
