package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/form-service/internal/client"
	"github.com/SAP-F-2025/form-service/internal/session"
)

var respondCmd = &cobra.Command{
	Use:   "respond <formId> <steps.json>",
	Short: "Fill in a form by replaying interaction steps and submit the response",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		var steps []session.Step
		if err := json.Unmarshal(raw, &steps); err != nil {
			return fmt.Errorf("invalid steps file: %w", err)
		}

		s := session.New(args[0], client.New(cfg.StoreURL, logger), logger)
		if err := s.Load(cmd.Context()); err != nil {
			return err
		}
		if err := s.ApplyAll(steps); err != nil {
			return err
		}

		out := json.NewEncoder(cmd.OutOrStdout())
		out.SetIndent("", "  ")

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			answers, err := s.Answers()
			if err != nil {
				return err
			}
			return out.Encode(answers)
		}

		resp, err := s.Submit(cmd.Context())
		if err != nil {
			return err
		}
		return out.Encode(resp)
	},
}

func init() {
	respondCmd.Flags().Bool("dry-run", false, "Print the collected answers instead of submitting")
}
