package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SAP-F-2025/form-service/internal/builder"
	"github.com/SAP-F-2025/form-service/internal/client"
	"github.com/SAP-F-2025/form-service/internal/models"
	"github.com/SAP-F-2025/form-service/internal/upload"
	"github.com/SAP-F-2025/form-service/internal/validator"
)

var createCmd = &cobra.Command{
	Use:   "create <form.json>",
	Short: "Author a form from a JSON file and save it to the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var draft models.CreateFormRequest
		if err := json.Unmarshal(raw, &draft); err != nil {
			return fmt.Errorf("invalid form file: %w", err)
		}

		var uploader upload.Uploader
		if cfg.Upload.Enabled() {
			uploader = upload.NewCloudinaryUploader(cfg.Upload, logger)
		}
		b := builder.New(client.New(cfg.StoreURL, logger), uploader, validator.New(), logger)

		if err := b.SetTitle(draft.Title); err != nil {
			return err
		}
		for _, q := range draft.Questions {
			if _, err := b.AddQuestion(q); err != nil {
				return err
			}
		}

		if path, _ := cmd.Flags().GetString("header-image"); path != "" {
			uploadImage(cmd, path, func(f *os.File) (string, error) {
				return b.UploadHeaderImage(cmd.Context(), filepath.Base(path), f)
			})
		}
		images, _ := cmd.Flags().GetStringArray("image")
		for _, flag := range images {
			index, path, err := parseImageFlag(flag)
			if err != nil {
				return err
			}
			uploadImage(cmd, path, func(f *os.File) (string, error) {
				return b.UploadQuestionImage(cmd.Context(), index, filepath.Base(path), f)
			})
		}

		form, err := b.Save(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", form.ID)
		return nil
	},
}

// uploadImage reports a failed upload and carries on without the image.
func uploadImage(cmd *cobra.Command, path string, do func(*os.File) (string, error)) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "image %s skipped: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := do(f); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "image %s skipped: %v\n", path, err)
	}
}

// parseImageFlag splits "index=path".
func parseImageFlag(flag string) (int, string, error) {
	index, path, ok := strings.Cut(flag, "=")
	if !ok || path == "" {
		return 0, "", fmt.Errorf("invalid --image %q, want index=path", flag)
	}
	i, err := strconv.Atoi(index)
	if err != nil {
		return 0, "", fmt.Errorf("invalid --image index %q: %w", index, err)
	}
	return i, path, nil
}

func init() {
	createCmd.Flags().String("header-image", "", "Image file uploaded as the form header")
	createCmd.Flags().StringArray("image", nil, "Question image as index=path, repeatable")
}
