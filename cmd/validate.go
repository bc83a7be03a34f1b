package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/models"
	"ingest-keeper/internal/ui"
	"ingest-keeper/services"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check required directories and files before any mutating command",
	Long:  "Missing directories are created; missing files are fatal and reported all at once.",
	Args:  cobra.NoArgs,
	RunE:  instrumented("validate", runValidate),
}

func runValidate(cmd *cobra.Command, args []string) error {
	validator := services.NewValidator(&config.Config.Preflight)
	err := validator.Validate()
	if err == nil {
		ui.Ok("Preflight validation passed")
		return nil
	}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		ui.Fail("Preflight validation failed, %d required file(s) missing:", len(verr.MissingFiles))
		for _, file := range verr.MissingFiles {
			ui.Fail("  %s", file)
		}
	} else {
		ui.Fail("Preflight validation failed: %v", err)
	}
	return err
}

func init() {
	root.RootCmd.AddCommand(validateCmd)
}
