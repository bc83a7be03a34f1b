package cmd

import (
	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/models"
	"ingest-keeper/internal/ui"
	"ingest-keeper/services"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Provision the tuned model (skips when already present)",
	Args:  cobra.NoArgs,
	RunE:  instrumented("models", runModels),
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg := &config.Config
	provisioner := services.NewProvisioner(services.GetRunner(), cfg.Provision)
	outcome, err := provisioner.Provision(cmd.Context())
	if err != nil {
		ui.Fail("Provisioning failed: %v", err)
		return err
	}
	if outcome == models.ProvisionAlreadyExists {
		ui.Ok("Model %s already present, nothing to do", cfg.Provision.Model)
	} else {
		ui.Ok("Model %s created", cfg.Provision.Model)
	}
	return nil
}

func init() {
	root.RootCmd.AddCommand(modelsCmd)
}
