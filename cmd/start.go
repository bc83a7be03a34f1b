package cmd

import (
	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/ui"
	"ingest-keeper/services"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Validate, provision and start the whole stack",
	Long:  "Runs preflight validation, checks the container runtime, provisions the tuned model, starts services tier by tier and waits for the API to become healthy.",
	Args:  cobra.NoArgs,
	RunE:  instrumented("start", runStart),
}

func runStart(cmd *cobra.Command, args []string) error {
	ui.Header("Starting codebase ingestion stack")
	sm := services.GetStackManager()
	if err := sm.Start(cmd.Context()); err != nil {
		ui.Fail("Start failed: %v", err)
		return err
	}
	ui.Ok("Stack is up and healthy")
	ui.Step("API available at %s", config.Config.Endpoints.API)
	ui.Step("API docs at %s/docs", config.Config.Endpoints.API)
	return nil
}

func init() {
	root.RootCmd.AddCommand(startCmd)
}
