package cmd

import (
	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/ui"
	"ingest-keeper/services"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Stop the stack, settle, start it again and wait for health",
	Args:  cobra.NoArgs,
	RunE:  instrumented("restart", runRestart),
}

func runRestart(cmd *cobra.Command, args []string) error {
	ui.Header("Restarting codebase ingestion stack")
	if err := services.GetStackManager().Restart(cmd.Context()); err != nil {
		ui.Fail("Restart failed: %v", err)
		return err
	}
	ui.Ok("Stack restarted and healthy")
	return nil
}

func init() {
	root.RootCmd.AddCommand(restartCmd)
}
