package cmd

import (
	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/ui"
	"ingest-keeper/services"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop all stack services",
	Args:  cobra.NoArgs,
	RunE:  instrumented("stop", runStop),
}

// stop always exits 0; a failed stop is reported but not fatal.
func runStop(cmd *cobra.Command, args []string) error {
	ui.Header("Stopping codebase ingestion stack")
	if err := services.GetStackManager().Stop(cmd.Context()); err != nil {
		logger.Errorf("Stop failed: %v", err)
		ui.Warn("Stop reported an error: %v", err)
		return nil
	}
	ui.Ok("All services stopped")
	return nil
}

func init() {
	root.RootCmd.AddCommand(stopCmd)
}
