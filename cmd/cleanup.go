package cmd

import (
	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/ui"
	"ingest-keeper/services"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Stop the stack and prune unused images, volumes and build cache",
	Args:  cobra.NoArgs,
	RunE:  instrumented("cleanup", runCleanup),
}

// cleanup always exits 0; individual prune failures are logged.
func runCleanup(cmd *cobra.Command, args []string) error {
	ui.Header("Cleaning up")
	if err := services.GetStackManager().Stop(cmd.Context()); err != nil {
		logger.Errorf("Stop during cleanup failed: %v", err)
		ui.Warn("Stop reported an error: %v", err)
	}
	if err := services.GetRunner().Prune(cmd.Context()); err != nil {
		logger.Errorf("Prune failed: %v", err)
		ui.Warn("Prune reported an error: %v", err)
	}
	ui.Ok("Cleanup finished")
	return nil
}

func init() {
	root.RootCmd.AddCommand(cleanupCmd)
}
