package cmd

import (
	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/services"
)

var logsCmd = &cobra.Command{
	Use:   "logs [service|all]",
	Short: "Stream logs for one service, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  instrumented("logs", runLogs),
}

// runLogs blocks streaming until interrupted.
func runLogs(cmd *cobra.Command, args []string) error {
	var targets []string
	if len(args) == 1 && args[0] != "all" {
		targets = []string{args[0]}
	}
	return services.GetRunner().Logs(cmd.Context(), targets...)
}

func init() {
	root.RootCmd.AddCommand(logsCmd)
}
