package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/models"
	"ingest-keeper/internal/ui"
	"ingest-keeper/services"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a point-in-time snapshot of every subsystem",
	Long:  "Runs exactly one check per subsystem with no retries. The snapshot is diagnostic: the command always exits 0.",
	Args:  cobra.NoArgs,
	RunE:  instrumented("status", runStatus),
}

func runStatus(cmd *cobra.Command, args []string) error {
	report := services.NewStatusService(services.GetRunner(), &config.Config).Snapshot(cmd.Context())
	printStatusReport(report)
	return nil
}

func printStatusReport(report models.StatusReport) {
	ui.Header("Containers")
	if len(report.Containers) == 0 {
		ui.Warn("No containers found (is the runtime running?)")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSTATE\tSTATUS")
		for _, c := range report.Containers {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.State, c.Status)
		}
		w.Flush()
	}

	ui.Header("Subsystems")
	printCheck("API backend", report.APIReachable)
	printCheck("Relational store", report.DBReady)
	printCheck("Vector store", report.VectorStoreReachable)
	if report.ModelsListed {
		ui.Ok("Inference engine: %d model(s): %s", len(report.Models), strings.Join(report.Models, ", "))
	} else {
		ui.Fail("Inference engine: model catalog unavailable")
	}

	if report.APIReachable {
		ui.Step("API docs at %s/docs", config.Config.Endpoints.API)
	}
}

func printCheck(name string, ok bool) {
	if ok {
		ui.Ok("%s: reachable", name)
	} else {
		ui.Fail("%s: unreachable", name)
	}
}

func init() {
	root.RootCmd.AddCommand(statusCmd)
}
