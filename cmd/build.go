package cmd

import (
	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/ui"
	"ingest-keeper/services"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the stack images without cache",
	Args:  cobra.NoArgs,
	RunE:  instrumented("build", runBuild),
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Alias of build: rebuild the stack images without cache",
	Args:  cobra.NoArgs,
	RunE:  instrumented("rebuild", runBuild),
}

func runBuild(cmd *cobra.Command, args []string) error {
	ui.Header("Building images (no cache)")
	if err := services.GetRunner().Build(cmd.Context()); err != nil {
		ui.Fail("Build failed: %v", err)
		return err
	}
	ui.Ok("Images built")
	return nil
}

func init() {
	root.RootCmd.AddCommand(buildCmd)
	root.RootCmd.AddCommand(rebuildCmd)
}
