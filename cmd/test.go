package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/ui"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the external system test suite against the stack",
	Args:  cobra.NoArgs,
	RunE:  instrumented("test", runTest),
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg := config.Config.Test
	ui.Header("Running system test suite")
	suite := exec.CommandContext(cmd.Context(), cfg.Command, cfg.Args...)
	suite.Stdout = os.Stdout
	suite.Stderr = os.Stderr
	suite.Stdin = os.Stdin
	if err := suite.Run(); err != nil {
		ui.Fail("Test suite failed")
		return fmt.Errorf("test suite: %w", err)
	}
	ui.Ok("Test suite passed")
	return nil
}

func init() {
	root.RootCmd.AddCommand(testCmd)
}
