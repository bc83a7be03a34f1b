package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"ingest-keeper/services"
)

// instrumented wraps a command handler with outcome/duration metrics.
func instrumented(name string, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		err := fn(cmd, args)
		services.PushCommandMetrics(name, err, time.Since(start))
		return err
	}
}
