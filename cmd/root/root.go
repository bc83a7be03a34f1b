package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:          "ingest-keeper",
	Short:        "Manage the codebase ingestion stack",
	Long:         `ingest-keeper orchestrates the services of the codebase ingestion system: the relational store, the vector store, the inference engine and the API backend. Each invocation runs one bounded command and exits.`,
	SilenceUsage: true,
}
