package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ingest-keeper/cmd/root"
)

var SoftwareVer = ""
var BuildTime = ""
var BuildCommitId = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",

	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Version %s\n", SoftwareVer)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Build Commit ID: %s\n", BuildCommitId)
	},
}

func init() {
	root.RootCmd.AddCommand(versionCmd)

	versionCmd.Example = `  ingest-keeper version`
}
