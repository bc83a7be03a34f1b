package main

import (
	_ "ingest-keeper/cmd"
	"ingest-keeper/cmd/root"
	"ingest-keeper/internal/config"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/ui"
	"ingest-keeper/services"
	"os"
)

func main() {
	logger.InitLogger(&config.Config.Log)

	// Timeout diagnostics go to the terminal, not the log stream.
	services.GetStackManager().SetDiagnosticSink(ui.Dim)

	if err := root.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}
