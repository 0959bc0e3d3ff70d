package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/moondoc/project"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "moondoc",
		Short: "Extract reference documentation from Lua annotation comments",
	}

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDocCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig returns the configuration of the project in the current
// directory, falling back to the defaults when no moondoc.yaml exists.
func loadConfig() project.Config {
	proj, err := project.Load()
	if err != nil {
		return project.DefaultConfig()
	}
	return proj.Config
}
