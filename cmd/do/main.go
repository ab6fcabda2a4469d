package main

import (
	"os"

	"github.com/kawafuchieirin/team-workspace/cmd/do/cmd"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "do",
		Short:         "Development and operations tools for the study tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.TablesCmd())
	rootCmd.AddCommand(cmd.ExportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
