package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/cadence/internal/server"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// No config needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cadence v%s\n", server.Version)
		},
	}
}
