package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/categories/internal/server"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the API version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), server.Title, server.Version)
			return err
		},
	}
}
