package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaus/categories/internal/category"
	"github.com/bjaus/categories/internal/server"
)

func specCmd(a *app) *cobra.Command {
	var (
		format  string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Write the OpenAPI document and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			router := server.New(a.cfg, a.logger, category.DemoStore{}).Router()

			var w io.Writer = cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile) //nolint:gosec // user-provided CLI flag
				if err != nil {
					return fmt.Errorf("create %s: %w", outFile, err)
				}
				defer func() {
					if err := f.Close(); err != nil {
						a.logger.Error("failed to close output file", "file", outFile, "err", err)
					}
				}()
				w = f
			}

			switch format {
			case "json":
				return router.WriteSpec(w)
			case "yaml":
				return router.WriteSpecYAML(w)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	return cmd
}
