package main

import (
	"github.com/spf13/cobra"

	"github.com/bjaus/categories/internal/category"
	"github.com/bjaus/categories/internal/server"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the categories API, its OpenAPI document and Swagger UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := server.New(a.cfg, a.logger, category.DemoStore{})
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8081)")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
