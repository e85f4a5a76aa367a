// Command categoryd serves the categories API together with its OpenAPI
// document and Swagger UI.
//
// Run:
//
//	go run ./cmd/categoryd serve
//
// Generate the OpenAPI document without starting the server:
//
//	go run ./cmd/categoryd spec                      (JSON to stdout)
//	go run ./cmd/categoryd spec --format yaml -o openapi.yaml
//
// Then explore:
//
//	GET    http://127.0.0.1:8081/category
//	POST   http://127.0.0.1:8081/category
//	DELETE http://127.0.0.1:8081/category/{id}
//	GET    http://127.0.0.1:8081/api-doc/openapi.json
//	GET    http://127.0.0.1:8081/swagger-ui
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bjaus/categories/internal/config"
	"github.com/bjaus/categories/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state resolved by the root command for its subcommands.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "categoryd",
		Short:         "Category CRUD service with a generated OpenAPI document",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./categories.yaml if present)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")

	_ = a.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(serveCmd(a))
	root.AddCommand(specCmd(a))
	root.AddCommand(versionCmd())

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	logger, err := server.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}
