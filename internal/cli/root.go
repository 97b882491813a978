package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/contactrelay/internal/app"
	"github.com/shandysiswandi/contactrelay/internal/pkg/config"
	"github.com/shandysiswandi/contactrelay/internal/pkg/lambdahttp"
	"github.com/spf13/cobra"
)

const (
	defaultConfigPath = "./config/config.yaml"
	shutdownTimeout   = 10 * time.Second
)

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "contactrelay",
		Short:        "Relay contact-form submissions to a fixed inbox",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
				return runLambda(configPath)
			}
			return runServe(configPath)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", configPathFromEnv(), "path to the config file (env CONFIG_PATH)")

	cmd.AddCommand(
		serveCmd(&configPath),
		lambdaCmd(&configPath),
		checkCmd(&configPath),
	)
	return cmd
}

func configPathFromEnv() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return defaultConfigPath
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(*cobra.Command, []string) error {
			return runServe(*configPath)
		},
	}
}

func lambdaCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve API Gateway proxy events as an AWS Lambda function",
		RunE: func(*cobra.Command, []string) error {
			return runLambda(*configPath)
		},
	}
}

func newApp(configPath string) (*app.App, error) {
	cfg, err := config.NewViper(configPath)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		return nil, err
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to init application", "error", err)
		return nil, err
	}
	return a, nil
}

func runServe(configPath string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}

	<-a.Start()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.Stop(ctx)

	return nil
}

func runLambda(configPath string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}

	lambdahttp.Start(a.Handler())
	return nil
}
