package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/shandysiswandi/contactrelay/internal/pkg/config"
	"github.com/shandysiswandi/contactrelay/internal/pkg/credential"
	"github.com/spf13/cobra"
)

var errDestinationMissing = errors.New("mail.destination is not set")

func checkCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load config and credentials, then report what would be used",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewViper(*configPath)
			if err != nil {
				return err
			}
			defer cfg.Close()

			return runCheck(cmd, cfg)
		},
	}
}

func runCheck(cmd *cobra.Command, cfg config.Config) error {
	mode := cfg.GetString("credential.mode")
	creds, err := credential.Load(cmd.Context(), mode, credential.Options{
		Local: credential.LocalOptions{
			Username: cfg.GetString("credential.local.username"),
			Password: cfg.GetString("credential.local.password"),
		},
		SSM: credential.SSMOptions{
			Region:        cfg.GetString("credential.ssm.region"),
			Endpoint:      cfg.GetString("credential.ssm.endpoint"),
			UsernameParam: cfg.GetString("credential.ssm.username_param"),
			PasswordParam: cfg.GetString("credential.ssm.password_param"),
		},
	})
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	destination := cfg.GetString("mail.destination")
	if destination == "" {
		return errDestinationMissing
	}

	printCheck(cmd.OutOrStdout(), mode, cfg.GetString("mail.driver"), destination, creds)
	return nil
}

func printCheck(w io.Writer, mode, driver, destination string, creds credential.Credentials) {
	fmt.Fprintf(w, "mode:        %s\n", mode)
	fmt.Fprintf(w, "driver:      %s\n", driver)
	fmt.Fprintf(w, "destination: %s\n", destination)
	fmt.Fprintf(w, "credentials: %s\n", creds)
}
