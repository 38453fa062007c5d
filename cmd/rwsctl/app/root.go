// Package app implements the rwsctl commands.
//
// Every command builds one request descriptor, sends it through a connection
// configured from file, RWS_* environment variables and flags, and writes the
// raw response body to stdout.
package app

import (
	"fmt"
	"io"
	"time"

	"github.com/RassulYunussov/rwsclient"
	"github.com/RassulYunussov/rwsclient/config"
	"github.com/RassulYunussov/rwsclient/internal/logging"
	"github.com/RassulYunussov/rwsclient/requests"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const cliName = "rwsctl"

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	ConfigPath string
	BaseURL    string
	Username   string
	Password   string
	Retries    int
	Timeout    time.Duration
	LogLevel   string
}

// NewRootCommand creates the root rwsctl command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: "Command line client for Rave Web Services",
		Long: `rwsctl sends requests to Rave Web Services and prints the raw response.

Settings are read from an optional YAML file, then RWS_* environment variables
(RWS_BASEURL, RWS_USERNAME, RWS_PASSWORD, RWS_LOG_LEVEL, ...), then flags.`,
		SilenceUsage: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "service address, e.g. https://innovate.mdsol.com")
	cmd.PersistentFlags().StringVarP(&opts.Username, "username", "u", "", "RWS user name")
	cmd.PersistentFlags().StringVar(&opts.Password, "password", "", "RWS password (prefer RWS_PASSWORD)")
	cmd.PersistentFlags().IntVar(&opts.Retries, "retries", 0, "retries on transport failures")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "timeout of each attempt")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error or disabled")

	cmd.AddCommand(
		NewVersionCommand(opts),
		NewDiagnosticsCommand(opts),
		NewStudiesCommand(opts),
		NewSubjectsCommand(opts),
		NewDatasetCommand(opts),
		NewMetadataCommand(opts),
		NewPostCommand(opts),
	)

	return cmd
}

// overrides maps the flags set on the command line to configuration keys
func (o *GlobalOptions) overrides(cmd *cobra.Command) map[string]any {
	flags := cmd.Flags()
	overrides := map[string]any{}
	for flag, key := range map[string]string{
		"base-url":  "baseurl",
		"username":  "username",
		"password":  "password",
		"retries":   "retries",
		"timeout":   "timeout",
		"log-level": "log.level",
	} {
		if !flags.Changed(flag) {
			continue
		}
		switch flag {
		case "retries":
			overrides[key] = o.Retries
		case "timeout":
			overrides[key] = o.Timeout.String()
		default:
			overrides[key] = flags.Lookup(flag).Value.String()
		}
	}
	return overrides
}

func (o *GlobalOptions) connect(cmd *cobra.Command) (*rwsclient.Connection, zerolog.Logger, error) {
	cfg, err := config.LoadWithOverrides(o.ConfigPath, o.overrides(cmd))
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Pretty, cmd.ErrOrStderr())
	connection, err := rwsclient.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, logger, err
	}
	return connection, logger, nil
}

// send dispatches one request and prints the raw body
func (o *GlobalOptions) send(cmd *cobra.Command, spec requests.Spec) error {
	connection, logger, err := o.connect(cmd)
	if err != nil {
		return err
	}
	result, err := connection.Send(cmd.Context(), spec)
	if serviceErr, ok := rwsclient.AsServiceError(err); ok {
		logger.Debug().Str("raw_diagnostic", serviceErr.RawDiagnostic).Str("request_id", result.RequestID).Msg("service error body")
		return fmt.Errorf("%s failed with status %d: %w", spec.Name(), serviceErr.StatusCode, err)
	}
	if err != nil {
		return err
	}
	return writeBody(cmd.OutOrStdout(), result.Body)
}

func writeBody(w io.Writer, body string) error {
	if _, err := io.WriteString(w, body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
