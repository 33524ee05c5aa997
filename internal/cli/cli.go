// Package cli implements the kvk command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cloudmazing/kvkapi/pkg/buildinfo"
	"github.com/cloudmazing/kvkapi/pkg/integrations/kvk"
	"github.com/cloudmazing/kvkapi/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "kvk"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger  *log.Logger
	opts    globalOpts
	metrics *prometheus.Registry // set when --metrics-file is given
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	c.opts = globalOpts{page: defaultPage, perPage: defaultResultsPerPage}

	root := &cobra.Command{
		Use:   appName,
		Short: "kvk queries the Dutch Chamber of Commerce business registry",
		Long: `kvk is a command-line client for the KVK (Kamer van Koophandel) API.

It searches registered companies by name or identifier and fetches base
profiles. An API key is required; pass --api-key, set KVK_API_KEY or put
api_key in the config file (see "kvk config path").`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return c.setupMetrics()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.writeMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.apiKey, "api-key", "", "KVK API key (default $"+envAPIKey+")")
	flags.StringVar(&c.opts.rootCert, "root-cert", "", "PEM root certificate to trust instead of the system pool")
	flags.StringVar(&c.opts.baseURL, "base-url", "", "API root (default "+kvk.DefaultBaseURL+")")
	flags.StringVar(&c.opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kvk/config.toml)")
	flags.IntVar(&c.opts.page, "page", c.opts.page, "result page")
	flags.IntVar(&c.opts.perPage, "per-page", c.opts.perPage, "results per page (1-100)")
	flags.BoolVar(&c.opts.json, "json", false, "print JSON instead of formatted output")
	flags.StringVar(&c.opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the command")

	// Register all subcommands
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.profileCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// settings resolves the effective settings for cmd.
func (c *CLI) settings(cmd *cobra.Command) (settings, error) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	return resolveSettings(c.opts, changed, os.Getenv)
}

// newClient creates a registry client for cmd from the resolved settings.
func (c *CLI) newClient(cmd *cobra.Command) (*kvk.Client, error) {
	s, err := c.settings(cmd)
	if err != nil {
		return nil, err
	}
	logger := loggerFromContext(cmd.Context())
	logger.Debug("client settings", "base_url", s.BaseURL, "page", s.Page, "per_page", s.ResultsPerPage, "config", s.ConfigPath)

	opts := []kvk.Option{
		kvk.WithBaseURL(s.BaseURL),
		kvk.WithLogger(logger),
		kvk.WithPage(s.Page),
		kvk.WithResultsPerPage(s.ResultsPerPage),
	}
	if s.RootCertificate != "" {
		opts = append(opts, kvk.WithRootCertificate(s.RootCertificate))
	}
	return kvk.New(s.APIKey, opts...)
}

// =============================================================================
// Metrics
// =============================================================================

// setupMetrics installs Prometheus hooks when --metrics-file is given.
func (c *CLI) setupMetrics() error {
	if c.opts.metricsFile == "" {
		return nil
	}
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}
	m.Install()
	c.metrics = reg
	return nil
}

// writeMetrics writes the collected metrics in the text exposition format.
func (c *CLI) writeMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(c.opts.metricsFile, c.metrics); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("metrics written", "path", c.opts.metricsFile)
	return nil
}

// =============================================================================
// Progress
// =============================================================================

// startSpinner shows a spinner on stderr while a request runs. It returns nil
// unless stderr is a terminal, formatted output is requested and debug
// logging is off.
func (c *CLI) startSpinner(cmd *cobra.Command, message string) *Spinner {
	if c.opts.json || c.Logger.GetLevel() <= log.DebugLevel {
		return nil
	}
	f, ok := cmd.ErrOrStderr().(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return nil
	}
	s := newSpinnerWithContext(cmd.Context(), f, message)
	s.Start()
	return s
}

// stopSpinner stops s, reporting a failed request if err is set.
func stopSpinner(s *Spinner, err error) {
	switch {
	case s == nil:
	case err != nil:
		s.StopWithError("Request failed")
	default:
		s.Stop()
	}
}
