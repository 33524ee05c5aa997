package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	kvkerrors "github.com/cloudmazing/kvkapi/pkg/errors"
	"github.com/cloudmazing/kvkapi/pkg/integrations/kvk"
)

const (
	// configFileName is the file looked up in the config directory.
	configFileName = "config.toml"

	// envAPIKey supplies the API key when --api-key is not given.
	envAPIKey = "KVK_API_KEY"

	defaultPage           = 1
	defaultResultsPerPage = 10
)

// Config is the on-disk CLI configuration.
//
//	api_key          = "l7xx..."
//	root_certificate = "/etc/kvk/root.pem"
//	base_url         = "https://api.kvk.nl/api/"
//	results_per_page = 25
type Config struct {
	APIKey          string `toml:"api_key"`
	RootCertificate string `toml:"root_certificate"`
	BaseURL         string `toml:"base_url"`
	ResultsPerPage  int    `toml:"results_per_page"`
}

// configDir returns the config directory using XDG standard (~/.config/kvk/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns the path of the default config file.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// loadConfig reads the TOML config at path. A missing file yields an empty
// Config unless required is set. Unknown keys are rejected.
func loadConfig(path string, required bool) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Config{}, nil
		}
		return Config{}, kvkerrors.Wrap(kvkerrors.ErrCodeConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, kvkerrors.New(kvkerrors.ErrCodeConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// globalOpts holds the persistent flags shared by all commands.
type globalOpts struct {
	apiKey      string
	rootCert    string
	baseURL     string
	configPath  string
	page        int
	perPage     int
	json        bool
	metricsFile string
}

// settings are the effective client settings after merging flags,
// environment and config file.
type settings struct {
	APIKey          string
	RootCertificate string
	BaseURL         string
	Page            int
	ResultsPerPage  int
	ConfigPath      string
}

// resolveSettings merges flag values, the environment and the config file.
// Precedence is flag, then environment (API key only), then config file,
// then defaults. changed reports whether a flag was set explicitly.
func resolveSettings(opts globalOpts, changed func(string) bool, getenv func(string) string) (settings, error) {
	path := opts.configPath
	required := path != ""
	if path == "" {
		p, err := defaultConfigPath()
		if err == nil {
			path = p
		}
	}

	var cfg Config
	if path != "" {
		var err error
		if cfg, err = loadConfig(path, required); err != nil {
			return settings{}, err
		}
	}

	s := settings{
		APIKey:          firstNonEmpty(opts.apiKey, getenv(envAPIKey), cfg.APIKey),
		RootCertificate: firstNonEmpty(opts.rootCert, cfg.RootCertificate),
		BaseURL:         firstNonEmpty(opts.baseURL, cfg.BaseURL, kvk.DefaultBaseURL),
		Page:            defaultPage,
		ResultsPerPage:  defaultResultsPerPage,
		ConfigPath:      path,
	}
	if changed("page") {
		s.Page = opts.page
	}
	switch {
	case changed("per-page"):
		s.ResultsPerPage = opts.perPage
	case cfg.ResultsPerPage != 0:
		s.ResultsPerPage = cfg.ResultsPerPage
	}

	if err := s.validate(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func (s settings) validate() error {
	if s.APIKey == "" {
		return kvkerrors.New(kvkerrors.ErrCodeConfig,
			"no API key: pass --api-key, set %s or add api_key to %s", envAPIKey, s.ConfigPath)
	}
	if err := kvkerrors.ValidateURL(s.BaseURL); err != nil {
		return err
	}
	if err := kvkerrors.ValidatePage(s.Page); err != nil {
		return err
	}
	return kvkerrors.ValidateResultsPerPage(s.ResultsPerPage)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// maskSecret hides all but the last four characters of s.
func maskSecret(s string) string {
	const visible = 4
	if len(s) <= visible {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-visible) + s[len(s)-visible:]
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the CLI configuration",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.opts.configPath
			if path == "" {
				p, err := defaultConfigPath()
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if c.opts.json {
				return printJSON(out, map[string]any{
					"apiKey":          maskSecret(s.APIKey),
					"rootCertificate": s.RootCertificate,
					"baseURL":         s.BaseURL,
					"page":            s.Page,
					"resultsPerPage":  s.ResultsPerPage,
					"configPath":      s.ConfigPath,
				})
			}
			if _, err := os.Stat(s.ConfigPath); err != nil {
				printWarning(out, "no config file at %s", s.ConfigPath)
			}
			printKeyValue(out, "config", s.ConfigPath)
			printKeyValue(out, "api key", maskSecret(s.APIKey))
			printKeyValue(out, "base url", s.BaseURL)
			if s.RootCertificate != "" {
				printKeyValue(out, "root cert", s.RootCertificate)
			}
			printKeyValue(out, "page", fmt.Sprint(s.Page))
			printKeyValue(out, "per page", fmt.Sprint(s.ResultsPerPage))
			return nil
		},
	}
}
