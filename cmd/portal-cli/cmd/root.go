package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/logging"
)

// cliConfig is the part of the portal configuration the CLI needs. Session
// and CSRF secrets are not required here.
type cliConfig struct {
	BackendURL string        `env:"BACKEND_URL" envDefault:"http://localhost:5000/api"`
	AdminURL   string        `env:"ADMIN_URL" envDefault:"http://localhost:5000"`
	Timeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"warn"`
}

var (
	cookieFlag   string
	formatFlag   string
	backendFlag  string
	loadedConfig cliConfig
)

var rootCmd = &cobra.Command{
	Use:   "portal-cli",
	Short: "Club portal CLI",
	Long: `portal-cli talks to the club backend with the same client the portal uses.

Available commands:
  events list        List the events catalog with optional search and category filters
  events register    Register for an event
  byte status        Show the BYTE registration status
  byte register      Register for a BYTE domain
  list-services      List the services modules can resolve from the registry

Use "portal-cli [command] --help" for more information about a command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the environment is used as is.
		_ = godotenv.Load()
		if err := env.Parse(&loadedConfig); err != nil {
			return fmt.Errorf("parse env: %w", err)
		}
		if backendFlag != "" {
			loadedConfig.BackendURL = backendFlag
		}
		logging.NewWithWriter(os.Stderr, "text", loadedConfig.LogLevel)
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cookieFlag, "cookie", "", `Backend session cookie, e.g. "token=abc"`)
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend-url", "", "Override BACKEND_URL")
}

// client builds a backend client for the configured base URL, carrying the
// --cookie credential when one was given.
func client(cfg cliConfig, cookie string) (*backend.Client, error) {
	cred, err := credential(cookie)
	if err != nil {
		return nil, err
	}
	factory := backend.NewFactory(cfg.BackendURL, cfg.AdminURL, &http.Client{Timeout: cfg.Timeout})
	return factory.For(cred), nil
}

func credential(raw string) (backend.Credential, error) {
	if raw == "" {
		return backend.Anonymous{}, nil
	}
	cookies, err := http.ParseCookie(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --cookie: %w", err)
	}
	return backend.NewCookieCredential(cookies...), nil
}

var errNeedsCookie = errors.New("this command needs a signed-in backend session; pass --cookie")
