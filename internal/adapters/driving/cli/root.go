// Package cli provides the ghmcp command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driving"
	"github.com/custodia-labs/ghmcp/internal/logger"
)

// Services are the driving ports the commands use.
type Services struct {
	GitHub   driving.GitHubService
	Articles driving.ArticleService

	// AuthMethod describes how the gateway authenticates.
	AuthMethod domain.AuthMethod
}

// Wiring connects the commands to the core. The main package provides it.
type Wiring struct {
	// Settings opens the settings service for a config file path. An empty
	// path selects the default location.
	Settings func(configPath string) (driving.SettingsService, error)

	// Services builds the pipeline from effective settings.
	Services func(settings *domain.AppSettings) (*Services, error)
}

var (
	cfgFile string
	verbose bool

	version = "dev"
	wiring  Wiring

	// Built on first use. Tests assign them directly.
	settingsService driving.SettingsService
	githubService   driving.GitHubService
	articleService  driving.ArticleService
	authMethod      domain.AuthMethod
)

var rootCmd = &cobra.Command{
	Use:   "ghmcp",
	Short: "GitHub tools for AI assistants over MCP",
	Long: `ghmcp exposes read-only GitHub queries and an article reader as
Model Context Protocol tools. Responses are shaped to a concise or detailed
view, rendered as JSON or markdown and capped in size.

Credentials come from GITHUB_TOKEN (a .env file in the working directory is
honoured) or the github.token config key.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.ghmcp/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
}

// Execute runs the root command with the given wiring and version.
func Execute(ctx context.Context, w Wiring, v string) error {
	wiring = w
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}

// loadSettings returns the settings service, opening it on first use.
func loadSettings() (driving.SettingsService, error) {
	if settingsService != nil {
		return settingsService, nil
	}
	if wiring.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	svc, err := wiring.Settings(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	settingsService = svc
	return svc, nil
}

// loadServices builds the core services on first use.
func loadServices() error {
	if githubService != nil {
		return nil
	}
	if wiring.Services == nil {
		return errors.New("github service not configured")
	}

	settingsSvc, err := loadSettings()
	if err != nil {
		return err
	}
	settings, err := settingsSvc.Get()
	if err != nil {
		return err
	}
	if !verbose {
		if err := logger.SetLevel(settings.LogLevel); err != nil {
			return err
		}
	}

	svcs, err := wiring.Services(settings)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}
	githubService = svcs.GitHub
	articleService = svcs.Articles
	authMethod = svcs.AuthMethod
	return nil
}

// reportError writes the suggestion of a domain error to stderr and returns
// a short error for cobra to print.
func reportError(cmd *cobra.Command, err error, operation string) error {
	derr := domain.AsError(err, operation)
	if derr.Suggestion != "" {
		cmd.PrintErrln("Suggestion: " + derr.Suggestion)
	}
	return derr
}

// printOut writes a result line to stdout. cmd.Println goes to stderr
// unless an output writer is set.
func printOut(cmd *cobra.Command, a ...any) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), a...)
}

// printOutf is the formatted form of printOut.
func printOutf(cmd *cobra.Command, format string, a ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
