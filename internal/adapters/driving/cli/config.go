package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change ghmcp settings.

Settings are layered: built-in defaults, then the config file, then
environment variables such as GITHUB_TOKEN and GHMCP_CACHE_TTL.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting in the config file",
	Long: `Store a setting in the config file. Durations accept Go syntax (30s, 5m)
or a bare number of seconds. Run 'ghmcp config keys' for the known keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the config file keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := loadSettings()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	printOut(cmd, settingsTable(settings))
	if !settings.HasToken() {
		printOut(cmd)
		printOut(cmd, "No GitHub token configured. Requests are anonymous.")
	}
	return nil
}

func settingsTable(s *domain.AppSettings) string {
	token := "(not set)"
	if s.HasToken() {
		token = maskToken(s.GitHub.Token)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.AppendRows([]table.Row{
		{"github.token", token},
		{"github.api_url", s.GitHub.APIURL},
		{"github.timeout", s.GitHub.Timeout},
		{"github.requests_per_second", strconv.FormatFloat(s.GitHub.RequestsPerSecond, 'g', -1, 64)},
		{"cache.enabled", s.Cache.Enabled},
		{"cache.ttl", s.Cache.TTL},
		{"articles.output_dir", s.Articles.OutputDir},
		{"articles.concurrency", s.Articles.Concurrency},
		{"log_level", s.LogLevel},
	})
	return t.Render()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := loadSettings()
	if err != nil {
		return err
	}

	if err := svc.Set(args[0], args[1]); err != nil {
		return err
	}
	printOutf(cmd, "Set %s\n", args[0])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	svc, err := loadSettings()
	if err != nil {
		return err
	}
	for _, k := range svc.Keys() {
		printOut(cmd, k)
	}
	return nil
}

// maskToken keeps only the ends of a credential.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
