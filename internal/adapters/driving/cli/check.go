package cli

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check credentials and remaining API quota",
	Long: `Report how requests are authenticated and query /rate_limit for the
remaining quota of the core and search resources.

Anonymous access works but is limited to 60 core requests per hour.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if err := loadServices(); err != nil {
		return err
	}

	printOutf(cmd, "Authentication: %s\n", authDescription(authMethod))

	out, err := githubService.Fetch(cmd.Context(), domain.NewRequest(domain.RateLimitPath), domain.RenderOptions{
		Format: domain.FormatStructured,
		Detail: domain.DetailDetailed,
	})
	if err != nil {
		return reportError(cmd, err, "checking rate limit")
	}

	printOut(cmd)
	printOut(cmd, quotaTable(out))
	return nil
}

func authDescription(m domain.AuthMethod) string {
	switch m {
	case domain.AuthMethodPAT:
		return "personal access token"
	default:
		return "anonymous (set GITHUB_TOKEN for higher limits)"
	}
}

// quotaTable renders the core and search buckets of a /rate_limit payload.
func quotaTable(payload string) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Resource", "Used", "Remaining", "Limit", "Resets"})
	for _, name := range []string{"core", "search"} {
		r := gjson.Get(payload, "resources."+name)
		if !r.Exists() {
			continue
		}
		reset := "-"
		if ts := r.Get("reset").Int(); ts > 0 {
			reset = time.Unix(ts, 0).Local().Format(time.Kitchen)
		}
		t.AppendRow(table.Row{
			name,
			r.Get("used").Int(),
			r.Get("remaining").Int(),
			r.Get("limit").Int(),
			reset,
		})
	}
	return t.Render()
}
