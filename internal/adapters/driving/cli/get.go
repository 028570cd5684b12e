package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

var (
	getParams []string
	getFormat string
	getDetail string
	getWeb    bool
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var getCmd = &cobra.Command{
	Use:   "get <endpoint>",
	Short: "Fetch a GitHub API endpoint through the response pipeline",
	Long: `Fetch a read-only GitHub REST endpoint and print it shaped, rendered and
truncated exactly as the MCP tools would.

The output defaults to markdown on a terminal and JSON otherwise.

Examples:
  ghmcp get /repos/golang/go
  ghmcp get /search/issues -P q="repo:golang/go is:open" -P per_page=5 --detail detailed
  ghmcp get /repos/golang/go/pulls/1 --web`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringArrayVarP(&getParams, "param", "P", nil, "query parameter as key=value (repeatable)")
	getCmd.Flags().StringVarP(&getFormat, "format", "f", "", "output format: json or markdown")
	getCmd.Flags().StringVarP(&getDetail, "detail", "d", "", "detail level: concise or detailed")
	getCmd.Flags().BoolVar(&getWeb, "web", false, "print the github.com page for the endpoint instead")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	endpoint := args[0]
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	if getWeb {
		u := domain.ResolveWebURL(endpoint)
		if u == "" {
			return fmt.Errorf("no web page known for %s", endpoint)
		}
		printOut(cmd, u)
		return nil
	}

	params, err := parseParams(getParams)
	if err != nil {
		return err
	}

	opts, err := renderOptions(cmd, getFormat, getDetail)
	if err != nil {
		return reportError(cmd, err, "parsing flags")
	}

	if err := loadServices(); err != nil {
		return err
	}

	out, err := githubService.Fetch(cmd.Context(), domain.NewRequest(endpoint, params...), opts)
	if err != nil {
		return reportError(cmd, err, "fetching "+endpoint)
	}
	printOut(cmd, out)
	return nil
}

// renderOptions parses the format and detail flags. Without --format the
// output is markdown on a terminal and JSON otherwise.
func renderOptions(cmd *cobra.Command, format, detail string) (domain.RenderOptions, error) {
	if !cmd.Flags().Changed("format") && isTerminal(cmd.OutOrStdout()) {
		format = string(domain.FormatTextual)
	}
	return domain.ParseRenderOptions(format, detail)
}

// parseParams splits key=value pairs, keeping their order.
func parseParams(raw []string) ([]domain.Param, error) {
	params := make([]domain.Param, 0, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, errors.New("invalid --param " + kv + ": expected key=value")
		}
		params = append(params, domain.P(key, value))
	}
	return params, nil
}
