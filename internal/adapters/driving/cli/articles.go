package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

var (
	readOutputDir   string
	readAccount     string
	readLanguage    string
	readConcurrency int
	readFormat      string

	summaryPattern  string
	summaryOutput   string
	summaryLanguage string
	summaryFormat   string
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Save web articles as markdown and index them",
}

var articlesReadCmd = &cobra.Command{
	Use:   "read <url>...",
	Short: "Fetch articles and save them as markdown",
	Long: `Fetch each URL, extract the article body, convert it to markdown and save
it with a YAML front matter header. Failed URLs are reported per item.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runArticlesRead,
}

var articlesSummarizeCmd = &cobra.Command{
	Use:   "summarize [dir]",
	Short: "Write a summary index of saved articles",
	Long: `Read the front matter of every matching file under dir and write one
summary markdown file listing title, source, account and publish date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArticlesSummarize,
}

func init() {
	articlesReadCmd.Flags().StringVarP(&readOutputDir, "output-dir", "o", "", "directory for the markdown files")
	articlesReadCmd.Flags().StringVar(&readAccount, "account", "", "publishing account recorded in the front matter")
	articlesReadCmd.Flags().StringVar(&readLanguage, "language", "", "language tag recorded in the front matter")
	articlesReadCmd.Flags().IntVarP(&readConcurrency, "concurrency", "c", 0, "parallel downloads (1-16)")
	articlesReadCmd.Flags().StringVarP(&readFormat, "format", "f", "", "output format: json or markdown")

	articlesSummarizeCmd.Flags().StringVar(&summaryPattern, "pattern", "", "glob selecting article files (default *.md)")
	articlesSummarizeCmd.Flags().StringVarP(&summaryOutput, "output", "o", "", "summary file (default <dir>/SUMMARY.md)")
	articlesSummarizeCmd.Flags().StringVar(&summaryLanguage, "language", "", "summary labels: zh or en")
	articlesSummarizeCmd.Flags().StringVarP(&summaryFormat, "format", "f", "", "output format: json or markdown")

	articlesCmd.AddCommand(articlesReadCmd)
	articlesCmd.AddCommand(articlesSummarizeCmd)
	rootCmd.AddCommand(articlesCmd)
}

func loadArticleService() error {
	if err := loadServices(); err != nil {
		return err
	}
	if articleService == nil {
		return errors.New("article service not configured")
	}
	return nil
}

func runArticlesRead(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions(cmd, readFormat, string(domain.DetailDetailed))
	if err != nil {
		return reportError(cmd, err, "parsing flags")
	}
	if err := loadArticleService(); err != nil {
		return err
	}

	out, err := articleService.ReadArticles(cmd.Context(), domain.ReadArticlesParams{
		URLs:        args,
		OutputDir:   readOutputDir,
		AccountName: readAccount,
		Language:    readLanguage,
		Concurrency: readConcurrency,
		Render:      opts,
	})
	if err != nil {
		return reportError(cmd, err, "reading articles")
	}
	printOut(cmd, out)
	return nil
}

func runArticlesSummarize(cmd *cobra.Command, args []string) error {
	opts, err := renderOptions(cmd, summaryFormat, string(domain.DetailDetailed))
	if err != nil {
		return reportError(cmd, err, "parsing flags")
	}
	if err := loadArticleService(); err != nil {
		return err
	}

	var dir string
	if len(args) == 1 {
		dir = args[0]
	}

	out, err := articleService.SummarizeArticles(cmd.Context(), domain.SummarizeArticlesParams{
		InputDir:   dir,
		Pattern:    summaryPattern,
		OutputFile: summaryOutput,
		Language:   summaryLanguage,
		Render:     opts,
	})
	if err != nil {
		return reportError(cmd, err, "summarizing articles")
	}
	printOut(cmd, out)
	return nil
}
