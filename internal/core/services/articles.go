package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driving"
	"github.com/custodia-labs/ghmcp/internal/logger"
	"github.com/custodia-labs/ghmcp/internal/output"
)

// Ensure ArticleService implements the interface.
var _ driving.ArticleService = (*ArticleService)(nil)

const (
	// DefaultArticleLanguage tags saved articles and selects summary labels.
	DefaultArticleLanguage = "zh"

	// DefaultSummaryPattern selects which files are summarized.
	DefaultSummaryPattern = "*.md"

	// SummaryFileName is written inside the input directory by default.
	SummaryFileName = "SUMMARY.md"

	// maxSlugLength caps generated file names, in runes.
	maxSlugLength = 80

	// fallbackScanLines is how far a file without delimited front matter
	// is scanned for key: value lines.
	fallbackScanLines = 20

	frontMatterDelimiter = "---\n"
)

type summaryLabels struct {
	heading   string
	source    string
	account   string
	published string
}

var labelsByLanguage = map[string]summaryLabels{
	"zh": {heading: "# 文章汇总", source: "来源", account: "账号", published: "发表于"},
	"en": {heading: "# Article Summary", source: "Source", account: "Account", published: "Published"},
}

// ArticleService saves web articles as markdown with YAML front matter and
// builds summary indexes of saved collections.
type ArticleService struct {
	fetcher   driven.ArticleFetcher
	converter driven.MarkdownConverter
	defaults  domain.ArticleSettings
	now       func() time.Time
}

// NewArticleService creates an article service. defaults supplies the
// output directory and concurrency when a call leaves them empty.
func NewArticleService(
	fetcher driven.ArticleFetcher,
	converter driven.MarkdownConverter,
	defaults domain.ArticleSettings,
) *ArticleService {
	return &ArticleService{
		fetcher:   fetcher,
		converter: converter,
		defaults:  defaults,
		now:       time.Now,
	}
}

// SetClock overrides the time source used for the published date.
func (s *ArticleService) SetClock(now func() time.Time) {
	s.now = now
}

type readResult struct {
	url   string
	path  string
	title string
	err   error
}

// ReadArticles fetches every URL, converts it to markdown and saves it under
// the output directory. A failing URL is reported as a failed item and does
// not fail the call.
func (s *ArticleService) ReadArticles(ctx context.Context, p domain.ReadArticlesParams) (string, error) {
	const op = "reading articles"

	urls := make([]string, 0, len(p.URLs))
	for _, u := range p.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return "", domain.InvalidArgument("At least one article URL is required.",
			map[string]any{"urls": len(p.URLs)})
	}

	concurrency := p.Concurrency
	if concurrency == 0 {
		concurrency = s.defaults.Concurrency
	}
	if concurrency < domain.MinArticleConcurrency || concurrency > domain.MaxArticleConcurrency {
		return "", domain.InvalidArgument(
			fmt.Sprintf("Concurrency must be between %d and %d.",
				domain.MinArticleConcurrency, domain.MaxArticleConcurrency),
			map[string]any{"concurrency": p.Concurrency},
		)
	}

	outputDir := strings.TrimSpace(p.OutputDir)
	if outputDir == "" {
		outputDir = s.defaults.OutputDir
	}
	if outputDir == "" {
		return "", domain.InvalidArgument("Output directory is required.", nil)
	}

	language := strings.TrimSpace(p.Language)
	if language == "" {
		language = DefaultArticleLanguage
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logger.Warn("create article directory %s: %v", outputDir, err)
		return "", domain.Internal("Failed to create output directory.",
			map[string]any{"output_dir": outputDir})
	}

	logger.Section("Read Articles")
	logger.Debug("Fetching %d article(s) into %s with concurrency %d", len(urls), outputDir, concurrency)

	names := newNameSet()
	published := s.now().Format(time.DateOnly)
	results := make([]readResult, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			path, title, err := s.saveArticle(ctx, u, outputDir, p.AccountName, language, published, names)
			results[i] = readResult{url: u, path: path, title: title, err: err}
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	items := make([]domain.Value, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			logger.Debug("Article %s failed: %v", r.url, r.err)
			items = append(items, domain.Map(
				domain.F("url", domain.String(r.url)),
				domain.F("status", domain.String("failed")),
				domain.F("error", domain.String(failureReason(r.err))),
			))
			continue
		}
		succeeded++
		items = append(items, domain.Map(
			domain.F("url", domain.String(r.url)),
			domain.F("title", domain.String(r.title)),
			domain.F("path", domain.String(r.path)),
			domain.F("status", domain.String("saved")),
		))
	}

	payload := domain.Map(
		domain.F("total_count", domain.Int(int64(len(urls)))),
		domain.F("succeeded", domain.Int(int64(succeeded))),
		domain.F("failed", domain.Int(int64(len(urls)-succeeded))),
		domain.F("output_dir", domain.String(outputDir)),
		domain.F("items", domain.Seq(items...)),
	)
	return render(op, payload, p.Render)
}

func (s *ArticleService) saveArticle(
	ctx context.Context,
	url, outputDir, account, language, published string,
	names *nameSet,
) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	article, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", "", &articleError{step: "fetch failed", err: err}
	}

	content, err := s.converter.Convert(article.ContentHTML)
	if err != nil {
		return "", "", &articleError{step: "conversion failed", err: err}
	}

	header, err := FrontMatter(domain.ArticleFrontMatter{
		Title:     article.Title,
		SourceURL: url,
		Account:   account,
		Published: published,
		Language:  language,
	})
	if err != nil {
		return "", "", &articleError{step: "conversion failed", err: err}
	}

	base := Slugify(article.Title)
	if base == "" {
		base = Slugify(url)
	}
	if base == "" {
		base = "article"
	}
	path := names.reserve(outputDir, base)

	if err := os.WriteFile(path, []byte(header+content+"\n"), 0o644); err != nil {
		return "", "", &articleError{step: "write failed", err: err}
	}
	return path, article.Title, nil
}

// articleError records which step of saving an article failed. Only the
// step is reported to the caller; the cause is logged.
type articleError struct {
	step string
	err  error
}

func (e *articleError) Error() string { return e.step + ": " + e.err.Error() }

func (e *articleError) Unwrap() error { return e.err }

// failureReason maps a per-article error to a short category without
// transport detail or local paths.
func failureReason(err error) string {
	var status *domain.FetchStatusError
	var step *articleError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, domain.ErrInvalidArticleURL):
		return "invalid url"
	case errors.Is(err, domain.ErrArticleNotText):
		return "page is not text"
	case errors.As(err, &status):
		return fmt.Sprintf("fetch failed (status %d)", status.StatusCode)
	case errors.As(err, &step):
		return step.step
	default:
		return "failed"
	}
}

// SummarizeArticles indexes the front matter of saved articles into one
// markdown file.
func (s *ArticleService) SummarizeArticles(ctx context.Context, p domain.SummarizeArticlesParams) (string, error) {
	const op = "summarizing articles"

	inputDir := strings.TrimSpace(p.InputDir)
	if inputDir == "" {
		inputDir = s.defaults.OutputDir
	}
	if inputDir == "" {
		return "", domain.InvalidArgument("Input directory is required.", nil)
	}

	pattern := strings.TrimSpace(p.Pattern)
	if pattern == "" {
		pattern = DefaultSummaryPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return "", domain.InvalidArgument(
			fmt.Sprintf("Invalid file pattern: '%s'.", pattern),
			map[string]any{"pattern": pattern},
		)
	}

	language := strings.ToLower(strings.TrimSpace(p.Language))
	if language == "" {
		language = DefaultArticleLanguage
	}
	labels, ok := labelsByLanguage[language]
	if !ok {
		return "", domain.InvalidArgument(
			fmt.Sprintf("Unsupported language: '%s'. Expected 'zh' or 'en'.", p.Language),
			map[string]any{"language": p.Language},
		)
	}

	outputFile := strings.TrimSpace(p.OutputFile)
	if outputFile == "" {
		outputFile = filepath.Join(inputDir, SummaryFileName)
	}

	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return "", domain.NotFound(
			fmt.Sprintf("Directory not found: %s", inputDir),
			map[string]any{"input_dir": inputDir},
		).WithSuggestion("Check the input directory path, or run read_articles first.")
	}

	if err := ctx.Err(); err != nil {
		return "", domain.AsError(err, op)
	}

	logger.Section("Summarize Articles")
	entries, err := collectArticles(inputDir, pattern, outputFile)
	if err != nil {
		logger.Warn("scan %s: %v", inputDir, err)
		return "", domain.Internal("Failed to scan the input directory.",
			map[string]any{"input_dir": inputDir})
	}
	logger.Debug("Found %d article(s) in %s", len(entries), inputDir)

	if err := os.WriteFile(outputFile, []byte(summaryMarkdown(entries, labels)), 0o644); err != nil {
		logger.Warn("write summary %s: %v", outputFile, err)
		return "", domain.Internal("Failed to write the summary file.",
			map[string]any{"path": outputFile})
	}

	items := make([]domain.Value, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.Map(
			domain.F("title", domain.String(e.Title)),
			domain.F("path", domain.String(e.path)),
			domain.F("published", domain.String(e.Published)),
			domain.F("account", domain.String(e.Account)),
			domain.F("source_url", domain.String(e.SourceURL)),
		))
	}

	payload := domain.Map(
		domain.F("saved", domain.Bool(true)),
		domain.F("path", domain.String(outputFile)),
		domain.F("total_count", domain.Int(int64(len(entries)))),
		domain.F("items", domain.Seq(items...)),
	)
	return render(op, payload, p.Render)
}

type articleEntry struct {
	domain.ArticleFrontMatter
	path string
}

func collectArticles(inputDir, pattern, outputFile string) ([]articleEntry, error) {
	skip, _ := filepath.Abs(outputFile)

	var mu sync.Mutex
	var entries []articleEntry

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, inputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == skip {
			return nil
		}

		rel, relErr := filepath.Rel(inputDir, path)
		if relErr != nil {
			rel = path
		}
		name := d.Name()
		matched, _ := doublestar.Match(pattern, name)
		if !matched {
			matched, _ = doublestar.Match(pattern, filepath.ToSlash(rel))
		}
		if !matched {
			return nil
		}

		fm := ParseFrontMatter(path)
		if fm.Title == "" {
			fm.Title = strings.TrimSuffix(name, filepath.Ext(name))
		}

		mu.Lock()
		entries = append(entries, articleEntry{ArticleFrontMatter: fm, path: path})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", inputDir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Published != b.Published {
			return a.Published < b.Published
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.path < b.path
	})
	return entries, nil
}

func summaryMarkdown(entries []articleEntry, labels summaryLabels) string {
	lines := []string{labels.heading, ""}
	for _, e := range entries {
		source := e.SourceURL
		if source == "" {
			source = e.path
		}
		lines = append(lines,
			"- "+e.Title,
			fmt.Sprintf("  - %s: %s", labels.source, source),
			fmt.Sprintf("  - %s: %s", labels.account, e.Account),
			fmt.Sprintf("  - %s: %s", labels.published, e.Published),
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// FrontMatter renders the YAML header written above a saved article.
func FrontMatter(fm domain.ArticleFrontMatter) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	return frontMatterDelimiter + buf.String() + frontMatterDelimiter + "\n", nil
}

// ParseFrontMatter reads the header of a saved article. Files without a
// delimited header are scanned for leading key: value lines. Unreadable
// files and malformed YAML yield an empty header.
func ParseFrontMatter(path string) domain.ArticleFrontMatter {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ArticleFrontMatter{}
	}
	content := string(raw)

	if strings.HasPrefix(content, frontMatterDelimiter) {
		if end := strings.Index(content[len(frontMatterDelimiter):], "\n"+frontMatterDelimiter); end != -1 {
			var fm domain.ArticleFrontMatter
			header := content[len(frontMatterDelimiter) : len(frontMatterDelimiter)+end]
			if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
				return domain.ArticleFrontMatter{}
			}
			return fm
		}
	}

	var fm domain.ArticleFrontMatter
	for i, line := range strings.Split(content, "\n") {
		if i >= fallbackScanLines {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "title":
			fm.Title = value
		case "source_url":
			fm.SourceURL = value
		case "account":
			fm.Account = value
		case "published":
			fm.Published = value
		case "language":
			fm.Language = value
		}
	}
	return fm
}

// Slugify lowercases s and joins its letter and digit runs with hyphens.
// Non-Latin letters are kept.
func Slugify(s string) string {
	var b strings.Builder
	pending := false
	n := 0
	for _, r := range strings.ToLower(s) {
		if n >= maxSlugLength {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
				n++
			}
			pending = false
			b.WriteRune(r)
			n++
			continue
		}
		pending = true
	}
	return strings.TrimRight(b.String(), "-")
}

// nameSet hands out unique file names within one call. Files left by an
// earlier call are overwritten.
type nameSet struct {
	mu    sync.Mutex
	taken map[string]struct{}
}

func newNameSet() *nameSet {
	return &nameSet{taken: make(map[string]struct{})}
}

func (n *nameSet) reserve(dir, base string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := 1; ; i++ {
		name := base
		if i > 1 {
			name = base + "-" + strconv.Itoa(i)
		}
		path := filepath.Join(dir, name+".md")
		if _, ok := n.taken[path]; ok {
			continue
		}
		n.taken[path] = struct{}{}
		return path
	}
}

func render(op string, payload domain.Value, opts domain.RenderOptions) (string, error) {
	out, err := output.Render(payload, opts)
	if err != nil {
		logger.Warn("render %s: %v", op, err)
		return "", domain.AsError(err, op)
	}
	return out, nil
}
