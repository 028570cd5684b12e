package html

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.MarkdownConverter = (*Normaliser)(nil)

// UntitledArticle is the title used when a page names none.
const UntitledArticle = "Untitled"

// Title candidates, in order of preference.
var (
	titleHeading = "h1#activity-name"
	titleMeta    = "meta[property='og:title']"
)

// Body containers, in order of preference.
var bodySelectors = []string{"#js_content", ".rich_media_content"}

// Normaliser handles HTML articles.
type Normaliser struct {
	converter *md.Converter
}

// New creates a new HTML normaliser. Headings are written in ATX style.
func New() *Normaliser {
	return &Normaliser{
		converter: md.NewConverter("", true, &md.Options{HeadingStyle: "atx"}),
	}
}

// Extract parses a page and returns its title and body HTML.
func (n *Normaliser) Extract(page string) (*domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	body, err := extractBody(doc)
	if err != nil {
		return nil, fmt.Errorf("extract body: %w", err)
	}

	return &domain.Article{
		Title:       extractTitle(doc),
		ContentHTML: body,
	}, nil
}

// Convert turns an HTML fragment into markdown.
func (n *Normaliser) Convert(fragment string) (string, error) {
	out, err := n.converter.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}
	return out, nil
}

func extractTitle(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find(titleHeading).First().Text()); t != "" {
		return t
	}
	if content, ok := doc.Find(titleMeta).First().Attr("content"); ok {
		if t := strings.TrimSpace(content); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return UntitledArticle
}

// extractBody returns the outer HTML of the first matching container, the
// body element, or the whole document.
func extractBody(doc *goquery.Document) (string, error) {
	for _, sel := range bodySelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return goquery.OuterHtml(s)
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return goquery.OuterHtml(body)
	}
	return doc.Html()
}
