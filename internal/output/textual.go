package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

const (
	previewLimit     = 100
	cellLimit        = 50
	detailedBullets  = 10
	noItemsFound     = "No items found"
	detailedModeHint = "Use 'detailed' mode for full information."
)

// Textual renders v as markdown.
func Textual(v domain.Value, detail domain.Detail) string {
	if detail == domain.DetailDetailed {
		return detailedText(v)
	}
	return conciseText(v)
}

func conciseText(v domain.Value) string {
	switch v.Kind() {
	case domain.KindMap:
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Key", "Value"})
		for _, f := range v.Fields() {
			t.AppendRow(table.Row{f.Key, preview(f.Value)})
		}
		return t.RenderMarkdown()
	case domain.KindSeq:
		items := v.Items()
		if len(items) == 0 {
			return noItemsFound
		}
		if items[0].IsMap() {
			return fmt.Sprintf("%d items found. %s", len(items), detailedModeHint)
		}
		return bullets(items, ConciseItemLimit)
	default:
		return v.Text()
	}
}

func detailedText(v domain.Value) string {
	switch v.Kind() {
	case domain.KindMap:
		return detailedMap(v)
	case domain.KindSeq:
		items := v.Items()
		if len(items) == 0 {
			return noItemsFound
		}
		if items[0].IsMap() {
			return itemTable(items)
		}
		return bullets(items, len(items))
	default:
		return "```\n" + v.Text() + "\n```"
	}
}

func detailedMap(v domain.Value) string {
	sections := make([]string, 0, v.Len())
	for _, f := range v.Fields() {
		switch f.Value.Kind() {
		case domain.KindMap:
			sections = append(sections, "### "+f.Key)
			if body := detailedMap(f.Value); body != "" {
				sections = append(sections, body)
			}
		case domain.KindSeq:
			items := f.Value.Items()
			sections = append(sections, fmt.Sprintf("### %s (%d items)", f.Key, len(items)))
			switch {
			case len(items) == 0:
			case items[0].IsMap():
				sections = append(sections, itemTable(items))
			default:
				sections = append(sections, bullets(items, detailedBullets))
			}
		default:
			sections = append(sections, fmt.Sprintf("**%s**: %s", f.Key, f.Value.Text()))
		}
	}
	return strings.Join(sections, "\n\n")
}

// itemTable renders maps as a table whose columns are the keys of the first
// element.
func itemTable(items []domain.Value) string {
	columns := items[0].Keys()

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}

	t := table.NewWriter()
	t.AppendHeader(header)
	for _, item := range items {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			cell := ""
			if val, ok := item.Get(c); ok {
				cell = cut(val.Text(), cellLimit)
			}
			row[i] = cell
		}
		t.AppendRow(row)
	}
	return t.RenderMarkdown()
}

// bullets lists at most limit items, noting how many were left out.
func bullets(items []domain.Value, limit int) string {
	shown := items
	if len(shown) > limit {
		shown = shown[:limit]
	}

	lines := make([]string, 0, len(shown)+1)
	for _, item := range shown {
		lines = append(lines, "- "+item.Text())
	}
	if rest := len(items) - len(shown); rest > 0 {
		lines = append(lines, fmt.Sprintf("... and %d more items", rest))
	}
	return strings.Join(lines, "\n")
}

// preview summarizes a value for a concise table cell.
func preview(v domain.Value) string {
	switch v.Kind() {
	case domain.KindMap:
		return fmt.Sprintf("object (%d keys)", v.Len())
	case domain.KindSeq:
		return fmt.Sprintf("array (%d items)", v.Len())
	}
	s := v.Text()
	if short := cut(s, previewLimit); short != s {
		return short + "..."
	}
	return s
}

// cut keeps the first n characters of s.
func cut(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
