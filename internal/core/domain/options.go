package domain

import (
	"fmt"
	"strings"
)

// Format selects the rendering syntax.
type Format string

// Detail selects how much of a payload survives shaping.
type Detail string

const (
	// FormatStructured renders indented JSON.
	FormatStructured Format = "json"
	// FormatTextual renders markdown.
	FormatTextual Format = "markdown"

	// DetailConcise keeps an allow-listed summary.
	DetailConcise Detail = "concise"
	// DetailDetailed keeps the full payload.
	DetailDetailed Detail = "detailed"
)

// ParseFormat accepts json/structured and markdown/textual. Empty means
// structured.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "json", "structured":
		return FormatStructured, nil
	case "markdown", "textual", "text":
		return FormatTextual, nil
	default:
		return "", InvalidArgument(
			fmt.Sprintf("Unsupported format: '%s'. Expected 'json' or 'markdown'.", value),
			map[string]any{"format": value},
		)
	}
}

// ParseDetail accepts concise or detailed. Empty means concise.
func ParseDetail(value string) (Detail, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "concise":
		return DetailConcise, nil
	case "detailed":
		return DetailDetailed, nil
	default:
		return "", InvalidArgument(
			fmt.Sprintf("Unsupported detail level: '%s'. Expected 'concise' or 'detailed'.", value),
			map[string]any{"detail": value},
		)
	}
}

// RenderOptions carries the caller's format and detail selection.
type RenderOptions struct {
	Format Format
	Detail Detail
}

// ParseRenderOptions validates both selectors.
func ParseRenderOptions(format, detail string) (RenderOptions, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return RenderOptions{}, err
	}
	d, err := ParseDetail(detail)
	if err != nil {
		return RenderOptions{}, err
	}
	return RenderOptions{Format: f, Detail: d}, nil
}
