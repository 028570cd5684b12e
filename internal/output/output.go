package output

import (
	"fmt"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// Serialize renders an already shaped value in the requested format.
func Serialize(v domain.Value, opts domain.RenderOptions) (string, error) {
	switch opts.Format {
	case domain.FormatTextual:
		return Textual(v, opts.Detail), nil
	case domain.FormatStructured, "":
		return Structured(v)
	default:
		return "", fmt.Errorf("unknown format %q", opts.Format)
	}
}

// Render shapes, serializes and truncates v. It is the last step of every
// successful tool call.
func Render(v domain.Value, opts domain.RenderOptions) (string, error) {
	s, err := Serialize(Shape(v, opts.Detail), opts)
	if err != nil {
		return "", err
	}
	return Truncate(s, CharacterLimit), nil
}
