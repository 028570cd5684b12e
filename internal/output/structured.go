package output

import (
	"bytes"
	"encoding/json"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// Structured renders v as JSON indented by two spaces, in key order, with
// HTML and non-ASCII characters left as they are.
func Structured(v domain.Value) (string, error) {
	compact, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}
