package output

import "github.com/custodia-labs/ghmcp/internal/core/domain"

// ConciseItemLimit caps sequences in concise mode.
const ConciseItemLimit = 5

// conciseKeys survive concise shaping together with their values.
var conciseKeys = map[string]struct{}{
	"total_count": {},
	"items":       {},
	"name":        {},
	"full_name":   {},
	"description": {},
	"html_url":    {},
	"number":      {},
	"title":       {},
	"state":       {},
	"path":        {},
	"type":        {},
}

// Shape prunes v for the detail level. Detailed returns v unchanged.
// Concise keeps allow-listed keys, recurses into other containers, drops
// the remaining scalars and caps every sequence at ConciseItemLimit items.
// Shaping is idempotent.
func Shape(v domain.Value, detail domain.Detail) domain.Value {
	if detail == domain.DetailDetailed {
		return v
	}
	return concise(v)
}

func concise(v domain.Value) domain.Value {
	switch v.Kind() {
	case domain.KindMap:
		return conciseMap(v)
	case domain.KindSeq:
		return conciseSeq(v)
	default:
		return v
	}
}

func conciseMap(v domain.Value) domain.Value {
	fields := make([]domain.Field, 0, v.Len())
	for _, f := range v.Fields() {
		if _, keep := conciseKeys[f.Key]; keep {
			fields = append(fields, domain.F(f.Key, f.Value.Head(ConciseItemLimit)))
			continue
		}
		if f.Value.IsContainer() {
			fields = append(fields, domain.F(f.Key, concise(f.Value)))
		}
	}
	return domain.Map(fields...)
}

func conciseSeq(v domain.Value) domain.Value {
	head := v.Head(ConciseItemLimit).Items()
	items := make([]domain.Value, len(head))
	for i, item := range head {
		if item.IsMap() {
			items[i] = conciseMap(item)
		} else {
			items[i] = item
		}
	}
	return domain.Seq(items...)
}
