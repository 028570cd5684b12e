package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// ValueKind identifies which variant a Value holds.
type ValueKind int

// Value variants.
const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindSeq
	KindMap
)

// String returns the variant name used in placeholders and logs.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSeq:
		return "array"
	case KindMap:
		return "object"
	default:
		return "unknown"
	}
}

// Field is one key/value pair of a map Value.
type Field struct {
	Key   string
	Value Value
}

// Value is a decoded upstream payload: a tree of ordered maps, sequences
// and scalars. The zero Value is null.
//
// Values are treated as immutable once built; every transformation returns
// a new tree.
type Value struct {
	kind   ValueKind
	b      bool
	num    string // JSON number literal
	str    string
	items  []Value
	fields []Field
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int wraps an integer.
func Int(n int64) Value { return Value{kind: KindNumber, num: strconv.FormatInt(n, 10)} }

// Float wraps a float.
func Float(f float64) Value {
	return Value{kind: KindNumber, num: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Number wraps a JSON number literal verbatim.
func Number(literal string) Value { return Value{kind: KindNumber, num: literal} }

// Seq builds a sequence.
func Seq(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSeq, items: items}
}

// Map builds a map from ordered fields. Later duplicates replace earlier
// values in place.
func Map(fields ...Field) Value {
	out := Value{kind: KindMap, fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		out = out.With(f.Key, f.Value)
	}
	return out
}

// F is shorthand for constructing a Field.
func F(key string, v Value) Field { return Field{Key: key, Value: v} }

// Kind reports the variant.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsMap reports whether v is a map.
func (v Value) IsMap() bool { return v.kind == KindMap }

// IsSeq reports whether v is a sequence.
func (v Value) IsSeq() bool { return v.kind == KindSeq }

// IsContainer reports whether v is a map or a sequence.
func (v Value) IsContainer() bool { return v.kind == KindMap || v.kind == KindSeq }

// Len returns the number of fields or items; zero for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindMap:
		return len(v.fields)
	case KindSeq:
		return len(v.items)
	default:
		return 0
	}
}

// Fields returns the map fields in insertion order.
func (v Value) Fields() []Field {
	if v.kind != KindMap {
		return nil
	}
	return v.fields
}

// Items returns the sequence elements.
func (v Value) Items() []Value {
	if v.kind != KindSeq {
		return nil
	}
	return v.items
}

// Get looks up a map key.
func (v Value) Get(key string) (Value, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Keys returns the map keys in order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.fields))
	for _, f := range v.fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// With returns a copy of the map with key set. An existing key keeps its
// position; a new key is appended. Non-map values become a single-key map.
func (v Value) With(key string, val Value) Value {
	fields := make([]Field, 0, len(v.fields)+1)
	replaced := false
	if v.kind == KindMap {
		for _, f := range v.fields {
			if f.Key == key {
				fields = append(fields, Field{Key: key, Value: val})
				replaced = true
				continue
			}
			fields = append(fields, f)
		}
	}
	if !replaced {
		fields = append(fields, Field{Key: key, Value: val})
	}
	return Value{kind: KindMap, fields: fields}
}

// Head returns a sequence of at most n leading items.
func (v Value) Head(n int) Value {
	if v.kind != KindSeq || len(v.items) <= n {
		return v
	}
	return Value{kind: KindSeq, items: v.items[:n]}
}

// Str returns the string payload, or "" for non-strings.
func (v Value) Str() string { return v.str }

// Truth returns the boolean payload.
func (v Value) Truth() bool { return v.b }

// Text renders a scalar the way it appears in plain text. Containers render
// as compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	default:
		raw, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

// Equal reports deep equality, including key order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindSeq:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != o.fields[i].Key || !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON encodes the tree compactly, preserving key order and leaving
// HTML and non-ASCII characters unescaped.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		if v.num == "" {
			buf.WriteString("0")
		} else {
			buf.WriteString(v.num)
		}
	case KindString:
		return encodeString(buf, v.str)
	case KindSeq:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown value kind %d", v.kind)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON decodes JSON into v, preserving object key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeValue(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// DecodeValue parses a JSON document into a Value. Whitespace-only input
// decodes to null.
func DecodeValue(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Null(), nil
	}
	if !gjson.ValidBytes(data) {
		return Value{}, fmt.Errorf("invalid JSON document")
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Raw)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			items := []Value{}
			r.ForEach(func(_, item gjson.Result) bool {
				items = append(items, fromResult(item))
				return true
			})
			return Seq(items...)
		}
		out := Value{kind: KindMap, fields: []Field{}}
		r.ForEach(func(key, item gjson.Result) bool {
			out = out.With(key.Str, fromResult(item))
			return true
		})
		return out
	}
	return Null()
}
