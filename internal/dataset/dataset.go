// Package dataset holds the row model that page elements bind to and the
// small template language used to project row fields into element content.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is the absolute identifier of a dataset published by the host.
type Path string

// Datum is a single dataset row: a mapping from field name to value. Values
// arrive as decoded CBOR, so nested rows show up as map[string]any.
type Datum map[string]any

// Lookup returns the value for a possibly dotted field name. Missing and
// null values both report ok=false.
func (d Datum) Lookup(field string) (any, bool) {
	if d == nil || field == "" {
		return nil, false
	}
	var current any = map[string]any(d)
	for _, part := range strings.Split(field, ".") {
		switch node := current.(type) {
		case map[string]any:
			current = node[part]
		case Datum:
			current = node[part]
		default:
			return nil, false
		}
		if current == nil {
			return nil, false
		}
	}
	return current, true
}

// Format renders a row value for display.
func Format(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Source yields the current rows of a dataset. Missing datasets have no
// rows.
type Source interface {
	Rows(Path) []Datum
}

// Map is a Source backed by a plain map.
type Map map[Path][]Datum

func (m Map) Rows(p Path) []Datum { return m[p] }
