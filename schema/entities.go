// Package schema extracts and normalizes JSON-LD structured data from a
// parsed HTML document into a flat list of typed entities.
package schema

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Entity is one normalized JSON-LD object. Type is always non-empty;
// objects without an @type are dropped during normalization.
type Entity struct {
	Type  string                 `json:"type"`
	ID    string                 `json:"id,omitempty"`
	Props map[string]interface{} `json:"properties"`
}

// Str returns a string-valued property, or "" when absent or non-string.
func (e Entity) Str(key string) string {
	s, _ := e.Props[key].(string)
	return strings.TrimSpace(s)
}

// Has reports whether the property is present and non-empty.
func (e Entity) Has(key string) bool {
	v, ok := e.Props[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) != ""
	case []interface{}:
		return len(t) > 0
	case map[string]interface{}:
		return len(t) > 0
	}
	return true
}

// Obj returns a property value that is itself a JSON-LD object, or nil.
func (e Entity) Obj(key string) map[string]interface{} {
	m, _ := e.Props[key].(map[string]interface{})
	return m
}

// List returns a property value as a slice. A single object is wrapped
// so callers can treat one-or-many properties uniformly.
func (e Entity) List(key string) []interface{} {
	switch v := e.Props[key].(type) {
	case []interface{}:
		return v
	case map[string]interface{}:
		return []interface{}{v}
	}
	return nil
}

// IsType reports whether the entity's type matches (case-sensitive,
// Schema.org types are conventionally capitalized).
func (e Entity) IsType(name string) bool {
	return e.Type == name
}

// Parse finds every <script type="application/ld+json"> block in the
// document and flattens its content into entities. A top-level array is
// spread, a @graph property is spread, anything else is one entity.
// Malformed JSON in one block is logged and skipped; it never aborts
// parsing of the remaining blocks.
func Parse(doc *goquery.Document, logger *zap.Logger) []Entity {
	var entities []Entity
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		var parsed interface{}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			if logger != nil {
				logger.Warn("skipping malformed JSON-LD block",
					zap.Int("block", i),
					zap.Error(err))
			}
			return
		}
		entities = append(entities, flatten(parsed)...)
	})
	return entities
}

// flatten spreads arrays and @graph containers into individual entities.
func flatten(v interface{}) []Entity {
	switch t := v.(type) {
	case []interface{}:
		var out []Entity
		for _, item := range t {
			out = append(out, flatten(item)...)
		}
		return out
	case map[string]interface{}:
		if graph, ok := t["@graph"]; ok {
			return flatten(graph)
		}
		if e, ok := normalize(t); ok {
			return []Entity{e}
		}
	}
	return nil
}

// normalize converts a raw JSON-LD object into an Entity. Objects with
// no usable @type are dropped.
func normalize(obj map[string]interface{}) (Entity, bool) {
	typ := typeOf(obj)
	if typ == "" {
		return Entity{}, false
	}
	id, _ := obj["@id"].(string)
	return Entity{Type: typ, ID: id, Props: obj}, true
}

// typeOf resolves @type, which may be a string or an array of strings.
func typeOf(obj map[string]interface{}) string {
	switch t := obj["@type"].(type) {
	case string:
		return strings.TrimSpace(t)
	case []interface{}:
		for _, v := range t {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
