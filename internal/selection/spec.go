// Package selection parses category selections and filters kanji records.
package selection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is a category selection: either no filter or a non-empty set of categories.
// The zero value is NoFilter.
type Spec struct {
	categories []string
}

// NoFilter returns a Spec that matches every record.
func NoFilter() Spec {
	return Spec{}
}

// Of returns a Spec matching the given categories. Blank names are skipped and
// duplicates collapse; an empty result is NoFilter.
func Of(categories ...string) Spec {
	seen := make(map[string]struct{}, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	if len(out) == 0 {
		return Spec{}
	}
	return Spec{categories: out}
}

// IsNoFilter reports whether the spec matches every record.
func (s Spec) IsNoFilter() bool {
	return len(s.categories) == 0
}

// Categories returns a copy of the selected category names in first-given order.
func (s Spec) Categories() []string {
	if len(s.categories) == 0 {
		return nil
	}
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Contains reports whether the category is selected. NoFilter contains everything.
func (s Spec) Contains(category string) bool {
	if s.IsNoFilter() {
		return true
	}
	for _, c := range s.categories {
		if c == category {
			return true
		}
	}
	return false
}

// Equal reports whether both specs select the same set of categories.
func (s Spec) Equal(other Spec) bool {
	if len(s.categories) != len(other.categories) {
		return false
	}
	for _, c := range s.categories {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// String renders the spec as a CLI token.
func (s Spec) String() string {
	if s.IsNoFilter() {
		return AllToken
	}
	return strings.Join(s.categories, ",")
}

// MarshalJSON encodes NoFilter as null and categories as an array.
func (s Spec) MarshalJSON() ([]byte, error) {
	if s.IsNoFilter() {
		return []byte("null"), nil
	}
	return json.Marshal(s.categories)
}

// UnmarshalJSON accepts null, a CLI token string, or an array of category names.
func (s *Spec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = NoFilter()
		return nil
	}
	switch trimmed[0] {
	case '"':
		var token string
		if err := json.Unmarshal(trimmed, &token); err != nil {
			return err
		}
		parsed, err := Parse(token)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case '[':
		var names []string
		if err := json.Unmarshal(trimmed, &names); err != nil {
			return err
		}
		*s = fromList(names)
		return nil
	default:
		return fmt.Errorf("selected_category must be null, a string, or an array of strings")
	}
}

// MarshalYAML mirrors MarshalJSON.
func (s Spec) MarshalYAML() (any, error) {
	if s.IsNoFilter() {
		return nil, nil
	}
	return s.Categories(), nil
}

// UnmarshalYAML mirrors UnmarshalJSON.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*s = NoFilter()
			return nil
		}
		parsed, err := Parse(node.Value)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*s = fromList(names)
		return nil
	default:
		return fmt.Errorf("line %d: selected_category must be null, a string, or a list of strings", node.Line)
	}
}

// fromList takes stored names verbatim; a stored "all" still means no filter.
func fromList(names []string) Spec {
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), AllToken) {
			return NoFilter()
		}
	}
	return Of(names...)
}
