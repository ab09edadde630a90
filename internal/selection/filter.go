package selection

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/kanjiq/internal/model"
)

// ErrEmptySelection is returned when a filter leaves nothing to pick from.
var ErrEmptySelection = errors.New("no kanji match the selected categories")

// InvalidCategoryError reports requested categories missing from the record set.
type InvalidCategoryError struct {
	Missing   []string
	Available []string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("unknown category %s (available: %s)",
		strings.Join(quoteAll(e.Missing), ", "), strings.Join(e.Available, ", "))
}

// Filter returns the records matched by spec in input order.
func Filter(records []model.Record, spec Spec) ([]model.Record, error) {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if spec.Contains(r.Category) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptySelection
	}
	return out, nil
}

// Validate checks that every category named by spec exists in records.
func Validate(records []model.Record, spec Spec) error {
	if spec.IsNoFilter() {
		return nil
	}
	present := make(map[string]struct{}, len(records))
	for _, r := range records {
		present[r.Category] = struct{}{}
	}
	var missing []string
	for _, c := range spec.categories {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	available := make([]string, 0, len(present))
	for c := range present {
		available = append(available, c)
	}
	sort.Strings(available)
	return &InvalidCategoryError{Missing: missing, Available: available}
}

// CategoryCount is a distinct category and how many records carry it.
type CategoryCount struct {
	Name  string
	Count int
}

// Categories lists the distinct categories in records sorted by name.
func Categories(records []model.Record) []CategoryCount {
	counts := map[string]int{}
	for _, r := range records {
		counts[r.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
