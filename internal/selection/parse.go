package selection

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// AllToken selects every level, or every record when parsed as a Spec.
	AllToken = "all"
	// LevelPrefix is prepended to numeric level tokens.
	LevelPrefix = "jlptn"
	MinLevel    = 1
	MaxLevel    = 5

	levelOutOfRange = "level out of range"
)

// InvalidRangeError reports a malformed "a-b" level range or a level
// number outside MinLevel..MaxLevel.
type InvalidRangeError struct {
	Input  string
	Reason string
	Err    error
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range %q: %s", e.Input, e.Reason)
}

func (e *InvalidRangeError) Unwrap() error {
	return e.Err
}

// LevelCategory returns the category name for a numeric level.
func LevelCategory(level int) string {
	return LevelPrefix + strconv.Itoa(level)
}

// AllLevels returns every level category from MinLevel to MaxLevel.
func AllLevels() []string {
	out := make([]string, 0, MaxLevel-MinLevel+1)
	for lvl := MinLevel; lvl <= MaxLevel; lvl++ {
		out = append(out, LevelCategory(lvl))
	}
	return out
}

// Parse turns a CLI category token into a Spec. "all" and blank input yield NoFilter.
func Parse(arg string) (Spec, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" || strings.EqualFold(arg, AllToken) {
		return NoFilter(), nil
	}
	categories, err := ExpandLevels(arg)
	if err != nil {
		return Spec{}, err
	}
	return Of(categories...), nil
}

// ExpandLevels expands a category token into category names.
//
// Accepted shapes: "all", a range "a-b", or a comma list whose elements are
// level numbers, ranges, or verbatim category names.
func ExpandLevels(arg string) ([]string, error) {
	arg = strings.TrimSpace(arg)
	if strings.EqualFold(arg, AllToken) {
		return AllLevels(), nil
	}
	var out []string
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			continue
		case strings.EqualFold(part, AllToken):
			out = append(out, AllLevels()...)
		case strings.Contains(part, "-"):
			levels, err := expandRange(part)
			if err != nil {
				return nil, err
			}
			out = append(out, levels...)
		default:
			if lvl, err := strconv.Atoi(part); err == nil {
				if !validLevel(lvl) {
					return nil, &InvalidRangeError{Input: part, Reason: levelOutOfRange}
				}
				out = append(out, LevelCategory(lvl))
				continue
			}
			out = append(out, part)
		}
	}
	return dedupe(out), nil
}

func expandRange(token string) ([]string, error) {
	bounds := strings.Split(token, "-")
	if len(bounds) != 2 {
		return nil, &InvalidRangeError{Input: token, Reason: "expected exactly two bounds"}
	}
	lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return nil, &InvalidRangeError{Input: token, Reason: "lower bound is not a number", Err: err}
	}
	hi, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return nil, &InvalidRangeError{Input: token, Reason: "upper bound is not a number", Err: err}
	}
	if lo > hi {
		return nil, &InvalidRangeError{Input: token, Reason: "lower bound is greater than upper bound"}
	}
	if !validLevel(lo) || !validLevel(hi) {
		return nil, &InvalidRangeError{Input: token, Reason: levelOutOfRange}
	}
	out := make([]string, 0, hi-lo+1)
	for lvl := lo; lvl <= hi; lvl++ {
		out = append(out, LevelCategory(lvl))
	}
	return out, nil
}

func validLevel(lvl int) bool {
	return lvl >= MinLevel && lvl <= MaxLevel
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
