// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/kanjiq/internal/model"
)

// Accuracy is correct answers over all recorded rounds.
func Accuracy(agg model.CategoryAggregate) float64 {
	if agg.Rounds == 0 {
		return 0
	}
	return float64(agg.Correct) / float64(agg.Rounds)
}

// Total sums aggregates into one row labeled "total".
func Total(aggs []model.CategoryAggregate) model.CategoryAggregate {
	total := model.CategoryAggregate{Category: "total"}
	for _, agg := range aggs {
		total.Rounds += agg.Rounds
		total.Correct += agg.Correct
		total.Incorrect += agg.Incorrect
		total.Unknown += agg.Unknown
	}
	return total
}

// RenderCategoryTable prints per-category outcomes followed by a total row.
func RenderCategoryTable(w io.Writer, aggs []model.CategoryAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	rows := make([][]string, 0, len(aggs)+1)
	for _, agg := range append(append([]model.CategoryAggregate(nil), aggs...), Total(aggs)) {
		rows = append(rows, []string{
			agg.Category,
			fmt.Sprintf("%d", agg.Rounds),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
			fmt.Sprintf("%d", agg.Unknown),
			fmt.Sprintf("%.1f%%", Accuracy(agg)*100),
		})
	}
	return renderTable(w, "Per-Category", categoryColumns, rows)
}

// Miss counts how often a kanji was answered wrong or not known.
type Miss struct {
	Character string
	Category  string
	Misses    int
	Rounds    int
}

// TopMissed returns the n kanji with the most misses.
func TopMissed(rounds []model.RoundResult, n int) []Miss {
	if n <= 0 || len(rounds) == 0 {
		return nil
	}
	byChar := map[string]*Miss{}
	for _, r := range rounds {
		entry, ok := byChar[r.Character]
		if !ok {
			entry = &Miss{Character: r.Character, Category: r.Category}
			byChar[r.Character] = entry
		}
		entry.Rounds++
		if r.Outcome == model.OutcomeIncorrect || r.Outcome == model.OutcomeUnknown {
			entry.Misses++
		}
	}
	items := make([]Miss, 0, len(byChar))
	for _, m := range byChar {
		if m.Misses > 0 {
			items = append(items, *m)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Misses == items[j].Misses {
			return items[i].Character < items[j].Character
		}
		return items[i].Misses > items[j].Misses
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// RenderMissedTable prints the most missed kanji.
func RenderMissedTable(w io.Writer, misses []Miss) error {
	if len(misses) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(misses))
	for _, m := range misses {
		rows = append(rows, []string{m.Character, m.Category, fmt.Sprintf("%d", m.Misses), fmt.Sprintf("%d", m.Rounds)})
	}
	return renderTable(w, "Most Missed", missedColumns, rows)
}
