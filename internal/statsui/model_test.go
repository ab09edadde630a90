package statsui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanjiq/internal/model"
	"github.com/verte-zerg/kanjiq/internal/stats"
)

func testReport() Report {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return Report{
		Categories: []model.CategoryAggregate{
			{Category: "jlptn5", Rounds: 4, Correct: 3, Incorrect: 1},
		},
		Missed: []stats.Miss{{Character: "食", Category: "jlptn5", Misses: 1, Rounds: 2}},
		Rounds: []model.RoundResult{
			{ID: "a", PlayedAt: base, Character: "水", Category: "jlptn5", Outcome: model.OutcomeCorrect, Answer: "water"},
			{ID: "b", PlayedAt: base.Add(time.Minute), Character: "食", Category: "jlptn5", Outcome: model.OutcomeIncorrect, Answer: "drink"},
		},
	}
}

func TestViewShowsSummaryAndCategories(t *testing.T) {
	m := NewModel(testReport())
	view := m.View()
	for _, want := range []string{"Categories", "rounds=4", "accuracy=75.0%", "jlptn5", "total"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestMoveTabWraps(t *testing.T) {
	m := NewModel(testReport())
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabRecent {
		t.Fatalf("expected wrap to last tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabCategories {
		t.Fatalf("expected wrap to first tab, got %d", m.activeTab)
	}
}

func TestMissedTab(t *testing.T) {
	m := NewModel(testReport())
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabMissed {
		t.Fatalf("expected missed tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "食") {
		t.Fatalf("expected missed kanji in view:\n%s", m.View())
	}
}

func TestRecentRowsNewestFirst(t *testing.T) {
	rows := recentRows(testReport().Rounds)
	if len(rows) != 2 || rows[0][1] != "食" || rows[1][1] != "水" {
		t.Fatalf("unexpected order: %v", rows)
	}
}

func TestEmptyReport(t *testing.T) {
	m := NewModel(Report{})
	if !strings.Contains(m.View(), "No rounds found.") {
		t.Fatalf("expected empty notice:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(testReport())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
