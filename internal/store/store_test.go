package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/verte-zerg/kanjiq/internal/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "kanjiq.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func round(at time.Time, category string, outcome model.Outcome) model.RoundResult {
	return model.RoundResult{
		ID:        uuid.NewString(),
		PlayedAt:  at,
		Character: "日",
		Category:  category,
		Outcome:   outcome,
	}
}

func TestInsertAndAggregate(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	base := time.Unix(0, 0)
	rounds := []model.RoundResult{
		round(base, "jlptn5", model.OutcomeCorrect),
		round(base.Add(time.Minute), "jlptn5", model.OutcomeIncorrect),
		round(base.Add(2*time.Minute), "jlptn5", model.OutcomeCorrect),
		round(base.Add(3*time.Minute), "jlptn1", model.OutcomeUnknown),
		round(base.Add(4*time.Minute), "jlptn1", model.OutcomeQuit),
	}
	for _, r := range rounds {
		if err := st.InsertRound(ctx, r); err != nil {
			t.Fatalf("insert round: %v", err)
		}
	}

	aggs, err := st.CategoryAggregates(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	want := []model.CategoryAggregate{
		{Category: "jlptn1", Rounds: 1, Unknown: 1},
		{Category: "jlptn5", Rounds: 3, Correct: 2, Incorrect: 1},
	}
	if diff := cmp.Diff(want, aggs); diff != "" {
		t.Fatalf("aggregates mismatch (-want +got):\n%s", diff)
	}

	listed, err := st.ListRounds(ctx, model.HistoryFilter{Category: "jlptn5"})
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 jlptn5 rounds, got %d", len(listed))
	}
	if listed[0].ID != rounds[0].ID || !listed[0].PlayedAt.Equal(rounds[0].PlayedAt) {
		t.Fatalf("unexpected first round: %+v", listed[0])
	}
	if listed[1].Outcome != model.OutcomeIncorrect {
		t.Fatalf("unexpected outcome: %s", listed[1].Outcome)
	}
}

func TestListRoundsSince(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := st.InsertRound(ctx, round(base.Add(time.Duration(i)*24*time.Hour), "jlptn3", model.OutcomeCorrect)); err != nil {
			t.Fatalf("insert round: %v", err)
		}
	}
	since := base.Add(24 * time.Hour)
	listed, err := st.ListRounds(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 rounds since, got %d", len(listed))
	}
}

func TestInsertRoundRequiresID(t *testing.T) {
	st := openStore(t)
	r := round(time.Now(), "jlptn5", model.OutcomeCorrect)
	r.ID = ""
	if err := st.InsertRound(context.Background(), r); err == nil {
		t.Fatalf("expected error for empty id")
	}
}
