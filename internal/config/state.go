package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/kanjiq/internal/fsutil"
	"github.com/verte-zerg/kanjiq/internal/selection"
)

// State is the persisted preference record kept apart from the kanji data.
type State struct {
	Selection SelectionState `toml:"selection"`
}

// SelectionState stores the last category selection. An empty list means no filter.
type SelectionState struct {
	Categories []string `toml:"categories"`
}

// Spec converts the stored selection into a selection.Spec.
func (s State) Spec() selection.Spec {
	return selection.Of(s.Selection.Categories...)
}

// StateFor builds a State holding spec.
func StateFor(spec selection.Spec) State {
	categories := spec.Categories()
	if categories == nil {
		categories = []string{}
	}
	return State{Selection: SelectionState{Categories: categories}}
}

// LoadState reads the state file. ok is false when no state has been saved yet.
func LoadState(path string) (state State, ok bool, err error) {
	if path == "" {
		return State{}, false, fmt.Errorf("state path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return State{}, false, nil
		}
		return State{}, false, fmt.Errorf("failed to stat state: %w", err)
	}
	if _, err := toml.DecodeFile(path, &state); err != nil {
		return State{}, false, fmt.Errorf("failed to decode state: %w", err)
	}
	return state, true, nil
}

// SaveState writes the state file atomically.
func SaveState(path string, state State) error {
	var buf bytes.Buffer
	buf.WriteString("# Managed by kanjiq. Last category selection; an empty list means all.\n")
	if err := toml.NewEncoder(&buf).Encode(state); err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
