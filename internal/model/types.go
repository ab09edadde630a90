// Package model defines shared data structures.
package model

import "time"

// Record is a single kanji entry with its readings and accepted meanings.
type Record struct {
	Category  string `json:"category" yaml:"category"`
	Character string `json:"character" yaml:"character"`
	Onyomi    string `json:"onyomi" yaml:"onyomi"`
	Kunyomi   string `json:"kunyomi" yaml:"kunyomi"`
	Meaning   string `json:"meaning" yaml:"meaning"`
}

// Config defines quiz settings after config and flags are merged.
type Config struct {
	DataPath string
	Category string
	Plain    bool
	LogFile  string
	Browser  string
	HTMLPath string
}

// Outcome describes how a round ended.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomeUnknown   Outcome = "unknown"
	OutcomeQuit      Outcome = "quit"
)

// Recorded reports whether the outcome belongs in the round history.
func (o Outcome) Recorded() bool {
	return o == OutcomeCorrect || o == OutcomeIncorrect || o == OutcomeUnknown
}

// RoundResult captures a completed quiz round.
type RoundResult struct {
	ID        string
	PlayedAt  time.Time
	Character string
	Category  string
	Outcome   Outcome
	Answer    string
}

// HistoryFilter defines filters for history queries.
type HistoryFilter struct {
	Category string
	Since    *time.Time
}

// CategoryAggregate summarizes rounds played for one category.
type CategoryAggregate struct {
	Category  string
	Rounds    int
	Correct   int
	Incorrect int
	Unknown   int
}
