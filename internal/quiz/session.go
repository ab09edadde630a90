package quiz

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/verte-zerg/kanjiq/internal/model"
)

// Action is a keypress choice at the prompt.
type Action int

const (
	ActionNone Action = iota
	ActionYes
	ActionNo
	ActionOpen
	ActionQuit
)

// ParseAction maps a key to an Action, case-insensitively.
func ParseAction(key rune) Action {
	switch unicode.ToLower(key) {
	case 'y':
		return ActionYes
	case 'n':
		return ActionNo
	case 'o':
		return ActionOpen
	case 'q':
		return ActionQuit
	default:
		return ActionNone
	}
}

// Viewer shows a record outside the terminal.
type Viewer interface {
	Show(ctx context.Context, rec model.Record) error
}

// NewResult builds a RoundResult stamped with a fresh id and the current time.
func NewResult(rec model.Record, outcome model.Outcome, answer string) model.RoundResult {
	return model.RoundResult{
		ID:        uuid.NewString(),
		PlayedAt:  time.Now(),
		Character: rec.Character,
		Category:  rec.Category,
		Outcome:   outcome,
		Answer:    strings.TrimSpace(answer),
	}
}

// RunPlain plays one line-oriented round: the first rune of a line is the
// key and the following line is the answer. Input ending before a key or
// an answer quits.
func RunPlain(ctx context.Context, in io.Reader, out io.Writer, rec model.Record, viewer Viewer) (model.RoundResult, error) {
	reader := bufio.NewReader(in)
	if _, err := fmt.Fprintf(out, "%s\n%s\n", Card(rec), Prompt); err != nil {
		return model.RoundResult{}, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return model.RoundResult{}, err
		}
		if _, err := fmt.Fprint(out, "> "); err != nil {
			return model.RoundResult{}, err
		}
		line, eof, err := readLine(reader)
		if err != nil {
			return model.RoundResult{}, fmt.Errorf("failed to read key: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			if eof {
				return NewResult(rec, model.OutcomeQuit, ""), nil
			}
			continue
		}
		key, _ := utf8.DecodeRuneInString(line)
		switch ParseAction(key) {
		case ActionYes:
			return askMeaning(reader, out, rec)
		case ActionNo:
			if _, err := fmt.Fprintln(out, Reveal(rec)); err != nil {
				return model.RoundResult{}, err
			}
			return NewResult(rec, model.OutcomeUnknown, ""), nil
		case ActionOpen:
			if viewer == nil {
				if _, err := fmt.Fprintln(out, "Open is not available."); err != nil {
					return model.RoundResult{}, err
				}
				continue
			}
			if err := viewer.Show(ctx, rec); err != nil {
				if _, werr := fmt.Fprintf(out, "failed to open kanji view: %v\n", err); werr != nil {
					return model.RoundResult{}, werr
				}
			}
		case ActionQuit:
			return NewResult(rec, model.OutcomeQuit, ""), nil
		default:
			if _, err := fmt.Fprintln(out, "Please press y, n, o, or q."); err != nil {
				return model.RoundResult{}, err
			}
		}
		if eof {
			return NewResult(rec, model.OutcomeQuit, ""), nil
		}
	}
}

func askMeaning(reader *bufio.Reader, out io.Writer, rec model.Record) (model.RoundResult, error) {
	if _, err := fmt.Fprintf(out, "%s\n> ", AnswerPrompt); err != nil {
		return model.RoundResult{}, err
	}
	answer, eof, err := readLine(reader)
	if err != nil {
		return model.RoundResult{}, fmt.Errorf("failed to read answer: %w", err)
	}
	if eof && strings.TrimSpace(answer) == "" {
		return NewResult(rec, model.OutcomeQuit, ""), nil
	}
	correct := Grade(rec.Meaning, answer)
	if _, err := fmt.Fprintln(out, Verdict(correct, rec)); err != nil {
		return model.RoundResult{}, err
	}
	outcome := model.OutcomeIncorrect
	if correct {
		outcome = model.OutcomeCorrect
	}
	return NewResult(rec, outcome, answer), nil
}

// readLine returns the next line without its terminator. eof is true when
// the input ended on this read.
func readLine(reader *bufio.Reader) (line string, eof bool, err error) {
	line, err = reader.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimRight(line, "\r\n"), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), false, nil
}
