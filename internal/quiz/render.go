package quiz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanjiq/internal/model"
)

// Prompt is shown while waiting for the keypress.
const Prompt = "Do you know this kanji? [y]es [n]o [o]pen [q]uit"

// AnswerPrompt is shown before reading the typed meaning.
const AnswerPrompt = "What is the meaning of this kanji?"

var (
	CorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	IncorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	LabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Card frames the character in a box sized by its display width.
func Card(rec model.Record) string {
	glyph := rec.Character
	width := runewidth.StringWidth(glyph)
	inner := width + 4
	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", inner) + "┐\n")
	b.WriteString("│" + strings.Repeat(" ", inner) + "│\n")
	b.WriteString("│  " + glyph + "  │\n")
	b.WriteString("│" + strings.Repeat(" ", inner) + "│\n")
	b.WriteString("└" + strings.Repeat("─", inner) + "┘")
	return b.String()
}

// Reveal lists the readings and meaning of rec.
func Reveal(rec model.Record) string {
	lines := []string{
		LabelStyle.Render("Onyomi:  ") + orDash(rec.Onyomi),
		LabelStyle.Render("Kunyomi: ") + orDash(rec.Kunyomi),
		LabelStyle.Render("Meaning: ") + orDash(rec.Meaning),
	}
	return strings.Join(lines, "\n")
}

// Verdict renders the grading result.
func Verdict(correct bool, rec model.Record) string {
	if correct {
		return CorrectStyle.Render("Correct!")
	}
	return IncorrectStyle.Render("Incorrect.") + "\n" + fmt.Sprintf("The correct meaning is: %s", rec.Meaning)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
