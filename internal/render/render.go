// Package render turns study material into the tabbed terminal view.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/thywilljoshua/boardmate/internal/store"
	"github.com/thywilljoshua/boardmate/internal/study"
)

type Tab int

const (
	Flashcards Tab = iota
	Definitions
	Questions
	Summary
	Tips
)

// Tabs is the display order.
var Tabs = []Tab{Flashcards, Definitions, Questions, Summary, Tips}

var tabInfo = [...]struct{ key, label string }{
	Flashcards:  {"flashcards", "Flashcards"},
	Definitions: {"definitions", "Definitions"},
	Questions:   {"questions", "Questions"},
	Summary:     {"summary", "Summary"},
	Tips:        {"tips", "Tips"},
}

func (t Tab) Key() string   { return tabInfo[t].key }
func (t Tab) Label() string { return tabInfo[t].label }

func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Tabs {
		if t.Key() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q (want one of flashcards, definitions, questions, summary, tips)", s)
}

func (t Tab) Next() Tab { return Tabs[(int(t)+1)%len(Tabs)] }
func (t Tab) Prev() Tab { return Tabs[(int(t)+len(Tabs)-1)%len(Tabs)] }

// Counts reports how many items each tab shows.
func Counts(m study.StudyMaterial) map[Tab]int {
	summary := 0
	if strings.TrimSpace(m.ChapterSummary) != "" {
		summary = 1
	}
	return map[Tab]int{
		Flashcards:  len(m.Flashcards),
		Definitions: len(m.Definitions),
		Questions:   len(m.ImportantQuestions),
		Summary:     summary,
		Tips:        len(m.ImprovementTips),
	}
}

type Renderer struct {
	Theme  store.Theme
	styles styles
}

func New(theme store.Theme) *Renderer {
	return &Renderer{Theme: theme, styles: newStyles(theme)}
}

func (r *Renderer) Header(title string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		r.styles.heading.Render("Your Study Material"),
		r.styles.muted.Render(title),
	)
}

func (r *Renderer) TabBar(active Tab) string {
	parts := make([]string, 0, len(Tabs))
	for i, t := range Tabs {
		label := fmt.Sprintf("%d %s", i+1, t.Label())
		if t == active {
			parts = append(parts, r.styles.activeTab.Render(label))
		} else {
			parts = append(parts, r.styles.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Tab renders the body of a single tab.
func (r *Renderer) Tab(m study.StudyMaterial, t Tab) string {
	var b strings.Builder
	switch t {
	case Flashcards:
		cards := make([]string, 0, len(m.Flashcards))
		for _, fc := range m.Flashcards {
			cards = append(cards, r.styles.card.Render(
				r.styles.term.Render(fc.Term)+"\n"+fc.Definition))
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	case Definitions:
		for i, d := range m.Definitions {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(r.styles.term.Render(d.Term))
			b.WriteString("\n")
			b.WriteString(d.Explanation)
		}
	case Questions:
		for i, q := range m.ImportantQuestions {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(r.styles.question.Render(fmt.Sprintf("%d. %s", i+1, q.Question)))
			b.WriteString("\n")
			b.WriteString(r.styles.hint.Render("Hint: " + q.AnswerHint))
		}
	case Summary:
		b.WriteString(r.summary(m.ChapterSummary))
	case Tips:
		for i, tip := range m.ImprovementTips {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("• " + tip)
		}
	}
	return b.String()
}

func (r *Renderer) summary(text string) string {
	style := "light"
	if r.Theme.IsDark() {
		style = "dark"
	}
	out, err := glamour.Render(text, style)
	if err != nil || strings.TrimSpace(out) == "" {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// All renders the header and every tab in order, for non-interactive output.
func (r *Renderer) All(m study.StudyMaterial, title string) string {
	var b strings.Builder
	b.WriteString(r.Header(title))
	for _, t := range Tabs {
		b.WriteString("\n\n")
		b.WriteString(r.styles.section.Render(t.Label()))
		b.WriteString("\n")
		b.WriteString(r.Tab(m, t))
	}
	b.WriteString("\n")
	return b.String()
}
