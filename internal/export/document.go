package export

import (
	"fmt"
	"strings"

	"github.com/thywilljoshua/boardmate/internal/study"
)

type BlockKind int

const (
	Title BlockKind = iota
	Heading
	Card // flashcard term and definition, drawn with an accent bar
	Term
	Body
	Hint
	Bullet
)

type Block struct {
	Kind BlockKind
	Text string
	// Detail is the second line of a Card.
	Detail string
}

// Document is the fixed print layout of a study material set.
type Document struct {
	Title  string
	Blocks []Block
}

func (d *Document) Empty() bool { return d == nil || len(d.Blocks) == 0 }

// BuildDocument lays out every section in print order. A nil material yields
// nil.
func BuildDocument(m *study.StudyMaterial, title string) *Document {
	if m == nil {
		return nil
	}
	d := &Document{Title: title}
	add := func(k BlockKind, text string) { d.Blocks = append(d.Blocks, Block{Kind: k, Text: text}) }

	add(Title, title)

	add(Heading, "Flashcards")
	for _, fc := range m.Flashcards {
		d.Blocks = append(d.Blocks, Block{Kind: Card, Text: fc.Term, Detail: fc.Definition})
	}

	add(Heading, "Definitions")
	for _, def := range m.Definitions {
		add(Term, def.Term)
		add(Body, def.Explanation)
	}

	add(Heading, "Important Questions")
	for i, q := range m.ImportantQuestions {
		add(Term, fmt.Sprintf("%d. %s", i+1, q.Question))
		add(Hint, "Hint: "+q.AnswerHint)
	}

	add(Heading, "Chapter Summary")
	add(Body, strings.TrimSpace(m.ChapterSummary))

	add(Heading, "Improvement Tips")
	for _, tip := range m.ImprovementTips {
		add(Bullet, tip)
	}
	return d
}
