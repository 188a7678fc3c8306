package study

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyChapter    = errors.New("chapter is required")
	ErrInvalidMaterial = errors.New("invalid study material")
)

// ValidateForm reports ErrEmptyChapter when the chapter is blank.
func ValidateForm(f FormState) error {
	if strings.TrimSpace(f.Chapter) == "" {
		return ErrEmptyChapter
	}
	return nil
}

// ParseMaterial decodes a model reply and checks it against the response contract.
func ParseMaterial(text string) (StudyMaterial, error) {
	var m StudyMaterial
	js := stripCodeFences(text)
	if js == "" {
		return m, fmt.Errorf("%w: empty response", ErrInvalidMaterial)
	}
	if err := json.Unmarshal([]byte(js), &m); err != nil {
		return StudyMaterial{}, fmt.Errorf("%w: %v", ErrInvalidMaterial, err)
	}
	if err := m.Validate(); err != nil {
		return StudyMaterial{}, err
	}
	return m, nil
}

// Validate enforces the same required fields the response schema declares.
func (m StudyMaterial) Validate() error {
	var problems []string
	if len(m.Flashcards) == 0 {
		problems = append(problems, "flashcards is empty")
	}
	for i, fc := range m.Flashcards {
		if blank(fc.Term) || blank(fc.Definition) {
			problems = append(problems, fmt.Sprintf("flashcards[%d] missing term or definition", i))
		}
	}
	if len(m.Definitions) == 0 {
		problems = append(problems, "definitions is empty")
	}
	for i, d := range m.Definitions {
		if blank(d.Term) || blank(d.Explanation) {
			problems = append(problems, fmt.Sprintf("definitions[%d] missing term or explanation", i))
		}
	}
	if len(m.ImportantQuestions) == 0 {
		problems = append(problems, "important_questions is empty")
	}
	for i, q := range m.ImportantQuestions {
		if blank(q.Question) || blank(q.AnswerHint) {
			problems = append(problems, fmt.Sprintf("important_questions[%d] missing question or answer_hint", i))
		}
	}
	if blank(m.ChapterSummary) {
		problems = append(problems, "chapter_summary is empty")
	}
	if len(m.ImprovementTips) == 0 {
		problems = append(problems, "improvement_tips is empty")
	}
	for i, t := range m.ImprovementTips {
		if blank(t) {
			problems = append(problems, fmt.Sprintf("improvement_tips[%d] is blank", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidMaterial, strings.Join(problems, "; "))
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// stripCodeFences removes a ```json wrapper some models add despite the MIME type.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
