package study

import (
	"fmt"
	"strings"
)

var (
	Boards   = []string{"CBSE", "ICSE", "State Board"}
	Classes  = []string{"10", "9", "11", "12"}
	Subjects = []string{"Science", "Mathematics", "Social Science", "English", "Physics", "Chemistry", "Biology"}
)

// FormState is the set of inputs a student fills in before generating.
type FormState struct {
	Board      string `json:"board"`
	Class      string `json:"class"`
	Subject    string `json:"subject"`
	Chapter    string `json:"chapter"`
	WeakPoints string `json:"weakPoints"`
}

func DefaultForm() FormState {
	return FormState{
		Board:   Boards[0],
		Class:   Classes[0],
		Subject: Subjects[0],
	}
}

func (f FormState) Title() string {
	return f.Subject + " - " + f.Chapter
}

// Fields lists the names accepted by Set, in form order.
var Fields = []string{"board", "class", "subject", "chapter", "weakPoints"}

// Set updates a single field by its JSON name.
func (f *FormState) Set(field, value string) error {
	switch strings.ToLower(field) {
	case "board":
		f.Board = value
	case "class":
		f.Class = value
	case "subject":
		f.Subject = value
	case "chapter":
		f.Chapter = value
	case "weakpoints", "weak-points", "weak_points":
		f.WeakPoints = value
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	return nil
}

// Options returns the enumerated values for a select field, or nil for free text.
func Options(field string) []string {
	switch field {
	case "board":
		return Boards
	case "class":
		return Classes
	case "subject":
		return Subjects
	}
	return nil
}

type Flashcard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type Definition struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
}

type Question struct {
	Question   string `json:"question"`
	AnswerHint string `json:"answer_hint"`
}

// StudyMaterial is one generated set of notes. It is replaced wholesale on
// every successful generation.
type StudyMaterial struct {
	Flashcards         []Flashcard  `json:"flashcards"`
	Definitions        []Definition `json:"definitions"`
	ImportantQuestions []Question   `json:"important_questions"`
	ChapterSummary     string       `json:"chapter_summary"`
	ImprovementTips    []string     `json:"improvement_tips"`
}
