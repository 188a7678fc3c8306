// Package studytest holds shared fixtures for tests that need generated material.
package studytest

import (
	"encoding/json"
	"fmt"

	"github.com/thywilljoshua/boardmate/internal/study"
)

// LightForm is the CBSE class 10 Science "Light" form with no weak points.
func LightForm() study.FormState {
	return study.FormState{Board: "CBSE", Class: "10", Subject: "Science", Chapter: "Light"}
}

// Material returns a reply with 5 flashcards, 6 definitions, 5 questions and 4 tips.
func Material() study.StudyMaterial {
	m := study.StudyMaterial{
		ChapterSummary: "Light travels in straight lines and reflects off polished surfaces.\nRefraction bends light as it changes medium.",
	}
	for i := 1; i <= 5; i++ {
		m.Flashcards = append(m.Flashcards, study.Flashcard{
			Term:       fmt.Sprintf("Term %d", i),
			Definition: fmt.Sprintf("Short definition %d", i),
		})
	}
	for i := 1; i <= 6; i++ {
		m.Definitions = append(m.Definitions, study.Definition{
			Term:        fmt.Sprintf("Concept %d", i),
			Explanation: fmt.Sprintf("Detailed explanation of concept %d.", i),
		})
	}
	for i := 1; i <= 5; i++ {
		m.ImportantQuestions = append(m.ImportantQuestions, study.Question{
			Question:   fmt.Sprintf("Question %d?", i),
			AnswerHint: fmt.Sprintf("Hint %d", i),
		})
	}
	for i := 1; i <= 4; i++ {
		m.ImprovementTips = append(m.ImprovementTips, fmt.Sprintf("Tip %d", i))
	}
	return m
}

// MaterialJSON is Material encoded the way the model returns it.
func MaterialJSON() string {
	b, err := json.Marshal(Material())
	if err != nil {
		panic(err)
	}
	return string(b)
}
