package study

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are an expert study assistant for class %[1]s %[2]s students.
Your task is to generate comprehensive study material.
Subject: %[3]s
Chapter: %[4]s
Student's weak points: %[5]s.

Generate the following structured study material:
1. Flashcards: 5 concise cards for quick revision.
2. Definitions: 5-10 important terms with clear explanations.
3. Important Questions: 5-7 questions that are typical for the %[2]s board exam pattern for class %[1]s. Provide a brief hint for the answer.
4. Chapter Summary: A short, easy-to-understand summary of the key concepts in the chapter.
5. Improvement Tips: %[6]s

Provide the output in a structured JSON format.`

const (
	noWeakPoints   = "None provided"
	tipsWeakPoints = "Based on the student's weak points, provide 3-5 actionable tips."
	tipsGeneral    = "No weak points were mentioned, so provide 3-5 general effective study strategies for this chapter."
)

// BuildPrompt interpolates the form into the generation instructions.
func BuildPrompt(f FormState) string {
	weak := strings.TrimSpace(f.WeakPoints)
	tips := tipsWeakPoints
	if weak == "" {
		weak = noWeakPoints
		tips = tipsGeneral
	}
	return fmt.Sprintf(promptTemplate,
		strings.TrimSpace(f.Class),
		strings.TrimSpace(f.Board),
		strings.TrimSpace(f.Subject),
		strings.TrimSpace(f.Chapter),
		weak,
		tips,
	)
}
