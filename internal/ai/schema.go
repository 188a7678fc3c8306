package ai

import genai "google.golang.org/genai"

// StudyMaterialSchema is the response schema sent with every request. It
// mirrors study.StudyMaterial field for field.
func StudyMaterialSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	pair := func(a, b string) *genai.Schema {
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				a: str(),
				b: str(),
			},
			Required:         []string{a, b},
			PropertyOrdering: []string{a, b},
		}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"flashcards": {
				Type:        genai.TypeArray,
				Description: "5 concise flashcards with a term and a short definition.",
				Items:       pair("term", "definition"),
			},
			"definitions": {
				Type:        genai.TypeArray,
				Description: "5-10 important terms with their detailed explanations.",
				Items:       pair("term", "explanation"),
			},
			"important_questions": {
				Type:        genai.TypeArray,
				Description: "A list of important questions following the specified board exam pattern, with hints for answers.",
				Items:       pair("question", "answer_hint"),
			},
			"chapter_summary": {
				Type:        genai.TypeString,
				Description: "A concise summary of the entire chapter.",
			},
			"improvement_tips": {
				Type:        genai.TypeArray,
				Description: "Actionable tips to improve on the specified weak points. If no weak points are provided, give general study tips for the chapter.",
				Items:       str(),
			},
		},
		Required:         []string{"flashcards", "definitions", "important_questions", "chapter_summary", "improvement_tips"},
		PropertyOrdering: []string{"flashcards", "definitions", "important_questions", "chapter_summary", "improvement_tips"},
	}
}
