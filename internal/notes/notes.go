// Package notes writes study material as Markdown pages with front matter and
// keeps a notes.json index of every page written to the same directory.
package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/boardmate/internal/export"
	"github.com/thywilljoshua/boardmate/internal/study"
)

const indexFile = "notes.json"

// Markdown renders m as a single page in print order.
func Markdown(m study.StudyMaterial, title string, form study.FormState) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(frontMatter(FrontMatter{
		Title:   title,
		Board:   form.Board,
		Class:   form.Class,
		Subject: form.Subject,
		Chapter: form.Chapter,
	}))
	b.WriteString("---\n\n")
	b.WriteString("# " + oneLine(title) + "\n\n")

	b.WriteString("## Flashcards\n\n")
	for _, fc := range m.Flashcards {
		fmt.Fprintf(&b, "> **%s**\n> %s\n\n", fc.Term, fc.Definition)
	}

	b.WriteString("## Definitions\n\n")
	for _, d := range m.Definitions {
		fmt.Fprintf(&b, "**%s**\n\n%s\n\n", d.Term, d.Explanation)
	}

	b.WriteString("## Important Questions\n\n")
	for i, q := range m.ImportantQuestions {
		fmt.Fprintf(&b, "%d. %s\n\n   *Hint: %s*\n\n", i+1, q.Question, q.AnswerHint)
	}

	b.WriteString("## Chapter Summary\n\n")
	b.WriteString(strings.TrimSpace(m.ChapterSummary) + "\n\n")

	b.WriteString("## Improvement Tips\n\n")
	for _, tip := range m.ImprovementTips {
		b.WriteString("- " + tip + "\n")
	}
	return b.String()
}

// FrontMatter is the YAML header of a notes page.
type FrontMatter struct {
	Title   string `yaml:"title"`
	Board   string `yaml:"board"`
	Class   string `yaml:"class"`
	Subject string `yaml:"subject"`
	Chapter string `yaml:"chapter"`
}

func frontMatter(fm FrontMatter) string {
	fm.Title, fm.Chapter = oneLine(fm.Title), oneLine(fm.Chapter)
	// A struct of plain strings always marshals.
	out, _ := yaml.Marshal(fm)
	return string(out)
}

// oneLine folds line breaks so a title stays on its heading line.
func oneLine(s string) string { return strings.Join(strings.Fields(s), " ") }

// Entry is one page listed in notes.json.
type Entry struct {
	Title   string    `json:"title"`
	File    string    `json:"file"`
	Written time.Time `json:"written"`
}

type Index struct {
	Pages []Entry `json:"pages"`
}

// FileName mirrors the PDF naming with a .md extension.
func FileName(title string) string {
	return strings.TrimSuffix(export.FileName(title), ".pdf") + ".md"
}

// Write saves the page into outDir and records it in notes.json. Writing the
// same title again replaces the page and its index entry.
func Write(outDir string, m study.StudyMaterial, form study.FormState, now time.Time) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	title := form.Title()
	name := FileName(title)
	file := filepath.Join(outDir, name)
	if err := os.WriteFile(file, []byte(Markdown(m, title, form)), 0o644); err != nil {
		return "", err
	}
	if err := updateIndex(outDir, Entry{Title: title, File: name, Written: now.UTC()}); err != nil {
		return "", fmt.Errorf("update %s: %w", indexFile, err)
	}
	return file, nil
}

// ReadIndex loads notes.json; a missing file is an empty index.
func ReadIndex(outDir string) (Index, error) {
	var idx Index
	b, err := os.ReadFile(filepath.Join(outDir, indexFile))
	if errors.Is(err, os.ErrNotExist) {
		return idx, nil
	}
	if err != nil {
		return idx, err
	}
	err = json.Unmarshal(b, &idx)
	return idx, err
}

func updateIndex(outDir string, e Entry) error {
	idx, err := ReadIndex(outDir)
	if err != nil {
		return err
	}
	pages := idx.Pages[:0]
	for _, p := range idx.Pages {
		if p.File != e.File {
			pages = append(pages, p)
		}
	}
	pages = append(pages, e)
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Title < pages[j].Title })
	idx.Pages = pages

	out, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, indexFile), out, 0o644)
}
