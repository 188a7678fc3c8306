package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thywilljoshua/boardmate/internal/study/studytest"
)

func readFrontMatter(t *testing.T, page string) FrontMatter {
	t.Helper()
	rest, ok := strings.CutPrefix(page, "---\n")
	require.True(t, ok, "page must open with front matter")
	head, _, ok := strings.Cut(rest, "\n---\n")
	require.True(t, ok, "front matter must be closed")
	var fm FrontMatter
	require.NoError(t, yaml.Unmarshal([]byte(head), &fm))
	return fm
}

func TestMarkdown(t *testing.T) {
	form := studytest.LightForm()
	md := Markdown(studytest.Material(), form.Title(), form)

	assert.Equal(t, FrontMatter{
		Title:   "Science - Light",
		Board:   "CBSE",
		Class:   "10",
		Subject: "Science",
		Chapter: "Light",
	}, readFrontMatter(t, md))
	assert.Contains(t, md, "# Science - Light")
	for _, h := range []string{"## Flashcards", "## Definitions", "## Important Questions", "## Chapter Summary", "## Improvement Tips"} {
		assert.Contains(t, md, h)
	}
	assert.Equal(t, 5, strings.Count(md, "> **Term"))
	assert.Contains(t, md, "5. Question 5?")
	assert.Equal(t, 4, strings.Count(md, "\n- Tip"))
}

func TestMarkdownFrontMatterSurvivesAwkwardChapters(t *testing.T) {
	for _, chapter := range []string{`The "Human" Eye`, "Light\ntitle: injected", "Acids: Bases # and salts"} {
		form := studytest.LightForm()
		form.Chapter = chapter
		md := Markdown(studytest.Material(), form.Title(), form)

		fm := readFrontMatter(t, md)
		assert.Equal(t, strings.Join(strings.Fields(chapter), " "), fm.Chapter)
		assert.Equal(t, "Science - "+fm.Chapter, fm.Title)
		assert.Equal(t, "CBSE", fm.Board)
		assert.Contains(t, md, "\n# Science - "+fm.Chapter+"\n")
	}
}

func TestWriteUpdatesIndex(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	m := studytest.Material()

	light := studytest.LightForm()
	path, err := Write(dir, m, light, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "science_-_light_notes.md"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	acids := light
	acids.Chapter = "Acids"
	_, err = Write(dir, m, acids, now)
	require.NoError(t, err)

	_, err = Write(dir, m, light, now.Add(time.Hour))
	require.NoError(t, err)

	idx, err := ReadIndex(dir)
	require.NoError(t, err)
	require.Len(t, idx.Pages, 2)
	assert.Equal(t, "Science - Acids", idx.Pages[0].Title)
	assert.Equal(t, "Science - Light", idx.Pages[1].Title)
	assert.True(t, now.Add(time.Hour).Equal(idx.Pages[1].Written))
}

func TestReadIndexMissing(t *testing.T) {
	idx, err := ReadIndex(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, idx.Pages)
}
