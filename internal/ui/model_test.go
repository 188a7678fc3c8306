package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thywilljoshua/boardmate/internal/ai"
	"github.com/thywilljoshua/boardmate/internal/export"
	"github.com/thywilljoshua/boardmate/internal/lifecycle"
	"github.com/thywilljoshua/boardmate/internal/render"
	"github.com/thywilljoshua/boardmate/internal/store"
	"github.com/thywilljoshua/boardmate/internal/study"
	"github.com/thywilljoshua/boardmate/internal/study/studytest"
)

type harness struct {
	m     Model
	st    *store.Store
	out   string
	calls int
	// reply replaces the fixture reply when set.
	reply func(ctx context.Context) (string, error)
}

func newHarness(t *testing.T) *harness {
	return newHarnessCtx(t, context.Background())
}

func newHarnessCtx(t *testing.T, ctx context.Context) *harness {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "state.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	h := &harness{st: st, out: filepath.Join(dir, "out")}
	gen := ai.GeneratorFunc(func(ctx context.Context, req ai.Request) (string, error) {
		h.calls++
		if h.reply != nil {
			return h.reply(ctx)
		}
		return studytest.MaterialJSON(), nil
	})
	h.m = New(Options{
		Context:    ctx,
		Controller: lifecycle.New(gen, lifecycle.Config{}, nil),
		Exporter:   export.NewExporter(export.GGRasterizer{}, h.out, nil),
		Store:      st,
	})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) key(k tea.KeyType) tea.Cmd { return h.send(tea.KeyMsg{Type: k}) }

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) generate() {
	h.key(tea.KeyCtrlG)
	h.send(h.m.generateCmd()())
}

func TestFieldEditsArePersisted(t *testing.T) {
	h := newHarness(t)

	h.key(tea.KeyRight)
	assert.Equal(t, study.Boards[1], h.m.form.Board)
	h.key(tea.KeyLeft)
	assert.Equal(t, study.Boards[0], h.m.form.Board)

	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	require.Equal(t, fieldChapter, h.m.focus)
	h.typeText("Light")

	assert.Equal(t, "Light", h.m.form.Chapter)
	assert.Equal(t, "Light", h.st.LoadForm().Chapter)
}

func TestGenerateAndBrowseTabs(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	h.typeText("Light")

	h.generate()
	assert.Equal(t, 1, h.calls)
	assert.False(t, h.m.generating)
	require.NotNil(t, h.m.view.Material)
	assert.Equal(t, "Science - Light", h.m.title)

	out := h.m.View()
	assert.Contains(t, out, "Your Study Material")
	assert.Contains(t, out, "Science - Light")
	assert.Equal(t, 5, strings.Count(out, "╭"), "one bordered card per flashcard")
	assert.Equal(t, 5, strings.Count(out, "Term "))

	h.key(tea.KeyTab)
	assert.Equal(t, render.Definitions, h.m.tab)
	assert.Equal(t, 6, strings.Count(h.m.View(), "Concept "))

	h.key(tea.KeyTab)
	assert.Equal(t, render.Questions, h.m.tab)
	assert.Equal(t, 5, strings.Count(h.m.View(), "Hint: "))

	h.key(tea.KeyShiftTab)
	h.key(tea.KeyShiftTab)
	h.key(tea.KeyShiftTab)
	assert.Equal(t, render.Tips, h.m.tab)
	assert.Equal(t, 4, strings.Count(h.m.View(), "• Tip "))
}

func TestDigitKeysSwitchTabs(t *testing.T) {
	h := newHarness(t)
	h.typeText("2")
	assert.Equal(t, render.Flashcards, h.m.tab, "no material yet")

	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	h.key(tea.KeyDown)
	require.Equal(t, fieldChapter, h.m.focus)
	h.typeText("Light")
	h.generate()
	require.NotNil(t, h.m.view.Material)

	h.typeText("3")
	assert.Equal(t, render.Flashcards, h.m.tab, "digits typed into the chapter stay text")
	assert.Equal(t, "Light3", h.m.form.Chapter)

	h.key(tea.KeyUp)
	require.Equal(t, fieldSubject, h.m.focus)
	h.typeText("4")
	assert.Equal(t, render.Summary, h.m.tab)
	assert.Contains(t, h.m.View(), "Refraction")
	h.typeText("1")
	assert.Equal(t, render.Flashcards, h.m.tab)
	h.typeText("5")
	assert.Equal(t, render.Tips, h.m.tab)
}

func TestWatchForwardsTransitions(t *testing.T) {
	h := newHarness(t)
	var msgs []tea.Msg
	Watch(h.m.opts.Controller, func(msg tea.Msg) { msgs = append(msgs, msg) })

	h.m.form = studytest.LightForm()
	done := h.m.generateCmd()()

	var statuses []lifecycle.Status
	for _, msg := range msgs {
		require.IsType(t, viewMsg{}, msg)
		statuses = append(statuses, msg.(viewMsg).Status)
	}
	assert.Equal(t, []lifecycle.Status{lifecycle.Validating, lifecycle.Requesting, lifecycle.Succeeded}, statuses)

	h.send(msgs[1])
	assert.True(t, h.m.view.Loading)
	assert.Contains(t, h.m.View(), "Generating...")

	h.send(msgs[2])
	h.send(done)
	require.NotNil(t, h.m.view.Material)
	assert.NotContains(t, h.m.View(), "Generating...")
}

func TestGenerationUsesProgramContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := newHarnessCtx(t, ctx)
	h.reply = func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}
	h.m.form = studytest.LightForm()
	cancel()

	h.generate()
	assert.Equal(t, 1, h.calls)
	assert.Nil(t, h.m.view.Material)
	assert.Contains(t, h.m.view.Err, context.Canceled.Error())
}

func TestGenerateEmptyChapterShowsMessage(t *testing.T) {
	h := newHarness(t)
	h.generate()
	assert.Equal(t, 0, h.calls)
	assert.Contains(t, h.m.View(), lifecycle.MsgEmptyChapter)
	assert.Nil(t, h.m.view.Material)
}

func TestDownloadPDF(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlD)
	assert.False(t, h.m.downloading, "nothing to download yet")

	require.NoError(t, h.st.SaveForm(studytest.LightForm()))
	h.m.form = studytest.LightForm()
	h.generate()

	h.key(tea.KeyCtrlD)
	assert.True(t, h.m.downloading)
	h.send(h.m.exportCmd()())
	assert.False(t, h.m.downloading)

	want := filepath.Join(h.out, "science_-_light_notes.pdf")
	assert.Equal(t, want, h.m.saved)
	_, err := os.Stat(want)
	assert.NoError(t, err)
}

func TestToggleTheme(t *testing.T) {
	h := newHarness(t)
	orig := h.m.theme
	h.key(tea.KeyCtrlT)
	assert.Equal(t, orig.Toggle(), h.m.theme)
	assert.Equal(t, h.m.theme, h.st.LoadTheme(false))
	h.key(tea.KeyCtrlT)
	assert.Equal(t, orig, h.m.theme)
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	cmd := h.key(tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
