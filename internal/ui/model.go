// Package ui is the interactive terminal front end: the study form, the
// generation spinner and the tabbed results view.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/thywilljoshua/boardmate/internal/export"
	"github.com/thywilljoshua/boardmate/internal/lifecycle"
	"github.com/thywilljoshua/boardmate/internal/render"
	"github.com/thywilljoshua/boardmate/internal/store"
	"github.com/thywilljoshua/boardmate/internal/study"
)

type Options struct {
	// Context is cancelled when the program exits. In-flight generations and
	// exports are bound to it.
	Context    context.Context
	Controller *lifecycle.Controller
	Exporter   *export.Exporter
	Store      *store.Store
	SystemDark bool
	// Timeout bounds one generation call. Zero means no deadline.
	Timeout time.Duration
	Logger  *zap.Logger
}

// viewMsg carries a lifecycle transition published by the controller.
type viewMsg lifecycle.View

type generatedMsg struct {
	form    study.FormState
	outcome lifecycle.Outcome
}

type exportedMsg struct {
	res export.Result
	err error
}

type Model struct {
	opts Options
	log  *zap.Logger

	form    study.FormState
	focus   int
	chapter textinput.Model
	weak    textarea.Model
	spin    spinner.Model

	theme    store.Theme
	renderer *render.Renderer

	view        lifecycle.View
	title       string
	tab         render.Tab
	generating  bool
	downloading bool
	saved       string
}

func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	form := opts.Store.LoadForm()
	theme := opts.Store.LoadTheme(opts.SystemDark)

	ti := textinput.New()
	ti.Placeholder = "e.g., The Laws of Motion"
	ti.SetValue(form.Chapter)

	ta := textarea.New()
	ta.Placeholder = "e.g., I have trouble with numerical problems and derivations."
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetValue(form.WeakPoints)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		opts:     opts,
		log:      log,
		form:     form,
		chapter:  ti,
		weak:     ta,
		spin:     sp,
		theme:    theme,
		renderer: render.New(theme),
		view:     opts.Controller.View(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.setFocus(0)
}

const (
	fieldBoard = iota
	fieldClass
	fieldSubject
	fieldChapter
	fieldWeak
)

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(study.Fields)
	m.focus = (i%n + n) % n
	m.chapter.Blur()
	m.weak.Blur()
	switch m.focus {
	case fieldChapter:
		return m.chapter.Focus()
	case fieldWeak:
		return m.weak.Focus()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case viewMsg:
		m.view = lifecycle.View(msg)
		return m, nil

	case generatedMsg:
		m.generating = false
		m.view = m.opts.Controller.View()
		if !msg.outcome.Stale && msg.outcome.Material != nil {
			m.title = msg.form.Title()
			m.tab = render.Flashcards
			m.saved = ""
		}
		return m, nil

	case exportedMsg:
		m.downloading = false
		if msg.err == nil && msg.res.Path != "" {
			m.saved = msg.res.Path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.generating && !m.downloading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "shift+up":
		return m, m.setFocus(m.focus - 1)
	case "down", "shift+down":
		return m, m.setFocus(m.focus + 1)
	case "tab":
		m.tab = m.tab.Next()
		return m, nil
	case "shift+tab":
		m.tab = m.tab.Prev()
		return m, nil
	case "ctrl+g":
		if m.generating {
			return m, nil
		}
		m.generating = true
		return m, tea.Batch(m.generateCmd(), m.spin.Tick)
	case "ctrl+d":
		if m.downloading || m.view.Material == nil {
			return m, nil
		}
		m.downloading = true
		return m, tea.Batch(m.exportCmd(), m.spin.Tick)
	case "ctrl+t":
		t, err := m.opts.Store.ToggleTheme(m.opts.SystemDark)
		if err != nil {
			m.log.Warn("saving theme", zap.Error(err))
			t = m.theme.Toggle()
		}
		m.theme = t
		m.renderer = render.New(t)
		return m, nil
	case "1", "2", "3", "4", "5":
		if m.focus != fieldChapter && m.focus != fieldWeak && m.view.Material != nil {
			m.tab = render.Tabs[int(msg.String()[0]-'1')]
			return m, nil
		}
	case "left", "right":
		if opts := study.Options(study.Fields[m.focus]); opts != nil {
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			m.cycleOption(opts, step)
			return m, nil
		}
	}
	return m.updateInputs(msg)
}

func (m *Model) cycleOption(opts []string, step int) {
	field := study.Fields[m.focus]
	cur := map[string]string{
		"board":   m.form.Board,
		"class":   m.form.Class,
		"subject": m.form.Subject,
	}[field]
	idx := 0
	for i, o := range opts {
		if o == cur {
			idx = i
			break
		}
	}
	idx = (idx + step + len(opts)) % len(opts)
	_ = m.form.Set(field, opts[idx])
	m.persist()
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldChapter:
		m.chapter, cmd = m.chapter.Update(msg)
		if v := m.chapter.Value(); v != m.form.Chapter {
			m.form.Chapter = v
			m.persist()
		}
	case fieldWeak:
		m.weak, cmd = m.weak.Update(msg)
		if v := m.weak.Value(); v != m.form.WeakPoints {
			m.form.WeakPoints = v
			m.persist()
		}
	}
	return m, cmd
}

func (m *Model) persist() {
	if err := m.opts.Store.SaveForm(m.form); err != nil {
		m.log.Warn("saving session", zap.Error(err))
	}
}

func (m Model) generateCmd() tea.Cmd {
	form, ctrl, timeout, parent := m.form, m.opts.Controller, m.opts.Timeout, m.opts.Context
	return func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return generatedMsg{form: form, outcome: ctrl.Generate(ctx, form)}
	}
}

func (m Model) exportCmd() tea.Cmd {
	doc := export.BuildDocument(m.view.Material, m.title)
	exp, theme, ctx := m.opts.Exporter, m.theme, m.opts.Context
	return func() tea.Msg {
		res, err := exp.Export(ctx, doc, theme)
		return exportedMsg{res: res, err: err}
	}
}

func (m Model) View() string {
	r := m.renderer
	var b strings.Builder

	mode := "light"
	if m.theme.IsDark() {
		mode = "dark"
	}
	fmt.Fprintf(&b, "BoardMate · Smart Study Assistant  %s\n\n", r.Muted("["+mode+"]"))

	labels := []string{"Board", "Class", "Subject", "Chapter Name", "Weak Points (Optional)"}
	for i, label := range labels {
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		switch i {
		case fieldBoard:
			fmt.Fprintf(&b, "%s%s: ‹ %s ›\n", cursor, label, m.form.Board)
		case fieldClass:
			fmt.Fprintf(&b, "%s%s: ‹ %s ›\n", cursor, label, m.form.Class)
		case fieldSubject:
			fmt.Fprintf(&b, "%s%s: ‹ %s ›\n", cursor, label, m.form.Subject)
		case fieldChapter:
			fmt.Fprintf(&b, "%s%s: %s\n", cursor, label, m.chapter.View())
		case fieldWeak:
			fmt.Fprintf(&b, "%s%s:\n%s\n", cursor, label, m.weak.View())
		}
	}

	if m.view.Err != "" {
		b.WriteString("\n" + r.ErrorBanner(m.view.Err) + "\n")
	}
	if m.generating || m.view.Loading {
		b.WriteString("\n" + m.spin.View() + " Generating...\n")
	} else if m.view.Material != nil {
		b.WriteString("\n" + r.Header(m.title) + "\n\n")
		b.WriteString(r.TabBar(m.tab) + "\n\n")
		b.WriteString(r.Tab(*m.view.Material, m.tab) + "\n")
	}

	status := ""
	switch {
	case m.downloading:
		status = m.spin.View() + " Downloading..."
	case m.saved != "":
		status = "Saved " + m.saved
	}
	if status != "" {
		b.WriteString("\n" + status + "\n")
	}
	b.WriteString("\n" + r.Muted("↑/↓ field · ←/→ option · ctrl+g generate · tab/1-5 switch tab · ctrl+d PDF · ctrl+t theme · esc quit") + "\n")
	return b.String()
}

// Watch forwards every controller transition to send, which is normally
// tea.Program.Send.
func Watch(c *lifecycle.Controller, send func(tea.Msg)) {
	c.Subscribe(func(v lifecycle.View) { send(viewMsg(v)) })
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	opts.Context = ctx
	p := tea.NewProgram(New(opts), tea.WithContext(ctx))
	Watch(opts.Controller, p.Send)
	_, err := p.Run()
	return err
}
