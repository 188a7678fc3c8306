// Package lifecycle drives one study-material generation from form validation
// to a visible result or error.
package lifecycle

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thywilljoshua/boardmate/internal/ai"
	"github.com/thywilljoshua/boardmate/internal/study"
)

type Status int

const (
	Idle Status = iota
	Validating
	Requesting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Requesting:
		return "requesting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

const (
	MsgEmptyChapter = "Please enter a chapter name."
	msgFailed       = "Failed to generate study material. "
)

// View is a copy of the state a UI renders from.
type View struct {
	Status     Status
	Loading    bool
	Err        string
	Material   *study.StudyMaterial
	Generation uint64
}

// Outcome is what a single Generate call observed when it settled.
type Outcome struct {
	Generation uint64
	Material   *study.StudyMaterial
	Err        error
	// Stale is true when a newer generation started before this one settled
	// and its result was discarded.
	Stale bool
}

type Config struct {
	Model       string
	Temperature float32
}

type Controller struct {
	gen ai.Generator
	cfg Config
	log *zap.Logger

	mu     sync.Mutex
	seq    uint64
	view   View
	notify []func(View)
}

func New(gen ai.Generator, cfg Config, log *zap.Logger) *Controller {
	if gen == nil {
		gen = ai.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{gen: gen, cfg: cfg, log: log}
}

// Subscribe registers fn to receive the view after every transition. fn runs
// on the goroutine that caused the transition.
func (c *Controller) Subscribe(fn func(View)) {
	c.mu.Lock()
	c.notify = append(c.notify, fn)
	c.mu.Unlock()
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Generate validates the form, calls the generator and publishes the result.
// Only the most recently started generation may change the visible state.
func (c *Controller) Generate(ctx context.Context, form study.FormState) Outcome {
	var prev Status
	c.update(func(v *View) {
		prev = v.Status
		v.Status = Validating
	})
	if err := study.ValidateForm(form); err != nil {
		c.update(func(v *View) {
			// A request still in flight keeps its status until it settles.
			v.Status = Idle
			if v.Loading {
				v.Status = prev
			}
			v.Err = MsgEmptyChapter
		})
		return Outcome{Generation: c.current(), Err: err}
	}

	var id uint64
	c.update(func(v *View) {
		c.seq++
		id = c.seq
		v.Generation = id
		v.Status = Requesting
		v.Loading = true
		v.Err = ""
		v.Material = nil
	})

	reqID := uuid.NewString()
	log := c.log.With(zap.Uint64("generation", id), zap.String("request_id", reqID))
	log.Info("generating study material",
		zap.String("board", form.Board),
		zap.String("class", form.Class),
		zap.String("subject", form.Subject),
		zap.String("chapter", form.Chapter))

	m, err := c.request(ctx, form)
	if err != nil {
		log.Warn("generation failed", zap.Error(err))
	} else {
		log.Info("generation succeeded",
			zap.Int("flashcards", len(m.Flashcards)),
			zap.Int("definitions", len(m.Definitions)),
			zap.Int("questions", len(m.ImportantQuestions)),
			zap.Int("tips", len(m.ImprovementTips)))
	}

	out := Outcome{Generation: id, Err: err}
	if err == nil {
		out.Material = &m
	}
	published := c.settle(id, func(v *View) {
		v.Loading = false
		if err != nil {
			v.Status = Failed
			v.Material = nil
			v.Err = msgFailed + err.Error()
			return
		}
		v.Status = Succeeded
		v.Material = out.Material
		v.Err = ""
	})
	if !published {
		log.Debug("discarding superseded generation")
		out.Stale = true
	}
	return out
}

func (c *Controller) request(ctx context.Context, form study.FormState) (study.StudyMaterial, error) {
	text, err := c.gen.Generate(ctx, ai.Request{
		Prompt:      study.BuildPrompt(form),
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return study.StudyMaterial{}, err
	}
	return study.ParseMaterial(text)
}

func (c *Controller) current() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

func (c *Controller) update(fn func(*View)) {
	c.mu.Lock()
	fn(&c.view)
	v, subs := c.view, c.notify
	c.mu.Unlock()
	for _, s := range subs {
		s(v)
	}
}

// settle applies fn only when id is still the latest generation.
func (c *Controller) settle(id uint64, fn func(*View)) bool {
	c.mu.Lock()
	if id != c.seq {
		c.mu.Unlock()
		return false
	}
	fn(&c.view)
	v, subs := c.view, c.notify
	c.mu.Unlock()
	for _, s := range subs {
		s(v)
	}
	return true
}
