// Package demos holds the runnable teaching catalog.
//
// Each demo sets up work on a fresh loop and writes labeled lines to a
// Transcript; the transcript is the demo's entire observable output, so
// running the same demo twice on a virtual clock produces identical
// text. Demos end with a one-line takeaway.
package demos

import (
	"context"
	"fmt"
	"strings"

	"github.com/suryaravikumar-space/loopkit/internal/loop"
)

// Transcript accumulates a demo's output lines.
type Transcript struct {
	lines []string
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Printf appends one formatted line.
func (t *Transcript) Printf(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Section appends a section separator line.
func (t *Transcript) Section(title string) {
	t.lines = append(t.lines, "-- "+title+" --")
}

// Lines returns the accumulated lines.
func (t *Transcript) Lines() []string {
	return t.lines
}

// String renders the transcript with one line per entry and a trailing
// newline. An empty transcript renders as the empty string.
func (t *Transcript) String() string {
	if len(t.lines) == 0 {
		return ""
	}
	return strings.Join(t.lines, "\n") + "\n"
}

// Demo is one catalog entry. Run posts the demo's work onto lp and
// returns before the loop runs; it must not block.
type Demo struct {
	Name    string
	Topic   string
	Summary string
	Run     func(t *Transcript, lp *loop.Loop) error
}

var registry []Demo

// Register adds d to the catalog. Names must be unique; duplicates are a
// programming error and panic at init time.
func Register(d Demo) {
	if d.Name == "" || d.Run == nil {
		panic("demos: incomplete demo registration")
	}
	for _, existing := range registry {
		if existing.Name == d.Name {
			panic("demos: duplicate demo " + d.Name)
		}
	}
	registry = append(registry, d)
}

// All returns the catalog in registration order.
func All() []Demo {
	out := make([]Demo, len(registry))
	copy(out, registry)
	return out
}

// Find returns the demo named name.
func Find(name string) (Demo, bool) {
	for _, d := range registry {
		if d.Name == name {
			return d, true
		}
	}
	return Demo{}, false
}

// Execute runs d to quiescence on lp and returns its transcript.
func Execute(ctx context.Context, d Demo, lp *loop.Loop) (*Transcript, error) {
	t := NewTranscript()
	if err := d.Run(t, lp); err != nil {
		return nil, fmt.Errorf("setting up demo %s: %w", d.Name, err)
	}
	if err := lp.Run(ctx); err != nil {
		return nil, fmt.Errorf("running demo %s: %w", d.Name, err)
	}
	return t, nil
}
