package diag

import (
	"fmt"

	"github.com/google/uuid"
)

// Severity grades a diagnostic message.
type Severity int

const (
	// Info marks a routine, non-lossy remark (e.g. a pruning note).
	Info Severity = iota
	// Warning marks a lossy or approximate mapping decision.
	Warning
	// Error is reserved for callers reporting a structural failure post hoc;
	// the collector itself never aborts a run.
	Error
)

var severityTags = [...]string{"info", "warning", "error"}

// String returns the lowercase tag of s.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityTags) {
		return "unknown"
	}

	return severityTags[s]
}

// Message is one diagnostic: severity, the uid string of the component it
// concerns (empty for whole-network messages), and the human-readable text.
type Message struct {
	Severity  Severity
	Component string
	Text      string
}

// String renders the message in "severity[component]: text" form.
func (m Message) String() string {
	if m.Component == "" {
		return fmt.Sprintf("%s: %s", m.Severity, m.Text)
	}

	return fmt.Sprintf("%s[%s]: %s", m.Severity, m.Component, m.Text)
}

// Collector accumulates diagnostics for one translation or extraction run.
// It is append-only and preserves insertion order.
type Collector struct {
	runID uuid.UUID
	msgs  []Message
}

// NewCollector creates an empty collector with a fresh run identity.
func NewCollector() *Collector {
	return &Collector{runID: uuid.New()}
}

// RunID returns the identity of this run, for correlating diagnostics with
// results in comparison reports.
func (c *Collector) RunID() uuid.UUID { return c.runID }

// Infof appends an Info message about component (uid string, may be empty).
func (c *Collector) Infof(component, format string, args ...interface{}) {
	c.msgs = append(c.msgs, Message{Severity: Info, Component: component, Text: fmt.Sprintf(format, args...)})
}

// Warnf appends a Warning message about component.
func (c *Collector) Warnf(component, format string, args ...interface{}) {
	c.msgs = append(c.msgs, Message{Severity: Warning, Component: component, Text: fmt.Sprintf(format, args...)})
}

// Errorf appends an Error message about component.
func (c *Collector) Errorf(component, format string, args ...interface{}) {
	c.msgs = append(c.msgs, Message{Severity: Error, Component: component, Text: fmt.Sprintf(format, args...)})
}

// Messages returns a copy of all messages in insertion order.
func (c *Collector) Messages() []Message {
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)

	return out
}

// Warnings returns only the Warning-severity messages, in insertion order.
func (c *Collector) Warnings() []Message {
	var out []Message
	for _, m := range c.msgs {
		if m.Severity == Warning {
			out = append(out, m)
		}
	}

	return out
}

// HasWarnings reports whether at least one Warning was recorded.
func (c *Collector) HasWarnings() bool {
	return len(c.Warnings()) > 0
}

// Len returns the total number of recorded messages.
func (c *Collector) Len() int { return len(c.msgs) }
