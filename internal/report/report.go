// Package report records the observable effects of a scaffolding run.
//
// A Report is an append-only, ordered log of events. Actions append an
// invoke event when they start, the structure writer appends create or skip
// events per path, and external commands append run events. The same events
// are produced whether the run is real or pretend, so the report doubles as
// the dry-run output.
package report

import "slices"

// Kind classifies a report event.
type Kind string

const (
	// KindInvoke marks the start of an action.
	KindInvoke Kind = "invoke"
	// KindCreate marks a path materialized or that would be materialized.
	KindCreate Kind = "create"
	// KindSkip marks an existing path that was left untouched.
	KindSkip Kind = "skip"
	// KindRun marks an external command executed or that would be executed.
	KindRun Kind = "run"
)

// Event is one entry of a Report.
type Event struct {
	Kind    Kind
	Subject string
	Detail  string
}

// Sink receives events as they are appended.
type Sink interface {
	Emit(Event)
}

// Report is an append-only event log. The zero value is ready to use.
type Report struct {
	events []Event
	sinks  []Sink
}

// New creates a Report forwarding every appended event to sinks, in order.
func New(sinks ...Sink) *Report {
	return &Report{sinks: sinks}
}

// Append records an event.
func (r *Report) Append(kind Kind, subject, detail string) {
	e := Event{Kind: kind, Subject: subject, Detail: detail}
	r.events = append(r.events, e)
	for _, s := range r.sinks {
		s.Emit(e)
	}
}

// Invoke records the start of an action.
func (r *Report) Invoke(actionID string) { r.Append(KindInvoke, actionID, "") }

// Create records a materialized path.
func (r *Report) Create(path string) { r.Append(KindCreate, path, "") }

// Skip records an existing path left untouched and why.
func (r *Report) Skip(path, reason string) { r.Append(KindSkip, path, reason) }

// Run records an external command; dir is the working directory.
func (r *Report) Run(command, dir string) { r.Append(KindRun, command, dir) }

// Events returns a copy of all events in append order.
func (r *Report) Events() []Event {
	return slices.Clone(r.events)
}

// Filter returns the events of the given kinds, in append order.
func (r *Report) Filter(kinds ...Kind) []Event {
	var out []Event
	for _, e := range r.events {
		if slices.Contains(kinds, e.Kind) {
			out = append(out, e)
		}
	}
	return out
}

// Effects returns the create and run events: the part of a report that
// must match between a real run and a pretend run.
func (r *Report) Effects() []Event {
	return r.Filter(KindCreate, KindRun)
}

// Has reports whether an event with the given kind and subject exists.
func (r *Report) Has(kind Kind, subject string) bool {
	for _, e := range r.events {
		if e.Kind == kind && e.Subject == subject {
			return true
		}
	}
	return false
}

// Len returns the number of recorded events.
func (r *Report) Len() int { return len(r.events) }
