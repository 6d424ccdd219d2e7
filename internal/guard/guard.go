// Package guard implements the reload-abuse monitor for active attempts. It
// models disruptive client events (reload shortcuts, navigation, visibility
// loss, unload attempts) as a single event stream feeding a counter state
// machine, independent of the concrete event source, so escalation is
// testable without a browser.
//
// The guard is a deterrent, not a security boundary: the attempt status field
// remains the sole authority on whether an attempt is still gradable.
package guard

import (
	"fmt"
)

type EventKind string

const (
	EventReload     EventKind = "reload"
	EventNavigation EventKind = "navigation"
	EventVisibility EventKind = "visibility"
	EventUnload     EventKind = "unload"
)

type Action string

const (
	// ActionWarn offers the student a choice: cancel and resume unaffected,
	// or confirm and have the attempt force-completed.
	ActionWarn Action = "warn"
	// ActionAutoSubmit means the threshold was reached; no choice is offered
	// and the caller must complete the attempt with the answers recorded so far.
	ActionAutoSubmit Action = "auto_submit"
)

// Threshold is the disruption count at which the guard stops prompting and
// forces submission.
const Threshold = 3

// CounterStore persists disruption counters across reloads, keyed per
// (quiz, student) session. Production uses Redis; tests use MemoryStore.
type CounterStore interface {
	Incr(key string) (int, error)
	Get(key string) (int, error)
	Clear(key string) error
}

type Decision struct {
	Warnings int
	Action   Action
}

type Monitor struct {
	store CounterStore
}

func NewMonitor(store CounterStore) *Monitor {
	return &Monitor{store: store}
}

func key(quizID, studentID uint) string {
	return fmt.Sprintf("disruptions:quiz:%d:student:%d", quizID, studentID)
}

// Record counts one disruptive event and returns the escalation decision.
// Counting happens before the decision so the very act being guarded against
// (a reload) cannot reset the tally.
func (m *Monitor) Record(quizID, studentID uint, _ EventKind) (Decision, error) {
	n, err := m.store.Incr(key(quizID, studentID))
	if err != nil {
		return Decision{}, fmt.Errorf("incrementing disruption counter: %w", err)
	}
	if n >= Threshold {
		return Decision{Warnings: n, Action: ActionAutoSubmit}, nil
	}
	return Decision{Warnings: n, Action: ActionWarn}, nil
}

// Warnings reports the current counter without recording an event.
func (m *Monitor) Warnings(quizID, studentID uint) (int, error) {
	return m.store.Get(key(quizID, studentID))
}

// Clear drops the session's counters, called once the attempt has been
// completed through any path.
func (m *Monitor) Clear(quizID, studentID uint) error {
	return m.store.Clear(key(quizID, studentID))
}
