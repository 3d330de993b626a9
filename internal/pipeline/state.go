package pipeline

import (
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/pgEdge/pgedge-datalab/internal/domains"
)

// State is a step of one unit's population.
type State string

// Population states. A unit moves from NotStarted through
// CheckingExisting to either Skipped or Generating, Inserting and
// Committed, and ends in Done or Failed.
const (
	NotStarted       State = "NOT_STARTED"
	CheckingExisting State = "CHECKING_EXISTING"
	Skipped          State = "SKIPPED"
	Generating       State = "GENERATING"
	Inserting        State = "INSERTING"
	Committed        State = "COMMITTED"
	Done             State = "DONE"
	Failed           State = "FAILED"
)

var transitions = map[State][]State{
	NotStarted:       {CheckingExisting},
	CheckingExisting: {Skipped, Generating, Failed},
	Skipped:          {Done},
	Generating:       {Inserting, Failed},
	Inserting:        {Committed, Failed},
	Committed:        {Done},
}

// CanTransition reports whether a unit may move from one state to the
// next.
func CanTransition(from, to State) bool {
	return slices.Contains(transitions[from], to)
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// Result describes the population of one unit.
type Result struct {
	Module  string
	Domain  string
	Company string

	// State is Done or Failed.
	State State

	// Path lists every state the unit went through.
	Path []State

	// Skipped is set when the unit was already populated.
	Skipped bool

	// Rows holds the row count per table that was committed, or that
	// the existing completion marker records.
	Rows map[string]int64

	Duration time.Duration
	Err      error
}

// Total returns the number of rows of the result.
func (r *Result) Total() int64 {
	var n int64
	for _, c := range r.Rows {
		n += c
	}
	return n
}

// run tracks one unit through the state machine.
type run struct {
	unit  domains.Unit
	log   zerolog.Logger
	state State
	path  []State
	rows  map[string]int64
	start time.Time
}

func newRun(u domains.Unit, log zerolog.Logger) *run {
	return &run{
		unit:  u,
		log:   log,
		state: NotStarted,
		path:  []State{NotStarted},
		start: time.Now(),
	}
}

// advance moves the run to next. Illegal transitions are logged and
// still recorded so Result.Path shows what happened.
func (r *run) advance(next State) {
	if !CanTransition(r.state, next) {
		r.log.Error().
			Str("from", string(r.state)).
			Str("to", string(next)).
			Msg("Illegal state transition")
	}
	r.log.Debug().
		Str("from", string(r.state)).
		Str("state", string(next)).
		Msg("State transition")
	r.state = next
	r.path = append(r.path, next)
}

func (r *run) result(err error) *Result {
	return &Result{
		Module:   r.unit.Module(),
		Domain:   r.unit.Name(),
		Company:  r.unit.Company(),
		State:    r.state,
		Path:     r.path,
		Skipped:  slices.Contains(r.path, Skipped),
		Rows:     r.rows,
		Duration: time.Since(r.start),
		Err:      err,
	}
}
