package portfolio

import (
	"fmt"
	"time"
)

// MaxDelayWeeks bounds the delay a simulation accepts.
const MaxDelayWeeks = 12

const week = 7 * 24 * time.Hour

// Outcome classifies what a simulation did.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeNoChange
	OutcomeEmpty
	OutcomeNoMatch
	OutcomeAmbiguous
	OutcomeOutOfRange
)

var outcomeNames = map[Outcome]string{
	OutcomeApplied:    "applied",
	OutcomeNoChange:   "no change",
	OutcomeEmpty:      "nothing to simulate",
	OutcomeNoMatch:    "no match",
	OutcomeAmbiguous:  "ambiguous",
	OutcomeOutOfRange: "out of range",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is the ephemeral output of one simulation.
type Result struct {
	Schedule       Tasks
	Outcome        Outcome
	Task           string
	DelayWeeks     int
	OriginalFinish time.Time
	AdjustedFinish time.Time
	CostImpact     float64 // $k
	CascadeTarget  string
}

// Changed reports whether the schedule differs from the input.
func (r Result) Changed() bool {
	return r.Outcome == OutcomeApplied
}

// CascadeMessage is empty when no downstream task is affected.
func (r Result) CascadeMessage() string {
	if r.CascadeTarget == "" {
		return ""
	}
	return fmt.Sprintf("Dependency Alert: delaying %q will cause a cascading delay to %q.", r.Task, r.CascadeTarget)
}

// Message is a neutral, user-facing summary of the outcome.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeEmpty:
		return "No portfolio data for selected site."
	case OutcomeNoMatch:
		return fmt.Sprintf("No project named %q in the current view.", r.Task)
	case OutcomeAmbiguous:
		return fmt.Sprintf("Project name %q is ambiguous; nothing was changed.", r.Task)
	case OutcomeOutOfRange:
		return fmt.Sprintf("Delay must be between 0 and %d weeks.", MaxDelayWeeks)
	}
	if msg := r.CascadeMessage(); msg != "" {
		return msg
	}
	return "No direct dependency conflicts detected."
}

// Simulate delays one task by delayWeeks and reports the budget impact and
// the first downstream dependent. The working copy is never modified; the
// returned schedule is a fresh collection.
//
// Only the first dependent in collection order is reported, even when several
// tasks depend on the delayed one.
func Simulate(workingCopy Tasks, taskName string, delayWeeks int) Result {
	res := Result{
		Schedule:   workingCopy.Clone(),
		Task:       taskName,
		DelayWeeks: delayWeeks,
	}

	if len(workingCopy) == 0 {
		res.Outcome = OutcomeEmpty
		res.DelayWeeks = 0
		return res
	}
	if delayWeeks < 0 || delayWeeks > MaxDelayWeeks {
		res.Outcome = OutcomeOutOfRange
		res.DelayWeeks = 0
		return res
	}

	idx := workingCopy.Index(taskName)
	switch {
	case len(idx) == 0:
		res.Outcome = OutcomeNoMatch
		res.DelayWeeks = 0
		return res
	case len(idx) > 1:
		res.Outcome = OutcomeAmbiguous
		res.DelayWeeks = 0
		return res
	}

	row := &res.Schedule[idx[0]]
	res.OriginalFinish = row.Finish
	res.AdjustedFinish = row.Finish

	if delayWeeks == 0 {
		res.Outcome = OutcomeNoChange
		return res
	}

	row.Finish = row.Finish.Add(time.Duration(delayWeeks) * week)
	res.AdjustedFinish = row.Finish
	res.CostImpact = float64(delayWeeks) * row.WeeklyCost
	res.Outcome = OutcomeApplied

	for _, t := range res.Schedule {
		if t.Dependency == taskName {
			res.CascadeTarget = t.Name
			break
		}
	}
	return res
}
