package portfolio

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTask is returned when a task row fails construction checks.
var ErrInvalidTask = errors.New("invalid task")

type Site string

const (
	SiteAll      Site = "West Coast (Overall)"
	SiteSanDiego Site = "San Diego"
	SiteSeattle  Site = "Seattle"
)

// Sites lists the selectable site views, SiteAll first.
var Sites = []Site{SiteAll, SiteSanDiego, SiteSeattle}

// ParseSite matches a site name case-sensitively. The empty string maps to SiteAll.
func ParseSite(s string) (Site, error) {
	if s == "" {
		return SiteAll, nil
	}
	for _, site := range Sites {
		if string(site) == s {
			return site, nil
		}
	}
	return "", fmt.Errorf("unknown site %q", s)
}

type Status string

const (
	StatusOnTrack    Status = "On Track"
	StatusAtRisk     Status = "At Risk"
	StatusComplete   Status = "Complete"
	StatusNotStarted Status = "Not Started"
)

// Task is one row of the project timeline.
type Task struct {
	Name       string
	Site       Site
	Start      time.Time
	Finish     time.Time
	WeeklyCost float64 // $k per week
	Dependency string  // name of the predecessor, empty if none
	Status     Status
}

// NewTask builds a validated task row.
func NewTask(name string, site Site, start, finish time.Time, weeklyCost float64, dependency string, status Status) (Task, error) {
	t := Task{
		Name:       name,
		Site:       site,
		Start:      start,
		Finish:     finish,
		WeeklyCost: weeklyCost,
		Dependency: dependency,
		Status:     status,
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate checks the row invariants. The dependency reference is not
// checked against the rest of the collection.
func (t Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTask)
	}
	if t.Site != SiteSanDiego && t.Site != SiteSeattle {
		return fmt.Errorf("%w: %q has unknown site %q", ErrInvalidTask, t.Name, t.Site)
	}
	if t.Finish.Before(t.Start) {
		return fmt.Errorf("%w: %q finishes before it starts", ErrInvalidTask, t.Name)
	}
	if t.WeeklyCost < 0 {
		return fmt.Errorf("%w: %q has negative weekly cost", ErrInvalidTask, t.Name)
	}
	return nil
}

// Tasks is an ordered task collection. Order is display order.
type Tasks []Task

// Clone returns an independent copy. Task holds no reference fields, so a
// shallow element copy is enough.
func (ts Tasks) Clone() Tasks {
	if ts == nil {
		return nil
	}
	out := make(Tasks, len(ts))
	copy(out, ts)
	return out
}

func (ts Tasks) Names() []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.Name
	}
	return names
}

// Index returns the positions of every row named name.
func (ts Tasks) Index(name string) []int {
	var idx []int
	for i, t := range ts {
		if t.Name == name {
			idx = append(idx, i)
		}
	}
	return idx
}

// Span returns the earliest start and latest finish across the collection.
func (ts Tasks) Span() (time.Time, time.Time) {
	var from, to time.Time
	for i, t := range ts {
		if i == 0 || t.Start.Before(from) {
			from = t.Start
		}
		if i == 0 || t.Finish.After(to) {
			to = t.Finish
		}
	}
	return from, to
}

// CountStatus counts rows with the given status.
func (ts Tasks) CountStatus(s Status) int {
	n := 0
	for _, t := range ts {
		if t.Status == s {
			n++
		}
	}
	return n
}
