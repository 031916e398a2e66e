package portfolio

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask_Validation(t *testing.T) {
	start := day0
	tests := []struct {
		name   string
		task   string
		site   Site
		finish time.Time
		cost   float64
	}{
		{"empty name", "", SiteSanDiego, start, 1},
		{"unknown site", "X", Site("Boston"), start, 1},
		{"all-sites sentinel is not a row site", "X", SiteAll, start, 1},
		{"finish before start", "X", SiteSeattle, start.Add(-time.Hour), 1},
		{"negative cost", "X", SiteSeattle, start, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.task, tt.site, start, tt.finish, tt.cost, "", StatusOnTrack)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTask))
		})
	}

	task, err := NewTask("ok", SiteSeattle, start, start, 0, "missing-ref", StatusAtRisk)
	require.NoError(t, err)
	assert.Equal(t, "missing-ref", task.Dependency)
}

func TestNewStore_RejectsInvalidRow(t *testing.T) {
	_, err := NewStore([]Task{{Name: "bad", Site: SiteSanDiego, Start: day0, Finish: day0, WeeklyCost: -1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTask)
}

func TestStore_LoadReturnsIsolatedCopy(t *testing.T) {
	tasks := sampleTasks(t)
	s, err := NewStore(tasks)
	require.NoError(t, err)

	tasks[0].Name = "caller mutation"
	got := s.Load(SiteAll)
	assert.Equal(t, "A", got[0].Name, "store must not alias the constructor input")

	got[0].Finish = got[0].Finish.AddDate(1, 0, 0)
	again := s.Load(SiteAll)
	assert.True(t, again[0].Finish.Equal(day0), "store must not alias returned copies")
}

func TestStore_SiteFilterPartition(t *testing.T) {
	s, err := NewStore(sampleTasks(t))
	require.NoError(t, err)

	all := s.Load(SiteAll)
	assert.Len(t, all, s.Len())

	seen := map[string]int{}
	total := 0
	for _, site := range []Site{SiteSanDiego, SiteSeattle} {
		part := s.Load(site)
		for _, task := range part {
			assert.Equal(t, site, task.Site)
			seen[task.Name]++
		}
		total += len(part)
	}
	assert.Equal(t, len(all), total)
	for _, task := range all {
		assert.Equal(t, 1, seen[task.Name], "%s must appear in exactly one partition", task.Name)
	}
}

func TestStore_LoadUnknownSiteIsEmpty(t *testing.T) {
	s, err := NewStore(sampleTasks(t))
	require.NoError(t, err)

	got := s.Load(Site("Boston"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReset_Idempotent(t *testing.T) {
	baseline := sampleTasks(t)
	want := baseline.Clone()

	a := Reset(baseline)
	b := Reset(baseline)
	assert.Equal(t, want, a)
	assert.Equal(t, want, b)

	a[0].Finish = a[0].Finish.AddDate(0, 0, 7)
	assert.Equal(t, want, b)
	assert.Equal(t, want, baseline)

	sim := Simulate(b, "A", 5)
	require.True(t, sim.Changed())
	assert.Equal(t, want, b)
	assert.Equal(t, want, baseline)
	assert.Equal(t, want, Reset(baseline))
}

func TestReset_NilBaseline(t *testing.T) {
	got := Reset(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseSite(t *testing.T) {
	site, err := ParseSite("Seattle")
	require.NoError(t, err)
	assert.Equal(t, SiteSeattle, site)

	site, err = ParseSite("")
	require.NoError(t, err)
	assert.Equal(t, SiteAll, site)

	_, err = ParseSite("seattle")
	assert.Error(t, err)
}

func TestTasks_Span(t *testing.T) {
	from, to := sampleTasks(t).Span()
	assert.True(t, from.Equal(day0.AddDate(0, 0, -42)))
	assert.True(t, to.Equal(day0))

	from, to = Tasks{}.Span()
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())
}
