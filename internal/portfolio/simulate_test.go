package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func mustTask(t *testing.T, name string, site Site, weeks int, cost float64, dep string) Task {
	t.Helper()
	task, err := NewTask(name, site, day0.AddDate(0, 0, -7*weeks), day0, cost, dep, StatusOnTrack)
	require.NoError(t, err)
	return task
}

func sampleTasks(t *testing.T) Tasks {
	t.Helper()
	return Tasks{
		mustTask(t, "A", SiteSanDiego, 4, 10, ""),
		mustTask(t, "B", SiteSeattle, 2, 25, "A"),
		mustTask(t, "C", SiteSanDiego, 6, 7.5, ""),
		mustTask(t, "D", SiteSeattle, 3, 40, "A"),
	}
}

func TestSimulate_IdentityLaw(t *testing.T) {
	wc := sampleTasks(t)
	for _, name := range wc.Names() {
		res := Simulate(wc, name, 0)
		assert.Equal(t, OutcomeNoChange, res.Outcome, name)
		assert.Equal(t, wc, res.Schedule, name)
		assert.Zero(t, res.CostImpact, name)
		assert.Empty(t, res.CascadeMessage(), name)
		assert.False(t, res.Changed(), name)
	}
}

func TestSimulate_SingleFieldMutation(t *testing.T) {
	wc := sampleTasks(t)
	before := wc.Clone()

	for delay := 1; delay <= MaxDelayWeeks; delay++ {
		res := Simulate(wc, "C", delay)
		require.Equal(t, OutcomeApplied, res.Outcome)

		changed := 0
		for i := range before {
			got, want := res.Schedule[i], before[i]
			if got.Finish.Equal(want.Finish) {
				assert.Equal(t, want, got)
				continue
			}
			changed++
			assert.Equal(t, "C", got.Name)
			got.Finish = want.Finish
			assert.Equal(t, want, got, "only Finish may differ")
		}
		assert.Equal(t, 1, changed)
	}

	assert.Equal(t, before, wc, "working copy must not be modified")
}

func TestSimulate_CostLinearity(t *testing.T) {
	wc := sampleTasks(t)
	for _, task := range wc {
		for delay := 1; delay <= MaxDelayWeeks; delay++ {
			res := Simulate(wc, task.Name, delay)
			assert.Equal(t, float64(delay)*task.WeeklyCost, res.CostImpact, "%s/%d", task.Name, delay)
		}
	}
}

func TestSimulate_CascadePositive(t *testing.T) {
	wc := Tasks{
		mustTask(t, "A", SiteSanDiego, 1, 10, ""),
		mustTask(t, "B", SiteSanDiego, 1, 5, "A"),
	}

	res := Simulate(wc, "A", 3)

	require.Equal(t, OutcomeApplied, res.Outcome)
	assert.True(t, res.AdjustedFinish.Equal(day0.AddDate(0, 0, 21)))
	assert.True(t, res.Schedule[0].Finish.Equal(day0.AddDate(0, 0, 21)))
	assert.True(t, res.OriginalFinish.Equal(day0))
	assert.Equal(t, 30.0, res.CostImpact)
	assert.Equal(t, "B", res.CascadeTarget)
	assert.Contains(t, res.CascadeMessage(), `"A"`)
	assert.Contains(t, res.CascadeMessage(), `"B"`)
	assert.Equal(t, res.CascadeMessage(), res.Message())
}

func TestSimulate_CascadeNegative(t *testing.T) {
	wc := Tasks{
		mustTask(t, "A", SiteSanDiego, 1, 10, ""),
		mustTask(t, "C", SiteSanDiego, 1, 5, ""),
	}

	res := Simulate(wc, "A", 3)

	require.Equal(t, OutcomeApplied, res.Outcome)
	assert.True(t, res.AdjustedFinish.Equal(day0.AddDate(0, 0, 21)))
	assert.Equal(t, 30.0, res.CostImpact)
	assert.Empty(t, res.CascadeTarget)
	assert.Empty(t, res.CascadeMessage())
	assert.Equal(t, "No direct dependency conflicts detected.", res.Message())
}

func TestSimulate_ReportsFirstDependentOnly(t *testing.T) {
	wc := sampleTasks(t) // B and D both depend on A

	res := Simulate(wc, "A", 2)

	assert.Equal(t, "B", res.CascadeTarget)
	assert.NotContains(t, res.CascadeMessage(), `"D"`)
}

func TestSimulate_NoMatch(t *testing.T) {
	wc := sampleTasks(t)

	res := Simulate(wc, "nonexistent", 5)

	assert.Equal(t, OutcomeNoMatch, res.Outcome)
	assert.Equal(t, wc, res.Schedule)
	assert.Zero(t, res.CostImpact)
	assert.Empty(t, res.CascadeTarget)
	assert.Contains(t, res.Message(), "nonexistent")
}

func TestSimulate_Ambiguous(t *testing.T) {
	wc := sampleTasks(t)
	wc = append(wc, mustTask(t, "A", SiteSeattle, 1, 99, ""))

	res := Simulate(wc, "A", 4)

	assert.Equal(t, OutcomeAmbiguous, res.Outcome)
	assert.Equal(t, wc, res.Schedule)
	assert.Zero(t, res.CostImpact)
	assert.Empty(t, res.CascadeTarget)
}

func TestSimulate_Empty(t *testing.T) {
	for _, wc := range []Tasks{nil, {}} {
		res := Simulate(wc, "A", 3)
		assert.Equal(t, OutcomeEmpty, res.Outcome)
		assert.Empty(t, res.Schedule)
		assert.Zero(t, res.CostImpact)
		assert.Equal(t, "No portfolio data for selected site.", res.Message())
	}
}

func TestSimulate_OutOfRange(t *testing.T) {
	wc := sampleTasks(t)
	for _, delay := range []int{-1, MaxDelayWeeks + 1, 100} {
		res := Simulate(wc, "A", delay)
		assert.Equal(t, OutcomeOutOfRange, res.Outcome, delay)
		assert.Equal(t, wc, res.Schedule, delay)
		assert.Zero(t, res.CostImpact, delay)
	}
}

func TestSimulate_ScheduleNotAliased(t *testing.T) {
	wc := sampleTasks(t)
	res := Simulate(wc, "A", 0)

	res.Schedule[0].Name = "mutated"

	assert.Equal(t, "A", wc[0].Name)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "applied", OutcomeApplied.String())
	assert.Equal(t, "ambiguous", OutcomeAmbiguous.String())
	assert.Equal(t, "outcome(42)", Outcome(42).String())
}
