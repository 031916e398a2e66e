// Package kpi computes the headline metrics shown on the dashboard pages.
package kpi

import (
	"math"
	"sort"
	"time"

	"github.com/sadopc/cockpit/internal/dataset"
	"github.com/sadopc/cockpit/internal/portfolio"
)

// EventHours is the length of one downtime event.
const EventHours = 8

// OEE returns availability x performance x quality.
func OEE(o dataset.OEE) float64 {
	return o.Availability * o.Performance * o.Quality
}

type Health struct {
	OnTrack int
	AtRisk  int
	Total   int
}

// PortfolioHealth counts at-risk projects. An empty collection reports a
// total of 1 so ratios stay defined.
func PortfolioHealth(tasks portfolio.Tasks) Health {
	total := len(tasks)
	if total == 0 {
		total = 1
	}
	atRisk := tasks.CountStatus(portfolio.StatusAtRisk)
	return Health{OnTrack: total - atRisk, AtRisk: atRisk, Total: total}
}

// BurnRate is total spend over total budget, 0 when there is no budget.
func BurnRate(fin []dataset.ProjectFinancial) (rate, spend, budget float64) {
	for _, f := range fin {
		spend += f.Spend
		budget += f.Budget
	}
	if budget > 0 {
		rate = spend / budget
	}
	return rate, spend, budget
}

// Turnaround is the time from the first to the last sample event.
func Turnaround(events []dataset.SampleEvent) time.Duration {
	if len(events) == 0 {
		return 0
	}
	lo, hi := events[0].Timestamp, events[0].Timestamp
	for _, e := range events[1:] {
		if e.Timestamp.Before(lo) {
			lo = e.Timestamp
		}
		if e.Timestamp.After(hi) {
			hi = e.Timestamp
		}
	}
	return hi.Sub(lo)
}

// DowntimeEventsAvoided converts avoided hours into whole downtime events.
func DowntimeEventsAvoided(preds []dataset.MaintenancePrediction) int {
	var hours float64
	for _, p := range preds {
		hours += p.DowntimeAvoidedHours
	}
	return int(hours / EventHours)
}

// MTBFTrend returns the latest MTBF and its change from the previous month.
// ok is false with fewer than two points.
func MTBFTrend(points []dataset.MTBFPoint) (last, delta float64, ok bool) {
	if len(points) < 2 {
		return 0, 0, false
	}
	last = points[len(points)-1].Hours
	return last, last - points[len(points)-2].Hours, true
}

// Coverage is the GxP validation coverage for a set of systems.
type Coverage struct {
	Validated   int
	Total       int
	HighRiskDue int
	Available   bool
}

func (c Coverage) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Validated) / float64(c.Total)
}

// ValidationCoverage counts systems not at risk, and high-criticality
// systems due within 30 days.
func ValidationCoverage(items []dataset.ValidationItem) Coverage {
	c := Coverage{Total: len(items), Available: len(items) > 0}
	for _, it := range items {
		if it.Status != "At Risk" {
			c.Validated++
		}
		if it.DaysUntilDue < 30 && it.Criticality > 7 {
			c.HighRiskDue++
		}
	}
	return c
}

type Quadrant string

const (
	QuadrantValueDrain Quadrant = "Value Drain"
	QuadrantWorkhorse  Quadrant = "Workhorse"
	QuadrantCritical   Quadrant = "Critical & Costly"
	QuadrantNuisance   Quadrant = "Nuisance"
)

type AssetPosition struct {
	Asset    dataset.Asset
	Quadrant Quadrant
}

// Quadrants places each asset against the mean uptime and mean TCO.
func Quadrants(assets []dataset.Asset) (positions []AssetPosition, meanUptime, meanTCO float64) {
	if len(assets) == 0 {
		return nil, 0, 0
	}
	for _, a := range assets {
		meanUptime += a.UptimePct
		meanTCO += a.TCOk
	}
	meanUptime /= float64(len(assets))
	meanTCO /= float64(len(assets))

	for _, a := range assets {
		highCost := a.TCOk >= meanTCO
		reliable := a.UptimePct >= meanUptime
		q := QuadrantNuisance
		switch {
		case highCost && !reliable:
			q = QuadrantValueDrain
		case highCost && reliable:
			q = QuadrantCritical
		case !highCost && reliable:
			q = QuadrantWorkhorse
		}
		positions = append(positions, AssetPosition{Asset: a, Quadrant: q})
	}
	return positions, meanUptime, meanTCO
}

type CostShare struct {
	Label string
	Cost  float64
}

// CostByProject sums cloud cost per project, largest first.
func CostByProject(rows []dataset.CloudCost) []CostShare {
	return groupCost(rows, func(c dataset.CloudCost) string { return c.Project })
}

// CostByService sums cloud cost per project/service pair, largest first.
func CostByService(rows []dataset.CloudCost) []CostShare {
	return groupCost(rows, func(c dataset.CloudCost) string { return c.Project + " / " + c.Service })
}

func groupCost(rows []dataset.CloudCost, key func(dataset.CloudCost) string) []CostShare {
	sums := map[string]float64{}
	for _, r := range rows {
		sums[key(r)] += r.Cost
	}
	out := make([]CostShare, 0, len(sums))
	for k, v := range sums {
		out = append(out, CostShare{Label: k, Cost: math.Round(v*100) / 100})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost > out[j].Cost
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// DailySpend totals cloud cost per day in date order.
func DailySpend(rows []dataset.CloudCost) []float64 {
	byDay := map[time.Time]float64{}
	var days []time.Time
	for _, r := range rows {
		if _, ok := byDay[r.Date]; !ok {
			days = append(days, r.Date)
		}
		byDay[r.Date] += r.Cost
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = byDay[d]
	}
	return out
}

// MaxRisk returns the index of the highest failure risk, -1 when empty.
func MaxRisk(preds []dataset.MaintenancePrediction) int {
	idx := -1
	for i, p := range preds {
		if idx < 0 || p.FailureRiskPct > preds[idx].FailureRiskPct {
			idx = i
		}
	}
	return idx
}
