package dataset

import (
	"time"

	"github.com/sadopc/cockpit/internal/portfolio"
)

type Asset struct {
	ID               string
	Type             string
	Site             portfolio.Site
	UptimePct        float64
	TCOk             float64 // total cost of ownership, $k
	ScientificImpact int     // 1-10
}

type CloudCost struct {
	Date    time.Time
	Project string
	Service string
	Cost    float64 // $
}

// OEE holds the three overall-equipment-effectiveness factors, each 0..1.
type OEE struct {
	Availability float64
	Performance  float64
	Quality      float64
}

type ProjectFinancial struct {
	Project string
	Spend   float64 // $k
	Budget  float64 // $k
}

// Matrix is a labelled grid of values, used for heatmaps.
type Matrix struct {
	Rows   []string
	Cols   []string
	Values [][]float64
}

func (m Matrix) Empty() bool {
	return len(m.Rows) == 0 || len(m.Cols) == 0
}

// SelectRows keeps the rows whose label is in keep, in keep's order.
func (m Matrix) SelectRows(keep []string) Matrix {
	out := Matrix{Cols: m.Cols}
	for _, k := range keep {
		for i, r := range m.Rows {
			if r == k {
				out.Rows = append(out.Rows, r)
				out.Values = append(out.Values, m.Values[i])
				break
			}
		}
	}
	return out
}

type MTBFPoint struct {
	Month time.Time
	Hours float64
}

type SampleEvent struct {
	Step      string
	Timestamp time.Time
	Location  string
	Operator  string
}

type ValidationItem struct {
	System       string
	Site         portfolio.Site
	DaysUntilDue int
	Criticality  int // 1-10
	EffortHours  float64
	Status       string // Validated, Due Soon, At Risk
}

type AuditEntry struct {
	Timestamp time.Time
	User      string
	System    string
	Action    string
	Details   string
}

type TeamMember struct {
	Name   string
	Site   portfolio.Site
	Skills map[string]string // domain -> Beginner/Intermediate/Advanced/Expert
}

type SkillsGap struct {
	Gap            string
	Recommendation string
}

type MaintenancePrediction struct {
	Instrument           string
	Site                 portfolio.Site
	FailureRiskPct       float64
	DowntimeAvoidedHours float64
	WorkOrder            string
}

type ActionStatus string

const (
	ActionPending  ActionStatus = "Pending"
	ActionApproved ActionStatus = "Approved"
	ActionRejected ActionStatus = "Rejected"
)

type ActionItem struct {
	ID          string
	Type        string
	Description string
	Status      ActionStatus
}

type Insight struct {
	Title          string
	Insight        string
	Recommendation string
}

// Snapshot is every frame the dashboard pages read.
type Snapshot struct {
	Seed        uint64
	GeneratedAt time.Time

	Portfolio          portfolio.Tasks
	Assets             []Asset
	CloudCosts         []CloudCost
	OEE                OEE
	ComplianceRisk     int
	Financials         []ProjectFinancial
	Utilization        Matrix
	MTBF               []MTBFPoint
	SampleJourney      []SampleEvent
	Validation         []ValidationItem
	AuditLog           []AuditEntry
	Team               []TeamMember
	SkillDomains       []string
	SkillsGap          SkillsGap
	ResourceAllocation Matrix
	Maintenance        []MaintenancePrediction
	SystemicRisk       Insight
}
