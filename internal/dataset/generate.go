package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/cockpit/internal/portfolio"
)

// DefaultSeed is used when no seed has been configured.
const DefaultSeed uint64 = 42

// HighRiskThreshold is the failure risk above which a work order needs approval.
const HighRiskThreshold = 70.0

var actionNamespace = uuid.MustParse("5b3e6a0c-0d4f-4a51-9a6e-2f1b7c9d8e01")

type plannedTask struct {
	name  string
	site  portfolio.Site
	dep   string
	start int // weeks from today
	weeks int
	cost  [2]float64 // $k/week range
}

var portfolioPlan = []plannedTask{
	{"LIMS v3 Upgrade", portfolio.SiteSanDiego, "", -10, 24, [2]float64{18, 26}},
	{"AI Drug Discovery Platform", portfolio.SiteSeattle, "", -6, 30, [2]float64{30, 45}},
	{"Cloud Data Lake Buildout", portfolio.SiteSeattle, "", -14, 20, [2]float64{15, 22}},
	{"CSV Remediation Wave 2", portfolio.SiteSanDiego, "LIMS v3 Upgrade", 14, 10, [2]float64{6, 10}},
	{"ELN Migration", portfolio.SiteSanDiego, "Cloud Data Lake Buildout", 6, 16, [2]float64{9, 14}},
	{"Lab Robotics Integration", portfolio.SiteSeattle, "AI Drug Discovery Platform", 24, 18, [2]float64{20, 28}},
	{"CDS Consolidation", portfolio.SiteSanDiego, "LIMS v3 Upgrade", 16, 12, [2]float64{8, 12}},
	{"Instrument IoT Telemetry", portfolio.SiteSeattle, "Cloud Data Lake Buildout", 8, 14, [2]float64{7, 11}},
}

var (
	assetTypes = []struct{ name, prefix string }{
		{"HPLC", "HPLC"},
		{"Mass Spectrometer", "MS"},
		{"Liquid Handler", "LH"},
		{"Sequencer", "SEQ"},
		{"Ultra-Low Freezer", "ULT"},
	}
	cloudProjects    = []string{"AI Drug Discovery", "Genomics Pipeline", "LIMS v3", "Data Lake"}
	cloudServices    = []string{"Compute", "Storage", "ML Training", "Networking"}
	instrumentGroups = []string{"HPLC", "Mass Spec", "qPCR", "Liquid Handlers", "Sequencers"}
	weekdays         = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	skillDomains     = []string{"Python", "Cloud (FinOps)", "CSV/Validation", "LIMS", "Data Engineering"}
	skillLevels      = []string{"Beginner", "Intermediate", "Advanced", "Expert"}
	auditUsers       = []string{"davis_c", "nguyen_a", "ruiz_c", "patel_d", "walsh_e", "system"}
	auditSystems     = []string{"LIMS-PROD", "ELN-PROD", "CDS-01", "SAP-QM", "MES-WEST"}
	auditActions     = []string{"LOGIN", "RECORD_MODIFIED", "RESULT_APPROVED", "CONFIG_CHANGE", "AUDIT_TRAIL_EXPORT", "E_SIGNATURE"}
	validatedSystems = []string{
		"LIMS-PROD", "ELN-PROD", "CDS-01", "SAP-QM", "MES-WEST", "HPLC-07",
		"MS-02", "qPCR-11", "LH-04", "SEQ-01", "ULT-03", "EMS-Monitoring",
	}
	instruments = []string{"HPLC-07", "MS-02", "qPCR-11", "LH-04", "SEQ-01", "HPLC-12"}
)

var team = []struct {
	name string
	site portfolio.Site
}{
	{"Alice Nguyen", portfolio.SiteSanDiego},
	{"Brian Davis", portfolio.SiteSanDiego},
	{"Emma Walsh", portfolio.SiteSanDiego},
	{"Carla Ruiz", portfolio.SiteSeattle},
	{"Dev Patel", portfolio.SiteSeattle},
	{"Felix Ortiz", portfolio.SiteSeattle},
}

var sampleSteps = []struct{ step, location string }{
	{"Sample Received", "Receiving Dock"},
	{"Logged in LIMS", "LIMS-PROD"},
	{"Aliquoted", "Prep Lab 2"},
	{"Prep Complete", "Prep Lab 2"},
	{"Analysis Started", "HPLC-07"},
	{"Analysis Complete", "HPLC-07"},
	{"Data Reviewed", "CDS-01"},
	{"Result Certified", "LIMS-PROD"},
}

type generator struct {
	r     *rand.Rand
	today time.Time
}

// Generate builds a full synthetic snapshot. The same seed and day always
// yield the same data.
func Generate(seed uint64, now time.Time) *Snapshot {
	g := &generator{
		r:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		today: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}

	s := &Snapshot{Seed: seed, GeneratedAt: now}
	s.Portfolio = g.portfolio()
	s.Assets = g.assets()
	s.CloudCosts = g.cloudCosts()
	s.OEE = OEE{
		Availability: g.between(0.90, 0.97),
		Performance:  g.between(0.88, 0.96),
		Quality:      g.between(0.97, 0.995),
	}
	s.ComplianceRisk = 20 + g.r.IntN(40)
	s.Financials = Financials(seed, s.Portfolio)
	s.Utilization = g.utilization()
	s.MTBF = g.mtbf()
	s.SampleJourney = g.sampleJourney()
	s.Validation = g.validation()
	s.AuditLog = g.auditLog()
	s.Team, s.SkillDomains = g.team()
	s.SkillsGap = SkillsGap{
		Gap:            "Only one team member is Advanced in Cloud (FinOps), but two upcoming projects depend on it.",
		Recommendation: "Enroll two Intermediate engineers in FinOps certification this quarter and pair them on the Data Lake cost reviews.",
	}
	s.ResourceAllocation = g.allocation(s.Team)
	s.Maintenance = g.maintenance()
	s.SystemicRisk = systemicRisk(s.Maintenance, s.Portfolio)
	return s
}

// Financials derives spend and budget per project from tasks. Budgets follow
// each task's duration and weekly cost; spend draws from its own seeded
// stream so it does not depend on the other frames.
func Financials(seed uint64, tasks portfolio.Tasks) []ProjectFinancial {
	g := &generator{r: rand.New(rand.NewPCG(seed^0x5f3759df, seed))}
	return g.financials(tasks)
}

// UsePortfolio swaps in a stored baseline and rebuilds the frames derived
// from it.
func (s *Snapshot) UsePortfolio(tasks portfolio.Tasks) {
	s.Portfolio = tasks
	s.Financials = Financials(s.Seed, tasks)
	s.SystemicRisk = systemicRisk(s.Maintenance, tasks)
}

// Portfolio generates only the project timeline for seed.
func Portfolio(seed uint64, now time.Time) portfolio.Tasks {
	return Generate(seed, now).Portfolio
}

func (g *generator) between(lo, hi float64) float64 {
	return lo + g.r.Float64()*(hi-lo)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func (g *generator) portfolio() portfolio.Tasks {
	statuses := []portfolio.Status{portfolio.StatusOnTrack, portfolio.StatusOnTrack, portfolio.StatusAtRisk}
	tasks := make(portfolio.Tasks, 0, len(portfolioPlan))
	for _, p := range portfolioPlan {
		start := g.today.AddDate(0, 0, 7*p.start)
		finish := start.AddDate(0, 0, 7*p.weeks)
		status := statuses[g.r.IntN(len(statuses))]
		if p.start > 0 {
			status = portfolio.StatusNotStarted
		}
		tasks = append(tasks, portfolio.Task{
			Name:       p.name,
			Site:       p.site,
			Start:      start,
			Finish:     finish,
			WeeklyCost: round(g.between(p.cost[0], p.cost[1]), 1),
			Dependency: p.dep,
			Status:     status,
		})
	}
	return tasks
}

func (g *generator) assets() []Asset {
	var assets []Asset
	for i := 0; i < 16; i++ {
		at := assetTypes[i%len(assetTypes)]
		site := portfolio.SiteSanDiego
		if i%2 == 1 {
			site = portfolio.SiteSeattle
		}
		assets = append(assets, Asset{
			ID:               fmt.Sprintf("%s-%02d", at.prefix, i+1),
			Type:             at.name,
			Site:             site,
			UptimePct:        round(g.between(85, 99.5), 1),
			TCOk:             round(g.between(50, 600), 0),
			ScientificImpact: 1 + g.r.IntN(10),
		})
	}
	return assets
}

func (g *generator) cloudCosts() []CloudCost {
	base := make(map[string]float64, len(cloudProjects)*len(cloudServices))
	for _, p := range cloudProjects {
		for _, s := range cloudServices {
			base[p+"/"+s] = g.between(40, 400)
		}
	}
	spikeDay := 30 + g.r.IntN(50)

	var rows []CloudCost
	start := g.today.AddDate(0, 0, -90)
	for d := 0; d < 90; d++ {
		date := start.AddDate(0, 0, d)
		for _, p := range cloudProjects {
			for _, s := range cloudServices {
				cost := base[p+"/"+s] * (1 + 0.15*g.r.NormFloat64())
				if p == "AI Drug Discovery" && s == "ML Training" && d >= spikeDay && d < spikeDay+5 {
					cost *= 3
				}
				rows = append(rows, CloudCost{Date: date, Project: p, Service: s, Cost: round(math.Max(cost, 0), 2)})
			}
		}
	}
	return rows
}

func (g *generator) financials(tasks portfolio.Tasks) []ProjectFinancial {
	out := make([]ProjectFinancial, 0, len(tasks))
	for _, t := range tasks {
		weeks := t.Finish.Sub(t.Start).Hours() / (24 * 7)
		budget := round(weeks*t.WeeklyCost, 0)
		spent := 0.0
		if t.Status != portfolio.StatusNotStarted {
			spent = round(budget*g.between(0.2, 1.05), 0)
		}
		out = append(out, ProjectFinancial{Project: t.Name, Spend: spent, Budget: budget})
	}
	return out
}

func (g *generator) utilization() Matrix {
	m := Matrix{Rows: instrumentGroups, Cols: weekdays}
	for range instrumentGroups {
		row := make([]float64, len(weekdays))
		for j := range weekdays {
			lo, hi := 55.0, 98.0
			if j >= 5 {
				lo, hi = 10, 45
			}
			row[j] = math.Round(g.between(lo, hi))
		}
		m.Values = append(m.Values, row)
	}
	return m
}

func (g *generator) mtbf() []MTBFPoint {
	first := time.Date(g.today.Year(), g.today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	points := make([]MTBFPoint, 0, 12)
	for i := 0; i < 12; i++ {
		hours := 400 + float64(i)*18 + g.between(-25, 25)
		points = append(points, MTBFPoint{Month: first.AddDate(0, i, 0), Hours: round(hours, 0)})
	}
	return points
}

func (g *generator) sampleJourney() []SampleEvent {
	operators := []string{"nguyen_a", "davis_c", "walsh_e"}
	ts := g.today.AddDate(0, 0, -3).Add(8 * time.Hour)
	events := make([]SampleEvent, 0, len(sampleSteps))
	for i, s := range sampleSteps {
		if i > 0 {
			ts = ts.Add(time.Duration(g.between(0.5, 6) * float64(time.Hour))).Truncate(time.Minute)
		}
		events = append(events, SampleEvent{
			Step:      s.step,
			Timestamp: ts,
			Location:  s.location,
			Operator:  operators[g.r.IntN(len(operators))],
		})
	}
	return events
}

func (g *generator) validation() []ValidationItem {
	items := make([]ValidationItem, 0, len(validatedSystems))
	for i, sys := range validatedSystems {
		site := portfolio.SiteSanDiego
		if i%3 == 2 {
			site = portfolio.SiteSeattle
		}
		days := 5 + g.r.IntN(176)
		status := "Validated"
		switch {
		case days < 30 && g.r.IntN(2) == 0:
			status = "At Risk"
		case days < 60:
			status = "Due Soon"
		}
		items = append(items, ValidationItem{
			System:       sys,
			Site:         site,
			DaysUntilDue: days,
			Criticality:  1 + g.r.IntN(10),
			EffortHours:  round(g.between(20, 200), 0),
			Status:       status,
		})
	}
	return items
}

func (g *generator) auditLog() []AuditEntry {
	details := map[string]string{
		"LOGIN":              "Interactive session opened",
		"RECORD_MODIFIED":    "Sample record field updated with reason code",
		"RESULT_APPROVED":    "Result approved with e-signature",
		"CONFIG_CHANGE":      "System configuration parameter changed",
		"AUDIT_TRAIL_EXPORT": "Audit trail exported for review",
		"E_SIGNATURE":        "Electronic signature applied",
	}
	entries := make([]AuditEntry, 0, 40)
	ts := g.today.AddDate(0, 0, -14)
	for i := 0; i < 40; i++ {
		ts = ts.Add(time.Duration(g.between(1, 9) * float64(time.Hour))).Truncate(time.Minute)
		action := auditActions[g.r.IntN(len(auditActions))]
		entries = append(entries, AuditEntry{
			Timestamp: ts,
			User:      auditUsers[g.r.IntN(len(auditUsers))],
			System:    auditSystems[g.r.IntN(len(auditSystems))],
			Action:    action,
			Details:   details[action],
		})
	}
	return entries
}

func (g *generator) team() ([]TeamMember, []string) {
	members := make([]TeamMember, 0, len(team))
	for _, m := range team {
		skills := make(map[string]string, len(skillDomains))
		for _, d := range skillDomains {
			skills[d] = skillLevels[g.r.IntN(len(skillLevels))]
		}
		members = append(members, TeamMember{Name: m.name, Site: m.site, Skills: skills})
	}
	domains := make([]string, len(skillDomains))
	copy(domains, skillDomains)
	return members, domains
}

func (g *generator) allocation(members []TeamMember) Matrix {
	m := Matrix{}
	for i := 1; i <= 6; i++ {
		m.Cols = append(m.Cols, g.today.AddDate(0, i, 0).Format("Jan"))
	}
	for _, tm := range members {
		row := make([]float64, len(m.Cols))
		for j := range row {
			row[j] = math.Round(g.between(40, 130))
		}
		m.Rows = append(m.Rows, tm.Name)
		m.Values = append(m.Values, row)
	}
	return m
}

func (g *generator) maintenance() []MaintenancePrediction {
	preds := make([]MaintenancePrediction, 0, len(instruments))
	for i, inst := range instruments {
		site := portfolio.SiteSanDiego
		if i%2 == 1 {
			site = portfolio.SiteSeattle
		}
		risk := g.between(5, 65)
		if i < 2 {
			risk = g.between(HighRiskThreshold+5, 95)
		}
		wo := "None"
		if risk > HighRiskThreshold {
			wo = "Pending Approval"
		} else if risk > 40 {
			wo = "Scheduled"
		}
		preds = append(preds, MaintenancePrediction{
			Instrument:           inst,
			Site:                 site,
			FailureRiskPct:       round(risk, 1),
			DowntimeAvoidedHours: round(g.between(0, 48), 0),
			WorkOrder:            wo,
		})
	}
	return preds
}

func systemicRisk(preds []MaintenancePrediction, tasks portfolio.Tasks) Insight {
	worst := preds[0]
	for _, p := range preds[1:] {
		if p.FailureRiskPct > worst.FailureRiskPct {
			worst = p
		}
	}
	project := "the active portfolio"
	for _, t := range tasks {
		if t.Site == worst.Site && t.Status != portfolio.StatusNotStarted {
			project = t.Name
			break
		}
	}
	return Insight{
		Title: fmt.Sprintf("Cross-system risk: %s failure threatens %s", worst.Instrument, project),
		Insight: fmt.Sprintf("%s at %s shows a %.0f%% predicted failure risk while it carries validation runs for %s. "+
			"An unplanned outage would block sample certification and push the project past its committed milestone.",
			worst.Instrument, worst.Site, worst.FailureRiskPct, project),
		Recommendation: fmt.Sprintf("Approve the pending %s work order now and pre-book a backup instrument slot for the next two weeks.", worst.Instrument),
	}
}

// ActionItems derives the approval queue from the maintenance predictions.
func ActionItems(preds []MaintenancePrediction) []ActionItem {
	var items []ActionItem
	for _, p := range preds {
		if p.FailureRiskPct <= HighRiskThreshold {
			continue
		}
		items = append(items, ActionItem{
			ID:   actionID("WO", p.Instrument),
			Type: "Work Order",
			Description: fmt.Sprintf("Preventive maintenance for %s (%s): predicted failure risk %.0f%%.",
				p.Instrument, p.Site, p.FailureRiskPct),
			Status: ActionPending,
		})
	}
	items = append(items,
		ActionItem{
			ID:          actionID("CC", "LIMS-PROD-patch"),
			Type:        "Change Control",
			Description: "Apply security patch KB5034122 to LIMS-PROD during the Saturday maintenance window.",
			Status:      ActionPending,
		},
		ActionItem{
			ID:          actionID("CAPEX", "ULT-replacement"),
			Type:        "CapEx Request",
			Description: "Replace two ultra-low freezers past end of service life ($84k).",
			Status:      ActionPending,
		},
	)
	return items
}

func actionID(prefix, name string) string {
	u := uuid.NewSHA1(actionNamespace, []byte(name))
	return prefix + "-" + strings.ToUpper(u.String()[:8])
}
