package cli

import (
	"fmt"
	"strings"

	"github.com/sadopc/cockpit/internal/advisor"
	"github.com/sadopc/cockpit/internal/kpi"
	"github.com/sadopc/cockpit/internal/portfolio"
	"github.com/sadopc/cockpit/internal/session"
)

const dateLayout = "2006-01-02"

// formatReport renders the home cockpit as plain text.
func formatReport(sess *session.Session) string {
	snap := sess.Snapshot()
	tasks := sess.Portfolio()
	health := kpi.PortfolioHealth(tasks)
	rate, spend, budget := kpi.BurnRate(snap.Financials)

	var b strings.Builder
	fmt.Fprintf(&b, "DTE WEST COAST COCKPIT: %s\n", sess.Site())
	fmt.Fprintf(&b, "Data as of %s (seed %d)\n\n", snap.GeneratedAt.Format(dateLayout), snap.Seed)

	fmt.Fprintf(&b, "  %-20s %s\n", "Global OEE", fmt.Sprintf("%.1f%%", kpi.OEE(snap.OEE)*100))
	fmt.Fprintf(&b, "  %-20s %d/%d On Track (%d at risk)\n", "Portfolio Health", health.OnTrack, health.Total, health.AtRisk)
	fmt.Fprintf(&b, "  %-20s %d open\n", "Compliance Risk", snap.ComplianceRisk)
	fmt.Fprintf(&b, "  %-20s %.1f%% (%s of %s)\n", "Budget Burn", rate*100, advisor.Money(spend), advisor.Money(budget))
	fmt.Fprintf(&b, "  %-20s %d pending\n\n", "Action Center", len(sess.PendingActions()))

	fmt.Fprintf(&b, "SYSTEMIC RISK: %s\n", snap.SystemicRisk.Title)
	fmt.Fprintf(&b, "  %s\n", snap.SystemicRisk.Insight)
	fmt.Fprintf(&b, "  Recommendation: %s\n\n", snap.SystemicRisk.Recommendation)

	b.WriteString(formatSchedule(tasks, ""))
	return b.String()
}

// formatSchedule lists tasks one per line, marking the delayed one.
func formatSchedule(tasks portfolio.Tasks, delayed string) string {
	if len(tasks) == 0 {
		return "No portfolio data for selected site.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-30s %-10s %-10s %-10s %9s  %-12s %s\n", "PROJECT", "SITE", "START", "FINISH", "WEEKLY", "STATUS", "DEPENDS ON")
	for _, t := range tasks {
		mark := " "
		if t.Name == delayed {
			mark = "*"
		}
		fmt.Fprintf(&b, "%-30s %-10s %-10s %-10s %9s  %-12s %s\n",
			mark+t.Name, t.Site, t.Start.Format(dateLayout), t.Finish.Format(dateLayout),
			tenths(t.WeeklyCost), t.Status, t.Dependency)
	}
	return b.String()
}

// formatSimulation renders a delay simulation the way the modeler page
// summarises it.
func formatSimulation(site portfolio.Site, res portfolio.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SIMULATION: %s\n", site)
	if res.Changed() {
		fmt.Fprintf(&b, "  Project:        %s\n", res.Task)
		fmt.Fprintf(&b, "  Delay:          %d weeks\n", res.DelayWeeks)
		fmt.Fprintf(&b, "  Finish:         %s -> %s\n", res.OriginalFinish.Format(dateLayout), res.AdjustedFinish.Format(dateLayout))
		if i := res.Schedule.Index(res.Task); len(i) == 1 {
			fmt.Fprintf(&b, "  Weekly cost:    %s\n", tenths(res.Schedule[i[0]].WeeklyCost))
		}
		fmt.Fprintf(&b, "  Budget impact:  +%s\n", tenths(res.CostImpact))
	} else {
		fmt.Fprintf(&b, "  Outcome:        %s\n", res.Outcome)
	}
	fmt.Fprintf(&b, "\n%s\n", res.Message())
	b.WriteString("\n")
	b.WriteString(formatSchedule(res.Schedule, delayedName(res)))
	return b.String()
}

// tenths formats a $k figure to one decimal, the precision weekly costs are
// stored at.
func tenths(v float64) string {
	return fmt.Sprintf("$%.1fk", v)
}

func delayedName(res portfolio.Result) string {
	if res.Changed() {
		return res.Task
	}
	return ""
}
