package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/cockpit/internal/portfolio"
)

type jsonExport struct {
	ExportedAt string         `json:"exported_at"`
	Count      int            `json:"count"`
	Simulation jsonSimulation `json:"simulation"`
	Tasks      []jsonTask     `json:"tasks"`
}

type jsonSimulation struct {
	Task           string  `json:"task,omitempty"`
	DelayWeeks     int     `json:"delay_weeks"`
	Outcome        string  `json:"outcome"`
	CostImpactK    float64 `json:"cost_impact_k"`
	CascadeTarget  string  `json:"cascade_target,omitempty"`
	AdjustedFinish string  `json:"adjusted_finish,omitempty"`
	Message        string  `json:"message"`
}

type jsonTask struct {
	Name        string  `json:"name"`
	Site        string  `json:"site"`
	Start       string  `json:"start"`
	Finish      string  `json:"finish"`
	WeeklyCostK float64 `json:"weekly_cost_k"`
	Dependency  string  `json:"dependency,omitempty"`
	Status      string  `json:"status"`
	Delayed     bool    `json:"delayed"`
}

// ToJSON writes the simulation summary and the resulting schedule.
func ToJSON(res portfolio.Result, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(res.Schedule),
		Simulation: jsonSimulation{
			Task:          res.Task,
			DelayWeeks:    res.DelayWeeks,
			Outcome:       res.Outcome.String(),
			CostImpactK:   res.CostImpact,
			CascadeTarget: res.CascadeTarget,
			Message:       res.Message(),
		},
	}
	if res.Changed() {
		export.Simulation.AdjustedFinish = res.AdjustedFinish.Format(dateLayout)
	}

	for _, t := range res.Schedule {
		export.Tasks = append(export.Tasks, jsonTask{
			Name:        t.Name,
			Site:        string(t.Site),
			Start:       t.Start.Format(dateLayout),
			Finish:      t.Finish.Format(dateLayout),
			WeeklyCostK: t.WeeklyCost,
			Dependency:  t.Dependency,
			Status:      string(t.Status),
			Delayed:     delayed(res, t),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
