package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/cockpit/internal/portfolio"
)

func sampleSchedule() portfolio.Tasks {
	d := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return portfolio.Tasks{
		{Name: "LIMS v3 Upgrade", Site: portfolio.SiteSanDiego, Start: d, Finish: d.AddDate(0, 0, 70), WeeklyCost: 21.5, Status: portfolio.StatusOnTrack},
		{Name: "CSV Remediation", Site: portfolio.SiteSanDiego, Start: d.AddDate(0, 0, 70), Finish: d.AddDate(0, 0, 140), WeeklyCost: 8, Dependency: "LIMS v3 Upgrade", Status: portfolio.StatusNotStarted},
		{Name: "AI Platform", Site: portfolio.SiteSeattle, Start: d, Finish: d.AddDate(0, 0, 210), WeeklyCost: 40, Status: portfolio.StatusAtRisk},
	}
}

func delayedResult() portfolio.Result {
	return portfolio.Simulate(sampleSchedule(), "LIMS v3 Upgrade", 2)
}

// ============================================================
// CSV export
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	if err := ToCSV(delayedResult(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// Header + 3 tasks
	if len(records) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(records))
	}
	if records[0][0] != "Task" || records[0][8] != "Delayed" {
		t.Fatalf("unexpected header %v", records[0])
	}

	lims := records[1]
	if lims[0] != "LIMS v3 Upgrade" {
		t.Fatalf("row 1 name = %q", lims[0])
	}
	if lims[3] != "2025-05-26" {
		t.Fatalf("expected delayed finish 2025-05-26, got %q", lims[3])
	}
	if lims[4] != "12.0" {
		t.Fatalf("expected 12.0 weeks, got %q", lims[4])
	}
	if lims[8] != "true" {
		t.Fatalf("expected delayed=true, got %q", lims[8])
	}
	if records[2][6] != "LIMS v3 Upgrade" || records[2][8] != "false" {
		t.Fatalf("dependent row wrong: %v", records[2])
	}
	if records[3][5] != "40" {
		t.Fatalf("expected weekly cost 40, got %q", records[3][5])
	}
}

func TestToCSVUnchanged(t *testing.T) {
	res := portfolio.Simulate(sampleSchedule(), "LIMS v3 Upgrade", 0)
	path := filepath.Join(t.TempDir(), "baseline.csv")
	if err := ToCSV(res, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "true") {
		t.Fatal("no row should be marked delayed for a zero-week simulation")
	}
}

func TestToCSVEmpty(t *testing.T) {
	res := portfolio.Simulate(portfolio.Tasks{}, "anything", 1)
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(res, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(delayedResult(), "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	tasks := sampleSchedule()
	tasks[2].Name = `AI "Discovery", Phase 2`
	res := portfolio.Simulate(tasks, tasks[2].Name, 1)

	path := filepath.Join(t.TempDir(), "special.csv")
	if err := ToCSV(res, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("csv should be parseable: %v", err)
	}
	if records[3][0] != `AI "Discovery", Phase 2` {
		t.Fatalf("name not preserved: %q", records[3][0])
	}
	if records[3][8] != "true" {
		t.Fatal("renamed task should be marked delayed")
	}
}

// ============================================================
// JSON export
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	if err := ToJSON(delayedResult(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatal(err)
	}

	if result.Count != 3 || len(result.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got count=%d len=%d", result.Count, len(result.Tasks))
	}
	sim := result.Simulation
	if sim.Task != "LIMS v3 Upgrade" || sim.DelayWeeks != 2 {
		t.Fatalf("unexpected simulation %+v", sim)
	}
	if sim.CostImpactK != 43 {
		t.Fatalf("expected cost impact 43, got %v", sim.CostImpactK)
	}
	if sim.CascadeTarget != "CSV Remediation" {
		t.Fatalf("expected cascade to CSV Remediation, got %q", sim.CascadeTarget)
	}
	if sim.AdjustedFinish != "2025-05-26" {
		t.Fatalf("adjusted finish = %q", sim.AdjustedFinish)
	}
	if !result.Tasks[0].Delayed || result.Tasks[1].Delayed {
		t.Fatal("only the simulated task should be marked delayed")
	}
}

func TestToJSONNoMatch(t *testing.T) {
	res := portfolio.Simulate(sampleSchedule(), "Unknown", 3)
	path := filepath.Join(t.TempDir(), "nomatch.json")
	if err := ToJSON(res, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)
	if result.Simulation.AdjustedFinish != "" {
		t.Fatal("adjusted finish should be omitted when nothing changed")
	}
	if result.Simulation.CostImpactK != 0 {
		t.Fatalf("expected zero cost impact, got %v", result.Simulation.CostImpactK)
	}
	if result.Simulation.Outcome != res.Outcome.String() {
		t.Fatalf("outcome = %q", result.Simulation.Outcome)
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(delayedResult(), "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	if err := ToJSON(delayedResult(), path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be pretty-printed with indentation")
	}
}

func TestToJSONExportedAtFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "time.json")
	if err := ToJSON(delayedResult(), path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at not RFC3339: %q", result.ExportedAt)
	}
}

// ============================================================
// Text export
// ============================================================

func TestToText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "briefing.txt")
	if err := ToText("Weekly briefing", path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "Weekly briefing\n" {
		t.Fatalf("got %q", string(data))
	}
}

func TestToTextEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := ToText("   \n", path); err == nil {
		t.Fatal("expected error for empty text")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("no file should be written for empty text")
	}
}

func TestPath(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	got := Path("/tmp/out", "schedule", "csv", now)
	if got != filepath.Join("/tmp/out", "schedule-2025-06-01.csv") {
		t.Fatalf("got %q", got)
	}
	if home := Path("", "briefing", "txt", now); !strings.HasSuffix(home, "briefing-2025-06-01.txt") {
		t.Fatalf("got %q", home)
	}
}
