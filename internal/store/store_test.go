package store

import (
	"testing"
	"time"

	"github.com/sadopc/cockpit/internal/portfolio"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTasks() portfolio.Tasks {
	d := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return portfolio.Tasks{
		{Name: "LIMS v3 Upgrade", Site: portfolio.SiteSanDiego, Start: d, Finish: d.AddDate(0, 0, 70), WeeklyCost: 21.5, Status: portfolio.StatusOnTrack},
		{Name: "CSV Remediation", Site: portfolio.SiteSanDiego, Start: d.AddDate(0, 0, 70), Finish: d.AddDate(0, 0, 140), WeeklyCost: 8, Dependency: "LIMS v3 Upgrade", Status: portfolio.StatusNotStarted},
		{Name: "AI Platform", Site: portfolio.SiteSeattle, Start: d, Finish: d.AddDate(0, 0, 210), WeeklyCost: 40, Status: portfolio.StatusAtRisk},
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/cockpit.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ReplacePortfolio(sampleTasks()); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migration is not re-run.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	n, err := s2.CountPortfolio()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 tasks after reopen, got %d", n)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestMigrationV2DropsMaxDelayRow(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES ('max_delay_weeks', '12')`); err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.Exec("PRAGMA user_version = 1"); err != nil {
		t.Fatal(err)
	}

	if err := s.migrate(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetSetting("max_delay_weeks"); err == nil {
		t.Fatal("max_delay_weeks should be removed by the v2 migration")
	}
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != currentVersion {
		t.Fatalf("user_version = %d, want %d", version, currentVersion)
	}
}

// ============================================================
// Portfolio
// ============================================================

func TestReplaceAndListPortfolio(t *testing.T) {
	s := newTestStore(t)
	want := sampleTasks()

	if err := s.ReplacePortfolio(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.ListPortfolio()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Name != w.Name || g.Site != w.Site || g.Dependency != w.Dependency || g.Status != w.Status {
			t.Fatalf("row %d: got %+v, want %+v", i, g, w)
		}
		if !g.Start.Equal(w.Start) || !g.Finish.Equal(w.Finish) {
			t.Fatalf("row %d: dates differ: %v-%v vs %v-%v", i, g.Start, g.Finish, w.Start, w.Finish)
		}
		if g.WeeklyCost != w.WeeklyCost {
			t.Fatalf("row %d: cost %v, want %v", i, g.WeeklyCost, w.WeeklyCost)
		}
	}
}

func TestReplacePortfolioOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.ReplacePortfolio(sampleTasks()); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplacePortfolio(sampleTasks()[:1]); err != nil {
		t.Fatal(err)
	}
	n, _ := s.CountPortfolio()
	if n != 1 {
		t.Fatalf("expected 1 task, got %d", n)
	}
}

func TestReplacePortfolioRejectsInvalidRow(t *testing.T) {
	s := newTestStore(t)
	if err := s.ReplacePortfolio(sampleTasks()); err != nil {
		t.Fatal(err)
	}

	bad := sampleTasks()
	bad[2].WeeklyCost = -1
	if err := s.ReplacePortfolio(bad); err == nil {
		t.Fatal("expected error for negative weekly cost")
	}

	// The failed replace must roll back.
	n, _ := s.CountPortfolio()
	if n != 3 {
		t.Fatalf("expected original 3 tasks after rollback, got %d", n)
	}
}

func TestListPortfolioEmpty(t *testing.T) {
	s := newTestStore(t)
	got, err := s.ListPortfolio()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettings(t *testing.T) {
	s := newTestStore(t)
	cfg, err := s.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Site != string(portfolio.SiteAll) {
		t.Fatalf("site = %q", cfg.Site)
	}
	if cfg.Seed != 42 {
		t.Fatalf("seed = %d", cfg.Seed)
	}
	if cfg.ExportDir != "" {
		t.Fatalf("export_dir = %q", cfg.ExportDir)
	}
}

func TestSetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(KeySite, "Seattle"); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetSetting(KeySite)
	if err != nil {
		t.Fatal(err)
	}
	if v != "Seattle" {
		t.Fatalf("site = %q, want Seattle", v)
	}
}

func TestSetSettingValidation(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(KeySeed, "abc"); err == nil {
		t.Fatal("expected error for non-numeric seed")
	}
	if err := s.SetSetting(KeySeed, "7"); err != nil {
		t.Fatal(err)
	}
	cfg, _ := s.Config()
	if cfg.Seed != 7 {
		t.Fatalf("seed = %d, want 7", cfg.Seed)
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("nope"); err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 settings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key > all[i].Key {
			t.Fatal("settings should be sorted by key")
		}
	}
}
