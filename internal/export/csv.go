package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/cockpit/internal/portfolio"
)

const dateLayout = "2006-01-02"

// ToCSV writes the simulated schedule, one row per task.
func ToCSV(res portfolio.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Task", "Site", "Start", "Finish", "Weeks", "Weekly Cost ($k)", "Dependency", "Status", "Delayed"}); err != nil {
		return err
	}

	for _, t := range res.Schedule {
		row := []string{
			t.Name,
			string(t.Site),
			t.Start.Format(dateLayout),
			t.Finish.Format(dateLayout),
			formatWeeks(t.Finish.Sub(t.Start)),
			strconv.FormatFloat(t.WeeklyCost, 'f', -1, 64),
			t.Dependency,
			string(t.Status),
			strconv.FormatBool(delayed(res, t)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func delayed(res portfolio.Result, t portfolio.Task) bool {
	return res.Changed() && t.Name == res.Task
}

func formatWeeks(d time.Duration) string {
	return strconv.FormatFloat(d.Hours()/(24*7), 'f', 1, 64)
}
