package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ToText writes a generated report as plain text.
func ToText(text, path string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("nothing to export")
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write text file: %w", err)
	}
	return nil
}

// Path builds a dated export file name in dir, falling back to the home
// directory when dir is empty.
func Path(dir, name, ext string, now time.Time) string {
	if dir == "" {
		dir, _ = os.UserHomeDir()
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", name, now.Format("2006-01-02"), ext))
}
