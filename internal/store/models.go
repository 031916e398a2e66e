package store

// Setting keys.
const (
	KeySite      = "site"
	KeySeed      = "seed"
	KeyExportDir = "export_dir"
)

type Setting struct {
	Key   string
	Value string
}

// Config is the typed view of the settings table.
type Config struct {
	Site      string
	Seed      uint64
	ExportDir string
}
