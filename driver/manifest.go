package driver

import (
	"github.com/ezrec/starjconf/asm"
)

// ManifestEntry describes one written fixture.
type ManifestEntry struct {
	Fixture    string   `yaml:"fixture"`
	File       string   `yaml:"file"`
	Covers     []string `yaml:"covers"`
	Oracle     bool     `yaml:"oracle"`
	Statements int      `yaml:"statements"`
	Checks     int      `yaml:"checks"`
}

// Manifest indexes a fixture set.
type Manifest struct {
	Fixtures []ManifestEntry `yaml:"fixtures"`
}

// NewManifestEntry summarises a built fixture.
func NewManifestEntry(job Job, file string, prog *asm.Program) ManifestEntry {
	executable := 0
	for _, st := range prog.Statements {
		if st.Executable() {
			executable++
		}
	}
	return ManifestEntry{
		Fixture:    prog.Name,
		File:       file,
		Covers:     job.Covers,
		Oracle:     job.Oracle,
		Statements: executable,
		Checks:     prog.Count("failnez"),
	}
}
