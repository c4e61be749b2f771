// Package detect decides which ecosystems a target directory contains.
package detect

import (
	"os"
	"path/filepath"

	"github.com/sprite-ai/revet/internal/model"
)

// Signal is the set of marker files found in a target directory's top
// level. Ecosystems are not mutually exclusive; a directory may match
// any combination, including none.
type Signal struct {
	Markers map[string]bool
}

// markersByEcosystem maps each ecosystem to the marker filenames whose
// presence activates it. Top-level only; contents are never parsed.
var markersByEcosystem = map[model.Ecosystem][]string{
	model.EcosystemJSTS:   {model.MarkerPackageJSON, model.MarkerTSConfig},
	model.EcosystemPython: {model.MarkerRequirements, model.MarkerPyProject, model.MarkerSetupPy},
	model.EcosystemRust:   {model.MarkerCargoToml},
}

// Scan checks the target directory for marker files. A missing or
// unreadable directory is not an error: it simply yields an empty
// signal, and downstream stages find nothing to do.
func Scan(targetDir string) Signal {
	sig := Signal{Markers: make(map[string]bool)}
	for _, markers := range markersByEcosystem {
		for _, m := range markers {
			if _, err := os.Stat(filepath.Join(targetDir, m)); err == nil {
				sig.Markers[m] = true
			}
		}
	}
	return sig
}

// Has reports whether a specific marker file was found.
func (s Signal) Has(marker string) bool {
	return s.Markers[marker]
}

// Active reports whether any marker for the given ecosystem was found.
func (s Signal) Active(eco model.Ecosystem) bool {
	for _, m := range markersByEcosystem[eco] {
		if s.Markers[m] {
			return true
		}
	}
	return false
}

// ActiveEcosystems returns the detected ecosystems in their fixed
// execution order, regardless of which marker was found first.
func (s Signal) ActiveEcosystems() []model.Ecosystem {
	var active []model.Ecosystem
	for _, eco := range model.AllEcosystems() {
		if s.Active(eco) {
			active = append(active, eco)
		}
	}
	return active
}
