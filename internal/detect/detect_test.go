package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sprite-ai/revet/internal/model"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanEmptyDir(t *testing.T) {
	sig := Scan(t.TempDir())
	if got := sig.ActiveEcosystems(); len(got) != 0 {
		t.Errorf("expected no ecosystems, got %v", got)
	}
}

func TestScanMissingDir(t *testing.T) {
	sig := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if got := sig.ActiveEcosystems(); len(got) != 0 {
		t.Errorf("missing dir should yield zero matches, got %v", got)
	}
}

func TestScanSingleMarkers(t *testing.T) {
	tests := []struct {
		marker string
		eco    model.Ecosystem
	}{
		{model.MarkerPackageJSON, model.EcosystemJSTS},
		{model.MarkerTSConfig, model.EcosystemJSTS},
		{model.MarkerRequirements, model.EcosystemPython},
		{model.MarkerPyProject, model.EcosystemPython},
		{model.MarkerSetupPy, model.EcosystemPython},
		{model.MarkerCargoToml, model.EcosystemRust},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.marker)

			sig := Scan(dir)
			if !sig.Has(tt.marker) {
				t.Errorf("marker %s not found", tt.marker)
			}
			if !sig.Active(tt.eco) {
				t.Errorf("%s should activate %s", tt.marker, tt.eco)
			}
			if got := sig.ActiveEcosystems(); len(got) != 1 || got[0] != tt.eco {
				t.Errorf("expected exactly [%s], got %v", tt.eco, got)
			}
		})
	}
}

func TestScanMultipleEcosystems(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, model.MarkerPackageJSON)
	touch(t, dir, model.MarkerRequirements)
	touch(t, dir, model.MarkerCargoToml)

	sig := Scan(dir)
	got := sig.ActiveEcosystems()
	want := []model.Ecosystem{model.EcosystemJSTS, model.EcosystemPython, model.EcosystemRust}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestTwoPythonMarkersActivateOnce(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, model.MarkerRequirements)
	touch(t, dir, model.MarkerPyProject)

	sig := Scan(dir)
	got := sig.ActiveEcosystems()
	if len(got) != 1 || got[0] != model.EcosystemPython {
		t.Errorf("two python markers should yield python exactly once, got %v", got)
	}
}

func TestScanTopLevelOnly(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sub")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, nested, model.MarkerCargoToml)

	sig := Scan(dir)
	if sig.Active(model.EcosystemRust) {
		t.Error("nested marker should not activate an ecosystem")
	}
}
