package bootcfg

import (
	"os"
	"path/filepath"
	"testing"
)

const validManifest = `
version: "1.2.0"
images:
  - name: init
    path: /bin/init
  - name: rush
    path: /bin/rush
    args: ["-i"]
quantum_override_ms:
  fcfs1: 5
`

func TestParseValidManifest(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Images) != 2 {
		t.Fatalf("len(Images) = %d, want 2", len(m.Images))
	}
	if m.Images[0].Name != "init" || m.Images[0].Path != "/bin/init" {
		t.Fatalf("Images[0] = %+v", m.Images[0])
	}
	if got, ok := m.QuantumFor("fcfs1"); !ok || got != 5 {
		t.Fatalf("QuantumFor(fcfs1) = (%d, %v), want (5, true)", got, ok)
	}
	if _, ok := m.QuantumFor("rr"); ok {
		t.Fatal("QuantumFor(rr) should report no override")
	}
}

func TestParseRejectsMissingVersion(t *testing.T) {
	_, err := Parse([]byte("images:\n  - name: init\n    path: /bin/init\n"))
	if err == nil {
		t.Fatal("expected an error for a missing version")
	}
}

func TestParseRejectsBadSemver(t *testing.T) {
	_, err := Parse([]byte("version: not-a-version\nimages:\n  - name: init\n    path: /bin/init\n"))
	if err == nil {
		t.Fatal("expected an error for an invalid semver version")
	}
}

func TestParseAcceptsVersionWithoutLeadingV(t *testing.T) {
	m, err := Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Version != "1.2.0" {
		t.Fatalf("Version = %q, want %q (stored without a synthesised leading v)", m.Version, "1.2.0")
	}
}

func TestParseRejectsNoImages(t *testing.T) {
	_, err := Parse([]byte(`version: "1.0.0"` + "\n"))
	if err == nil {
		t.Fatal("expected an error for a manifest naming no images")
	}
}

func TestParseRejectsDuplicateImageName(t *testing.T) {
	_, err := Parse([]byte(`
version: "1.0.0"
images:
  - name: init
    path: /bin/a
  - name: init
    path: /bin/b
`))
	if err == nil {
		t.Fatal("expected an error for a duplicate image name")
	}
}

func TestParseRejectsUnknownQuantumLevel(t *testing.T) {
	_, err := Parse([]byte(`
version: "1.0.0"
images:
  - name: init
    path: /bin/init
quantum_override_ms:
  turbo: 1
`))
	if err == nil {
		t.Fatal("expected an error for an unknown queue level")
	}
}

func TestLoadFileReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.yaml")
	if err := os.WriteFile(path, []byte(validManifest), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(m.Images) != 2 {
		t.Fatalf("len(Images) = %d, want 2", len(m.Images))
	}
}

func TestLoadFileMissingFails(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing manifest file")
	}
}
