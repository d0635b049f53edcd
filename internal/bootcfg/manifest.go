// Package bootcfg loads the boot manifest: the YAML file naming which ELF
// images the daemon spawns at boot and any per-level quantum overrides.
//
// Grounded on tinyrange-cc's site-config loader (cmd/ccapp/site_config.go):
// the same "small yaml.v3 struct, read once before anything interesting
// starts" shape, trimmed of the site-config file's OS-permission and
// size-limit checks since the boot manifest ships inside the kernel image
// rather than sitting next to an installed binary an attacker could swap.
package bootcfg

import (
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ImageSpec names one ELF image the daemon loads at boot.
type ImageSpec struct {
	Name string   `yaml:"name"`
	Path string   `yaml:"path"`
	Args []string `yaml:"args"`
}

// Manifest is the boot-time configuration: a banner version plus the set
// of images the daemon starts, with optional per-level quantum overrides.
type Manifest struct {
	Version        string            `yaml:"version"`
	Images         []ImageSpec       `yaml:"images"`
	QuantumOverride map[string]uint64 `yaml:"quantum_override_ms"`
}

// Parse decodes a boot manifest from YAML bytes and validates it.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("bootcfg: parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Version == "" {
		return fmt.Errorf("bootcfg: manifest has no version")
	}
	v := m.Version
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("bootcfg: manifest version %q is not a valid semver", m.Version)
	}
	if len(m.Images) == 0 {
		return fmt.Errorf("bootcfg: manifest names no boot images")
	}
	seen := make(map[string]bool, len(m.Images))
	for _, img := range m.Images {
		if img.Name == "" || img.Path == "" {
			return fmt.Errorf("bootcfg: image entry missing name or path: %+v", img)
		}
		if seen[img.Name] {
			return fmt.Errorf("bootcfg: duplicate image name %q", img.Name)
		}
		seen[img.Name] = true
	}
	for level := range m.QuantumOverride {
		switch level {
		case "fcfs1", "fcfs2", "rr":
		default:
			return fmt.Errorf("bootcfg: unknown queue level %q in quantum_override_ms", level)
		}
	}
	return nil
}

// LoadFile reads and parses the boot manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bootcfg: read manifest: %w", err)
	}
	return Parse(data)
}

// QuantumFor returns the manifest's override for level, if any.
func (m *Manifest) QuantumFor(level string) (uint64, bool) {
	ms, ok := m.QuantumOverride[level]
	return ms, ok
}
