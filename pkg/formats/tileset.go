package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Tileset manifest errors.
var (
	ErrManifestNoBanks     = errors.New("tileset manifest lists no banks")
	ErrManifestTooManyBank = errors.New("tileset manifest lists more banks than set numbers")
	ErrManifestTileSize    = errors.New("tileset manifest tile size must be a positive even number")
)

// BankCount is the number of tileset bank slots: A1..A5 occupy set
// numbers 0..4, the simple banks B..E occupy 5..8.
const BankCount = 9

// Manifest describes one tileset: the square tile size, the per-bank
// image files in set number order, and the flag table file. Relative
// paths resolve against the manifest's directory.
type Manifest struct {
	Name     string   `yaml:"name"`
	TileSize int      `yaml:"tile_size"`
	Banks    []string `yaml:"banks"`
	FlagFile string   `yaml:"flags"`

	dir string
}

// ParseManifest parses a tileset manifest from YAML bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing tileset manifest: %w", err)
	}
	if m.TileSize == 0 {
		m.TileSize = 48
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseManifestFile parses a tileset manifest from disk, remembering the
// directory for path resolution.
func ParseManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tileset manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

func (m *Manifest) validate() error {
	if len(m.Banks) == 0 {
		return ErrManifestNoBanks
	}
	if len(m.Banks) > BankCount {
		return fmt.Errorf("%w: %d > %d", ErrManifestTooManyBank, len(m.Banks), BankCount)
	}
	if m.TileSize <= 0 || m.TileSize%2 != 0 {
		return fmt.Errorf("%w: %d", ErrManifestTileSize, m.TileSize)
	}
	return nil
}

// BankPath returns the resolved image path for a set number, or "" when
// the bank slot is empty.
func (m *Manifest) BankPath(set int) string {
	if set < 0 || set >= len(m.Banks) || m.Banks[set] == "" {
		return ""
	}
	return m.resolve(m.Banks[set])
}

// FlagPath returns the resolved flag table path, or "" when the manifest
// names none.
func (m *Manifest) FlagPath() string {
	if m.FlagFile == "" {
		return ""
	}
	return m.resolve(m.FlagFile)
}

func (m *Manifest) resolve(p string) string {
	if m.dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

// Encode serializes the manifest to YAML.
func (m *Manifest) Encode() ([]byte, error) {
	return yaml.Marshal(m)
}
