package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/emergence/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the simulation state at one tick for offline inspection.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	RNGSeed int64  `json:"rng_seed"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Tick int32 `json:"tick"`

	// One string per row, one glyph per tile (see TerrainGlyph)
	Terrain []string `json:"terrain"`

	Organisms []OrganismState `json:"organisms"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// OrganismState holds one organism's state.
type OrganismState struct {
	ID   uint32                  `json:"id"`
	Kind components.OrganismKind `json:"kind"`
	X    int                     `json:"x"`
	Y    int                     `json:"y"`

	// Zero for units
	Mass float64 `json:"mass,omitempty"`

	Lifetime *LifetimeStats `json:"lifetime,omitempty"`
}

const terrainGlyphs = ".^#"

// TerrainGlyph returns the snapshot character for a terrain kind.
func TerrainGlyph(k components.TerrainKind) byte {
	if int(k) < len(terrainGlyphs) {
		return terrainGlyphs[k]
	}
	return '?'
}

// TerrainFromGlyph is the inverse of TerrainGlyph.
func TerrainFromGlyph(g byte) (components.TerrainKind, bool) {
	i := strings.IndexByte(terrainGlyphs, g)
	if i < 0 {
		return 0, false
	}
	return components.TerrainKind(i), true
}

// TerrainAt decodes the terrain kind of one tile.
func (s *Snapshot) TerrainAt(pos components.TilePos) (components.TerrainKind, bool) {
	if pos.Y < 0 || pos.Y >= len(s.Terrain) || pos.X < 0 || pos.X >= len(s.Terrain[pos.Y]) {
		return 0, false
	}
	return TerrainFromGlyph(s.Terrain[pos.Y][pos.X])
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
