package content

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Snapshot file formats for export and import.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// EncodeSnapshot writes snap to w in the given format.
func EncodeSnapshot(w io.Writer, snap Snapshot, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(snap)
	default:
		return fmt.Errorf("content: unknown snapshot format %q", format)
	}
}

// DecodeSnapshot reads a snapshot from r. The catalog must satisfy the id
// invariant.
func DecodeSnapshot(r io.Reader, format string) (Snapshot, error) {
	var snap Snapshot
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&snap); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	default:
		return Snapshot{}, fmt.Errorf("content: unknown snapshot format %q", format)
	}
	if err := validateServices(snap.Services); err != nil {
		return Snapshot{}, err
	}
	if snap.Services == nil {
		snap.Services = []Service{}
	}
	return snap, nil
}
