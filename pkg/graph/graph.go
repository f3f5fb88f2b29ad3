package graph

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
	"github.com/matzehuels/cloudgraph/pkg/errors"
)

// Diagram source formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// DetectFormat returns the diagram format implied by a file name.
// Files ending in .toml are TOML; everything else is JSON.
func DetectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// =============================================================================
// Diagram Serialization API
// =============================================================================

// MarshalDiagram converts a diagram to indented JSON bytes.
func MarshalDiagram(d *diagram.Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDiagram(d, &buf, FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDiagram decodes diagram bytes in the given format.
func UnmarshalDiagram(data []byte, format string) (*diagram.Diagram, error) {
	return ReadDiagram(bytes.NewReader(data), format)
}

// WriteDiagram writes a diagram to w in the given format.
func WriteDiagram(d *diagram.Diagram, w io.Writer, format string) error {
	g := FromDiagram(d)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(g); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported diagram format %q", format)
	}
	return nil
}

// WriteDiagramFile writes a diagram to path, picking the format from the
// extension. The file is created with 0644 permissions.
func WriteDiagramFile(d *diagram.Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDiagram(d, f, DetectFormat(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadDiagram decodes a diagram from r. Syntax errors yield INVALID_FORMAT;
// model violations keep the code reported by the diagram package.
func ReadDiagram(r io.Reader, format string) (*diagram.Diagram, error) {
	var g Graph
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&g); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json diagram")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&g)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml diagram")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q in toml diagram", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported diagram format %q", format)
	}
	return ToDiagram(g)
}

// ReadDiagramFile reads a diagram file, picking the format from the
// extension. A missing file yields FILE_NOT_FOUND.
func ReadDiagramFile(path string) (*diagram.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "diagram %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDiagram(f, DetectFormat(path))
}
