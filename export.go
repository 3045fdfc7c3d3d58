package qsim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the encoding used by Export.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("export: %w: %q", ErrUnknownFormat, path)
}

// Export encodes the result to w.
func (r *Result) Export(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(r)
	}
	return fmt.Errorf("export: %w: %q", ErrUnknownFormat, format)
}

// ExportFile writes the result to path, choosing the encoding by extension.
func (r *Result) ExportFile(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := r.Export(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportResult decodes a result previously written by Export.
func ImportResult(rd io.Reader, format Format) (*Result, error) {
	var r Result

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(rd).Decode(&r); err != nil {
			return nil, fmt.Errorf("import: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
			return nil, fmt.Errorf("import: %w", err)
		}
	default:
		return nil, fmt.Errorf("import: %w: %q", ErrUnknownFormat, format)
	}

	return &r, nil
}
