package fs

import (
	"context"
	"io"
	"os"

	"github.com/fwojciec/instrmap"
)

// Ensure MapFile implements instrmap.MapStore at compile time.
var _ instrmap.MapStore = (*MapFile)(nil)

// MapFile writes an InstructionMap to a CSV or XML file with atomic replace
// semantics. The map is written to path+".tmp" and renamed over path, so an
// existing file is overwritten but never left truncated.
type MapFile struct {
	path   string
	format ValueFormat
}

// NewMapFile creates a new MapFile writing to path in the given format.
func NewMapFile(path string, format ValueFormat) *MapFile {
	return &MapFile{path: path, format: format}
}

// Path returns the output file path.
func (f *MapFile) Path() string {
	return f.path
}

func (f *MapFile) write(w io.Writer, m *instrmap.InstructionMap) error {
	if f.format == FormatXML {
		return WriteXML(w, m)
	}
	return WriteCSV(w, m, f.format)
}

func (f *MapFile) tempPath() string {
	return f.path + ".tmp"
}

// SaveMap writes m to the output file, replacing any existing file.
func (f *MapFile) SaveMap(ctx context.Context, m *instrmap.InstructionMap) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.Create(f.tempPath())
	if err != nil {
		return err
	}

	if err := f.write(tmp, m); err != nil {
		tmp.Close()
		_ = os.Remove(f.tempPath())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(f.tempPath())
		return err
	}

	if err := os.Rename(f.tempPath(), f.path); err != nil {
		_ = os.Remove(f.tempPath())
		return err
	}
	return nil
}
