package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies an output encoding.
type Format string

const (
	// FormatTable renders a human-readable comparison table. This is the
	// default for interactive use.
	FormatTable Format = "table"

	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"

	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"

	// FormatCSV renders comma-separated offering rows with a header line.
	FormatCSV Format = "csv"
)

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV:
		return false
	}
	return true
}

// SupportedFormats returns the supported format names for help text.
func SupportedFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatYAML), string(FormatCSV)}
}

// Serializer writes structured data to a destination in a fixed format.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by serializers that hold a resource, such as an
// open output file. Stdout-backed writers implement it as a no-op.
type Closer interface {
	Close() error
}

// Writer serializes data to an io.Writer in a chosen Format.
type Writer struct {
	format Format
	out    io.Writer
	closer io.Closer
}

// NewWriter creates a Writer for the given format and destination.
// Unknown formats fall back to the table format; a nil output defaults
// to stdout.
func NewWriter(format Format, out io.Writer) *Writer {
	if format.IsUnknown() {
		format = FormatTable
	}
	if out == nil {
		out = os.Stdout
	}
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a Writer that writes to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a Writer for the given destination path.
// An empty path or StdoutURI selects stdout. The returned Serializer
// implements Closer; callers should close it to flush file output.
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize encodes data to the writer's destination. For the table and
// csv formats, offering slices get the domain-specific rendering; other
// values fall back to a generic key/value table (csv rejects them).
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatJSON:
		return w.serializeJSON(data)
	case FormatYAML:
		return w.serializeYAML(data)
	case FormatCSV:
		return w.serializeCSV(data)
	default:
		return w.serializeTable(data)
	}
}

// Close releases the underlying destination if the writer owns one.
// Closing a stdout-backed writer is a no-op and always safe.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	c := w.closer
	w.closer = nil
	return c.Close()
}

func (w *Writer) serializeJSON(data any) error {
	j, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize to json: %w", err)
	}
	_, err = fmt.Fprintln(w.out, string(j))
	return err
}

func (w *Writer) serializeYAML(data any) error {
	y, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize to yaml: %w", err)
	}
	_, err = w.out.Write(y)
	return err
}
