// Package output serializes records for the CLI: JSON, JSONL, or YAML.
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatJSONL, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (available: json, jsonl, yaml)", s)
	}
}

// Writer handles output serialization.
type Writer interface {
	// Write buffers or outputs a single record.
	Write(data any) error

	// Flush ensures all buffered data is written.
	Flush() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return &jsonWriter{w: bufio.NewWriter(w)}, nil
	case FormatJSONL:
		return &jsonlWriter{w: bufio.NewWriter(w)}, nil
	case FormatYAML:
		return &yamlWriter{w: bufio.NewWriter(w)}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// jsonWriter buffers records and flushes them as one indented JSON
// document: a bare object for a single record, an array otherwise.
type jsonWriter struct {
	w     *bufio.Writer
	items []any
}

func (w *jsonWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *jsonWriter) Flush() error {
	var out []byte
	var err error
	if len(w.items) == 1 {
		out, err = json.MarshalIndent(w.items[0], "", "  ")
	} else {
		out, err = json.MarshalIndent(w.items, "", "  ")
	}
	if err != nil {
		return err
	}
	if _, err := w.w.Write(append(out, '\n')); err != nil {
		return err
	}
	return w.w.Flush()
}

// jsonlWriter writes newline-delimited JSON, one record per line.
type jsonlWriter struct {
	w *bufio.Writer
}

func (w *jsonlWriter) Write(data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(append(out, '\n')); err != nil {
		return err
	}
	return nil
}

func (w *jsonlWriter) Flush() error {
	return w.w.Flush()
}

// yamlWriter buffers records and flushes them as a YAML document.
type yamlWriter struct {
	w     *bufio.Writer
	items []any
}

func (w *yamlWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *yamlWriter) Flush() error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)

	var err error
	if len(w.items) == 1 {
		err = enc.Encode(w.items[0])
	} else {
		err = enc.Encode(w.items)
	}
	if err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return w.w.Flush()
}
