package output

import (
	"bytes"
	"strings"
	"testing"
)

type record struct {
	ID   int    `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"json", "jsonl", "yaml"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONWriter_SingleRecord(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSON)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if err := w.Write(record{ID: 1, Text: "hello"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "[") {
		t.Errorf("single record should be a bare object, got %q", out)
	}
	if !strings.Contains(out, `"text": "hello"`) {
		t.Errorf("output missing field: %q", out)
	}
}

func TestJSONWriter_MultipleRecordsArray(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatJSON)

	_ = w.Write(record{ID: 1, Text: "one"})
	_ = w.Write(record{ID: 2, Text: "two"})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "[") || !strings.HasSuffix(out, "]") {
		t.Errorf("multiple records should be an array, got %q", out)
	}
}

func TestJSONLWriter_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatJSONL)

	_ = w.Write(record{ID: 1, Text: "one"})
	_ = w.Write(record{ID: 2, Text: "two"})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			t.Errorf("line is not a JSON object: %q", line)
		}
	}
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatYAML)

	_ = w.Write(record{ID: 1, Text: "hello"})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "text: hello") {
		t.Errorf("YAML output missing field: %q", out)
	}
}
