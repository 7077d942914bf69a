// Package history provides append-only JSONL storage for transcription
// history. Simple single-user file storage: one JSON object per line.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// MaxEntries caps the history file; the oldest entries are dropped when
// the cap is exceeded.
const MaxEntries = 1000

// Record is a single transcription history entry.
type Record struct {
	ID              int64     `json:"id"`
	Text            string    `json:"text"`
	Raw             string    `json:"raw,omitempty"`
	Level           string    `json:"level,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	Language        string    `json:"language,omitempty"`
}

// Store is a mutex-guarded JSONL history file.
type Store struct {
	path   string
	mu     sync.Mutex
	nextID int64
}

// DefaultPath returns the default history file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.jsonl"
	}
	return filepath.Join(home, ".cleanspeak", "history.jsonl")
}

// Open creates or opens the history store at path. An empty path uses
// DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	s := &Store{path: path, nextID: 1}

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID >= s.nextID {
			s.nextID = r.ID + 1
		}
	}
	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Add appends a record and returns its assigned ID. The text must be
// non-empty after trimming.
func (s *Store) Add(rec Record) (int64, error) {
	rec.Text = strings.TrimSpace(rec.Text)
	if rec.Text == "" {
		return 0, fmt.Errorf("history: text cannot be empty")
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("encoding history record: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return 0, fmt.Errorf("appending history record: %w", err)
	}

	s.nextID++

	if err := s.trimLocked(); err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// List returns the most recent records, newest first, up to limit.
// A non-positive limit returns everything.
func (s *Store) List(limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	reverse(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Search returns records whose text contains query (case-insensitive),
// newest first, up to limit.
func (s *Store) Search(query string, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := records[:0]
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Text), needle) {
			matched = append(matched, r)
		}
	}
	reverse(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Clear removes all history.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, nil, 0o644); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	s.nextID = 1
	return nil
}

// readAll reads every record in file order. Corrupt lines are skipped
// rather than failing the whole read.
func (s *Store) readAll() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return records, nil
}

// trimLocked rewrites the file keeping only the newest MaxEntries.
// Caller holds the mutex.
func (s *Store) trimLocked() error {
	records, err := s.readAll()
	if err != nil {
		return err
	}
	if len(records) <= MaxEntries {
		return nil
	}

	keep := records[len(records)-MaxEntries:]
	var b strings.Builder
	for _, rec := range keep {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding history record: %w", err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}
	return nil
}

func reverse(records []Record) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}
