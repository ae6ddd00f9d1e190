// ABOUTME: JSONL command history with append-only writes
// ABOUTME: Reads line-by-line with bufio.Scanner; crash-safe via O_APPEND

package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Record is the envelope for one submitted pad line.
type Record struct {
	Version int    `json:"v"`
	TS      string `json:"ts"`
	Line    string `json:"line"`
	Effect  string `json:"effect,omitempty"`
}

// Appender appends records to a history JSONL file.
type Appender struct {
	file *os.File
}

// NewAppender opens the history file for appending, creating the parent
// directory if needed.
func NewAppender(path string) (*Appender, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening history file: %w", err)
	}

	return &Appender{file: f}, nil
}

// Append writes one record. Blank lines are dropped.
func (a *Appender) Append(line, effect string) error {
	if line == "" {
		return nil
	}

	rec := Record{
		Version: 1,
		TS:      time.Now().UTC().Format(time.RFC3339),
		Line:    line,
		Effect:  effect,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling history record: %w", err)
	}

	data = append(data, '\n')
	if _, err := a.file.Write(data); err != nil {
		return fmt.Errorf("writing history record: %w", err)
	}
	return nil
}

// Close closes the history file.
func (a *Appender) Close() error {
	return a.file.Close()
}

// Load reads records from a history file, keeping at most limit of the most
// recent entries (limit <= 0 means all). A missing file yields no records.
func Load(path string, limit int) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line

	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue // Skip malformed lines
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("scanning history: %w", err)
	}

	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	return records, nil
}

// Lines extracts the submitted lines from records, oldest first, collapsing
// consecutive duplicates.
func Lines(records []Record) []string {
	var lines []string
	for _, rec := range records {
		if rec.Line == "" {
			continue
		}
		if n := len(lines); n > 0 && lines[n-1] == rec.Line {
			continue
		}
		lines = append(lines, rec.Line)
	}
	return lines
}
