// Package storage persists a JSON record of each completed sync so a run's
// reconciled output can be inspected after the fact. Records are
// best-effort; the calendar remains the system of record.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dojosync/internal/school"
)

// DefaultDataDir is where sync records are written.
const DefaultDataDir = "~/.local/share/dojosync"

// Storage handles persistence of sync records.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if
// needed. A leading ~/ is expanded to the user's home directory.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// Record is the reconciled output of one sync run.
type Record struct {
	SyncedAt    time.Time            `json:"synced_at"`
	Sessions    []*school.Session    `json:"sessions"`
	Instructors []*school.Instructor `json:"instructors"`
}

// NewRecord builds a record for the given reconciled output. The stamp is
// local wall-clock time; the record's filename is derived from it, so an
// evening run must still file under today's date.
func NewRecord(sessions []*school.Session, instructors []*school.Instructor) *Record {
	return &Record{
		SyncedAt:    time.Now(),
		Sessions:    sessions,
		Instructors: instructors,
	}
}

func (s *Storage) recordPath(day time.Time) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("sync_%s.json", day.Format("2006-01-02")))
}

// SaveRecord writes the record for its day, replacing any earlier record
// from the same day.
func (s *Storage) SaveRecord(record *Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sync record: %w", err)
	}

	if err := os.WriteFile(s.recordPath(record.SyncedAt), data, 0644); err != nil {
		return fmt.Errorf("writing sync record: %w", err)
	}
	return nil
}

// LoadRecord reads the record for the given day. A missing record returns
// nil without error.
func (s *Storage) LoadRecord(day time.Time) (*Record, error) {
	data, err := os.ReadFile(s.recordPath(day))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading sync record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing sync record: %w", err)
	}
	return &record, nil
}
