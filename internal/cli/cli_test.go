package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"dojosync/internal/config"
	"dojosync/internal/school"
	"dojosync/internal/storage"
)

func TestRootCmdFlagDefaults(t *testing.T) {
	cmd := NewRootCmd()

	tests := []struct {
		flag string
		want string
	}{
		{"headless", "true"},
		{"keep-browser-open", "false"},
		{"remote-browser", "false"},
		{"settings", config.DefaultPath},
		{"verbose", "false"},
	}

	for _, tt := range tests {
		f := cmd.Flags().Lookup(tt.flag)
		if f == nil {
			t.Errorf("flag --%s not registered", tt.flag)
			continue
		}
		if f.DefValue != tt.want {
			t.Errorf("flag --%s default = %q, want %q", tt.flag, f.DefValue, tt.want)
		}
	}
}

func TestRunBootstrapsSettingsTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--settings", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected template bootstrap to succeed, got %v", err)
	}

	if !config.Exists(path) {
		t.Fatal("expected settings template to be written")
	}
	settings, err := config.Load(path)
	if err != nil {
		t.Fatalf("loading written template: %v", err)
	}
	if settings.GoogleAPI.CalendarID != "primary" {
		t.Errorf("template calendar ID = %q, want %q", settings.GoogleAPI.CalendarID, "primary")
	}
}

func TestSaveRecordWritesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	orig := flagDataDir
	t.Cleanup(func() { flagDataDir = orig })
	flagDataDir = dir

	session := school.NewSession(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local))
	session.Students = []*school.Student{school.NewStudent("Ava", school.CurriculumCreate)}

	saveRecord([]*school.Session{session}, nil, zerolog.Nop())

	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	record, err := store.LoadRecord(time.Now())
	if err != nil {
		t.Fatalf("LoadRecord: %v", err)
	}
	if record == nil {
		t.Fatal("expected a sync record for today")
	}
	if len(record.Sessions) != 1 || record.Sessions[0].Students[0].Name != "Ava" {
		t.Errorf("unexpected record contents: %+v", record.Sessions)
	}

	// A second run the same day replaces the record rather than failing.
	saveRecord(nil, nil, zerolog.Nop())
	record, err = store.LoadRecord(time.Now())
	if err != nil {
		t.Fatalf("LoadRecord after replace: %v", err)
	}
	if record == nil || len(record.Sessions) != 0 {
		t.Errorf("expected the replacement record, got %+v", record)
	}
}
