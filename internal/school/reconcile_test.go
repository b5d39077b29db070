package school

import (
	"testing"
	"time"
)

// at builds a time on a fixed day so start-time comparisons are exact.
func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
}

func TestCombineMergesEqualStartTimes(t *testing.T) {
	first := NewSession(at(9, 0))
	first.Students = []*Student{NewStudent("Ava", CurriculumCreate)}

	second := NewSession(at(10, 0))
	second.Students = []*Student{NewStudent("Ben", CurriculumCreate)}

	third := NewSession(at(9, 0))
	third.Students = []*Student{NewStudent("Cleo", CurriculumJR)}

	combined := Combine(first, second, third)

	if len(combined) != 2 {
		t.Fatalf("expected 2 combined sessions, got %d", len(combined))
	}

	if !combined[0].StartTime.Equal(at(9, 0)) {
		t.Errorf("expected first session at 9:00, got %v", combined[0].StartTime)
	}

	if got := combined[0].StudentNames(); len(got) != 2 || got[0] != "Ava" || got[1] != "Cleo" {
		t.Errorf("expected merged roster [Ava Cleo], got %v", got)
	}

	if got := combined[1].StudentNames(); len(got) != 1 || got[0] != "Ben" {
		t.Errorf("expected 10:00 roster [Ben], got %v", got)
	}
}

func TestCombinePreservesDistinctSessions(t *testing.T) {
	sessions := []*Session{
		NewSession(at(9, 0)),
		NewSession(at(10, 0)),
		NewSession(at(11, 0)),
	}

	combined := Combine(sessions...)

	if len(combined) != len(sessions) {
		t.Fatalf("expected %d sessions, got %d", len(sessions), len(combined))
	}
	for i, session := range combined {
		if !session.StartTime.Equal(sessions[i].StartTime) {
			t.Errorf("session %d: expected start %v, got %v", i, sessions[i].StartTime, session.StartTime)
		}
	}
}

func TestCombineDoesNotAliasInputs(t *testing.T) {
	original := NewSession(at(9, 0))
	original.Students = []*Student{NewStudent("Ava", CurriculumCreate)}

	duplicate := NewSession(at(9, 0))
	duplicate.Students = []*Student{NewStudent("Ben", CurriculumCreate)}

	combined := Combine(original, duplicate)

	if len(original.Students) != 1 {
		t.Errorf("input session was mutated by Combine: %v", original.StudentNames())
	}
	if len(combined[0].Students) != 2 {
		t.Errorf("expected combined roster of 2, got %v", combined[0].StudentNames())
	}
}

func TestAssignInstructorsOverlap(t *testing.T) {
	tests := []struct {
		name       string
		shiftStart time.Time
		shiftEnd   time.Time
		assigned   bool
	}{
		{
			name:       "shift spans session",
			shiftStart: at(9, 0),
			shiftEnd:   at(13, 0),
			assigned:   true,
		},
		{
			name:       "shift ends at session start",
			shiftStart: at(8, 0),
			shiftEnd:   at(9, 30),
			assigned:   false,
		},
		{
			name:       "shift starts at session end",
			shiftStart: at(10, 30),
			shiftEnd:   at(14, 0),
			assigned:   false,
		},
		{
			name:       "shift overlaps session tail",
			shiftStart: at(10, 0),
			shiftEnd:   at(12, 0),
			assigned:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := NewSession(at(9, 30)) // ends 10:30
			instructor := NewInstructor("Morgan", tt.shiftStart, tt.shiftEnd)

			AssignInstructors([]*Session{session}, []*Instructor{instructor})

			if got := len(session.Instructors) == 1; got != tt.assigned {
				t.Errorf("expected assigned=%v, got instructors %v", tt.assigned, session.InstructorNames())
			}
		})
	}
}

func TestAssignInstructorsIdempotent(t *testing.T) {
	session := NewSession(at(9, 0))
	instructors := []*Instructor{
		NewInstructor("Morgan", at(8, 0), at(12, 0)),
		NewInstructor("Riley", at(9, 30), at(13, 0)),
	}

	AssignInstructors([]*Session{session}, instructors)
	AssignInstructors([]*Session{session}, instructors)

	if len(session.Instructors) != 2 {
		t.Fatalf("expected 2 instructors after repeated assignment, got %v", session.InstructorNames())
	}
	if session.Instructors[0].Name != "Morgan" || session.Instructors[1].Name != "Riley" {
		t.Errorf("expected input order preserved, got %v", session.InstructorNames())
	}
}
