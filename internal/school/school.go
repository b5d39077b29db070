package school

import "time"

// Curriculum identifies which program a student is enrolled in.
type Curriculum string

const (
	CurriculumCreate Curriculum = "CREATE"
	CurriculumJR     Curriculum = "JR"
)

// Student is a single enrolled student.
type Student struct {
	Name       string     `json:"name"`
	Curriculum Curriculum `json:"curriculum"`
}

// NewStudent creates a student in the given curriculum.
func NewStudent(name string, curriculum Curriculum) *Student {
	return &Student{
		Name:       name,
		Curriculum: curriculum,
	}
}

// Instructor is a staff member with a shift interval. Shift times are
// anchored to today's date so they compare directly against session times.
type Instructor struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// NewInstructor creates an instructor with the given shift interval.
func NewInstructor(name string, start, end time.Time) *Instructor {
	return &Instructor{
		Name:      name,
		StartTime: start,
		EndTime:   end,
	}
}

// Session is one scheduled time block with its student roster and the
// instructors covering it.
type Session struct {
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Students    []*Student    `json:"students"`
	Instructors []*Instructor `json:"instructors"`
}

// NewSession creates an empty session starting at the given time. The end
// time defaults to one hour after the start.
func NewSession(start time.Time) *Session {
	return &Session{
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}
}

// StudentNames returns the names of all students in the session.
func (s *Session) StudentNames() []string {
	names := make([]string, 0, len(s.Students))
	for _, student := range s.Students {
		names = append(names, student.Name)
	}
	return names
}

// InstructorNames returns the names of all instructors covering the session.
func (s *Session) InstructorNames() []string {
	names := make([]string, 0, len(s.Instructors))
	for _, instructor := range s.Instructors {
		names = append(names, instructor.Name)
	}
	return names
}

// CreateStudents returns the students enrolled in the CREATE curriculum.
func (s *Session) CreateStudents() []*Student {
	return s.studentsIn(CurriculumCreate)
}

// JRStudents returns the students enrolled in the JR curriculum.
func (s *Session) JRStudents() []*Student {
	return s.studentsIn(CurriculumJR)
}

func (s *Session) studentsIn(curriculum Curriculum) []*Student {
	matched := make([]*Student, 0)
	for _, student := range s.Students {
		if student.Curriculum == curriculum {
			matched = append(matched, student)
		}
	}
	return matched
}

// UnityStudents returns the students whose names appear in the Unity group.
func (s *Session) UnityStudents(unityNames []string) []*Student {
	return s.studentsNamed(unityNames)
}

// FocusStudents returns the students whose names appear in the Focus group.
func (s *Session) FocusStudents(focusNames []string) []*Student {
	return s.studentsNamed(focusNames)
}

func (s *Session) studentsNamed(names []string) []*Student {
	matched := make([]*Student, 0)
	for _, student := range s.Students {
		for _, name := range names {
			if student.Name == name {
				matched = append(matched, student)
				break
			}
		}
	}
	return matched
}

// IsScheduled reports whether the instructor's shift overlaps this session.
// Shifts that only touch a session boundary do not count as covering it.
func (s *Session) IsScheduled(instructor *Instructor) bool {
	return instructor.StartTime.Before(s.EndTime) && instructor.EndTime.After(s.StartTime)
}

// HasInstructor reports whether the instructor is already assigned to this
// session.
func (s *Session) HasInstructor(instructor *Instructor) bool {
	for _, assigned := range s.Instructors {
		if assigned == instructor {
			return true
		}
	}
	return false
}

// FromTime returns the first session with exactly the given start time, or
// nil if none matches.
func FromTime(sessions []*Session, start time.Time) *Session {
	for _, session := range sessions {
		if session.StartTime.Equal(start) {
			return session
		}
	}
	return nil
}
