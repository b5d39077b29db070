package school

// Combine merges sessions that share an exact start time. The result keeps
// first-occurrence order; on a collision the later session's students and
// instructors are appended to the existing one, duplicates and all. The
// returned sessions are fresh values so the inputs are never aliased by
// later merge passes.
func Combine(sessions ...*Session) []*Session {
	combined := make([]*Session, 0, len(sessions))
	for _, session := range sessions {
		existing := FromTime(combined, session.StartTime)
		if existing != nil {
			existing.Students = append(existing.Students, session.Students...)
			existing.Instructors = append(existing.Instructors, session.Instructors...)
			continue
		}
		combined = append(combined, &Session{
			StartTime:   session.StartTime,
			EndTime:     session.EndTime,
			Students:    append([]*Student(nil), session.Students...),
			Instructors: append([]*Instructor(nil), session.Instructors...),
		})
	}
	return combined
}

// AssignInstructors adds each instructor to every session its shift
// overlaps. Assignment follows the input instructor order and never adds
// the same instructor to a session twice, so running it again is a no-op.
func AssignInstructors(sessions []*Session, instructors []*Instructor) {
	for _, session := range sessions {
		for _, instructor := range instructors {
			if session.IsScheduled(instructor) && !session.HasInstructor(instructor) {
				session.Instructors = append(session.Instructors, instructor)
			}
		}
	}
}
