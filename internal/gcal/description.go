package gcal

import (
	"fmt"
	"strings"

	"dojosync/internal/school"
)

// clockLayout matches the portal's event labels: zero-padded 12-hour clock
// with an uppercase period, e.g. "01:30PM".
const clockLayout = "03:04PM"

// Summary builds the event title: start time plus the CREATE and JR
// headcounts, e.g. "01:00PM - 5 | 3".
func Summary(session *school.Session) string {
	return fmt.Sprintf("%s - %d | %d",
		session.StartTime.Format(clockLayout),
		len(session.CreateStudents()),
		len(session.JRStudents()))
}

// BuildDescription builds the event body: a Sensei block with shift ranges,
// then the Unity, JR, and Focus groups, then the IMPACT block holding every
// CREATE student not already in Unity or Focus. Empty groups are omitted
// except IMPACT, which is always present. Roster order is preserved
// throughout.
func BuildDescription(session *school.Session, unityNames, focusNames []string) string {
	var b strings.Builder

	if len(session.Instructors) > 0 {
		details := make([]string, 0, len(session.Instructors))
		for _, instructor := range session.Instructors {
			details = append(details, fmt.Sprintf("%s (%s - %s)",
				instructor.Name,
				instructor.StartTime.Format(clockLayout),
				instructor.EndTime.Format(clockLayout)))
		}
		b.WriteString("Sensei:\n")
		b.WriteString(strings.Join(details, "\n"))
		b.WriteString("\n\n")
	}

	unity := session.UnityStudents(unityNames)
	writeGroup(&b, "Unity", unity)
	writeGroup(&b, "JR", session.JRStudents())
	focus := session.FocusStudents(focusNames)
	writeGroup(&b, "Focus", focus)

	excluded := make(map[*school.Student]bool, len(unity)+len(focus))
	for _, student := range unity {
		excluded[student] = true
	}
	for _, student := range focus {
		excluded[student] = true
	}

	impact := make([]string, 0)
	for _, student := range session.CreateStudents() {
		if !excluded[student] {
			impact = append(impact, student.Name)
		}
	}
	b.WriteString("IMPACT:\n")
	b.WriteString(strings.Join(impact, "\n"))

	return b.String()
}

func writeGroup(b *strings.Builder, title string, students []*school.Student) {
	if len(students) == 0 {
		return
	}
	names := make([]string, 0, len(students))
	for _, student := range students {
		names = append(names, student.Name)
	}
	b.WriteString(title)
	b.WriteString(":\n")
	b.WriteString(strings.Join(names, "\n"))
	b.WriteString("\n\n")
}
