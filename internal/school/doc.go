// Package school holds the domain model for class sessions, students, and
// instructors, plus the reconciliation pass that merges per-source session
// lists and assigns instructors by shift overlap.
package school
