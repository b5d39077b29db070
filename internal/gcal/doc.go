// Package gcal publishes merged class sessions to Google Calendar: one
// event per session, titled with the class headcounts and described by the
// instructor and student group breakdown.
package gcal
