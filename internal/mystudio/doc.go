// Package mystudio scrapes today's CREATE and JR class rosters from the
// MyStudio web portal through a browser session, retrying the full scrape
// on timeout-class failures.
package mystudio
