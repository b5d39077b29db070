package mystudio

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"dojosync/internal/browser"
	"dojosync/internal/config"
	"dojosync/internal/school"
)

const (
	// LoginURL is the MyStudio web portal login page.
	LoginURL = "https://cn.mystudio.io/v43/WebPortal/#/login"

	// DefaultAttempts is how many times the scrape is tried end to end
	// before a timeout is propagated.
	DefaultAttempts = 3
)

// Portal selectors. The page is an Angular app with generated markup, so
// these are positional and break when the portal changes.
const (
	selLoginEmail    = "#login_email"
	selLoginPassword = "#login_password"
	selLoginButton   = "#tooltipBgHide > div.height_auto.ng-scope > div.bg-white.height-full-vh.cont_flex.ng-scope > div > " +
		"div > div > div > div:nth-child(2) > center > button"

	// Interacting with the submenu before the dashboard finishes loading
	// redirects the browser back to the dashboard, so the scrape waits for
	// this loading indicator to clear first.
	selLoadingSpinner = "#monthly > tbody > tr.ng-scope.parent > td:nth-child(3) > center[ng-show='sales_loading']"

	selOperationsMenu  = "#operations > a > span"
	selClassCalendar   = "#sub_menu_class_appt_cal"
	selCreateDropdown  = "#i-s-container > div > div:nth-child(1) > div:nth-child(2) > div > div > div.sheduled_child_list"
	selJRDropdown      = "#i-s-container > div > div:nth-child(1) > div:nth-child(3) > div > div > div.sheduled_child_list"
	selClassDropdown   = "#class_datatable_view > div > div:nth-child(5) > div:nth-child(2) > div"
	selRosterTableBody = "#DataTables_Table_class_scheduler > tbody"
	selBackToOverview  = "#class_datatable_view > div > span"
)

// scrapeOnce runs one full scrape pass in a fresh browser session. It is a
// variable so retry behavior can be exercised without a live browser.
var scrapeOnce = readOnce

// retryInterval is the pause between scrape attempts.
var retryInterval = time.Second

// Read scrapes today's CREATE and JR class rosters from the MyStudio
// portal. A timeout-class failure restarts the whole scrape from login, up
// to the attempt budget; any other failure is permanent.
func Read(ctx context.Context, creds config.Credentials, opts browser.Options, attempts uint64, log zerolog.Logger) ([]*school.Session, []*school.Session, error) {
	if attempts == 0 {
		attempts = DefaultAttempts
	}

	var createSessions, jrSessions []*school.Session
	scrape := func() error {
		var err error
		createSessions, jrSessions, err = scrapeOnce(ctx, creds, opts, log)
		if err != nil && !browser.IsTimeout(err) {
			return backoff.Permanent(err)
		}
		if err != nil {
			log.Warn().Err(err).Msg("scrape attempt timed out")
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), attempts-1), ctx)
	if err := backoff.Retry(scrape, policy); err != nil {
		return nil, nil, fmt.Errorf("reading MyStudio schedule: %w", err)
	}
	return createSessions, jrSessions, nil
}

// readOnce runs one full scrape pass in a fresh browser session.
func readOnce(ctx context.Context, creds config.Credentials, opts browser.Options, log zerolog.Logger) ([]*school.Session, []*school.Session, error) {
	b, err := browser.New(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	defer b.Close()

	if err := b.Navigate(LoginURL); err != nil {
		return nil, nil, err
	}

	log.Info().Msg("logging in")
	if err := logIn(b, creds); err != nil {
		return nil, nil, err
	}

	if err := b.WaitReady(selLoadingSpinner, 60*time.Second); err != nil {
		return nil, nil, err
	}
	if err := b.WaitHidden(selLoadingSpinner, 60*time.Second); err != nil {
		return nil, nil, err
	}
	// The dashboard keeps rendering briefly after the spinner clears.
	b.Sleep(500 * time.Millisecond)

	if err := b.Hover(selOperationsMenu, 10*time.Second); err != nil {
		return nil, nil, err
	}
	if err := b.Click(selClassCalendar, 5*time.Second); err != nil {
		return nil, nil, err
	}

	day := time.Now()

	var createSessions []*school.Session
	if b.Exists(selCreateDropdown, 60*time.Second) {
		log.Info().Msg("reading CREATE classes")
		createSessions, err = readClassData(b, school.CurriculumCreate, day)
		if err != nil {
			return nil, nil, err
		}
	}

	// Short timeout: the wait for the CREATE dropdown already gave the
	// page time to settle.
	var jrSessions []*school.Session
	if b.Exists(selJRDropdown, 5*time.Second) {
		log.Info().Msg("reading JR classes")
		jrSessions, err = readClassData(b, school.CurriculumJR, day)
		if err != nil {
			return nil, nil, err
		}
	}

	log.Info().
		Int("create_classes", len(createSessions)).
		Int("jr_classes", len(jrSessions)).
		Msg("done reading student data")
	return createSessions, jrSessions, nil
}

func logIn(b *browser.Browser, creds config.Credentials) error {
	if err := b.SendKeys(selLoginEmail, creds.Username, 30*time.Second); err != nil {
		return err
	}
	if err := b.SendKeys(selLoginPassword, creds.Password, 5*time.Second); err != nil {
		return err
	}
	return b.Click(selLoginButton, 5*time.Second)
}

// readClassData reads every class listed under one curriculum's dropdown,
// opening each class in turn to collect its roster.
func readClassData(b *browser.Browser, curriculum school.Curriculum, day time.Time) ([]*school.Session, error) {
	dropdown := selCreateDropdown
	if curriculum == school.CurriculumJR {
		dropdown = selJRDropdown
	}

	// Open the dropdown listing today's classes and lift its markup out
	// for parsing.
	if err := b.Click(dropdown, 10*time.Second); err != nil {
		return nil, err
	}
	listHTML, err := b.OuterHTML(dropdown, 10*time.Second)
	if err != nil {
		return nil, err
	}
	times, err := parseClassList(listHTML, day)
	if err != nil {
		return nil, err
	}

	sessions := make([]*school.Session, 0, len(times))
	for _, t := range times {
		sessions = append(sessions, school.NewSession(t))
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	// Open the first class to reach the roster view. The first list item
	// is a header, so the first class is the second item.
	if err := b.Click(dropdown+" div > ul > li:nth-child(2)", 10*time.Second); err != nil {
		return nil, err
	}

	for i := range sessions {
		if i != 0 {
			if err := b.Click(selClassDropdown, 10*time.Second); err != nil {
				return nil, err
			}
			if err := b.Click(fmt.Sprintf("%s > ul:nth-child(2) > li:nth-child(%d)", selClassDropdown, i+1), 10*time.Second); err != nil {
				return nil, err
			}
		}

		label, err := b.Text(selClassDropdown, 10*time.Second)
		if err != nil {
			return nil, err
		}
		classTime, err := parseClassTime(label, day)
		if err != nil {
			return nil, err
		}
		session := school.FromTime(sessions, classTime)
		if session == nil {
			return nil, fmt.Errorf("class time %s not present in the class list", classTime.Format("3:04 PM"))
		}

		rosterHTML, err := b.OuterHTML(selRosterTableBody, 10*time.Second)
		if err != nil {
			return nil, err
		}
		for _, name := range parseRosterNames(rosterHTML) {
			session.Students = append(session.Students, school.NewStudent(name, curriculum))
		}
	}

	// Return to the page showing all types of classes.
	if err := b.Click(selBackToOverview, 10*time.Second); err != nil {
		return nil, err
	}

	return sessions, nil
}

// parseClassTime converts dropdown text like "1:00 PM (6 students)" into a
// time on the given day. Only the leading time and period tokens matter.
func parseClassTime(text string, day time.Time) (time.Time, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return time.Time{}, fmt.Errorf("malformed class time %q", text)
	}

	clock, period := fields[0], fields[1]
	hourStr, minuteStr, ok := strings.Cut(clock, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("malformed class time %q", text)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed class time %q", text)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed class time %q", text)
	}

	if strings.EqualFold(period, "PM") && hour != 12 {
		hour += 12
	}
	if strings.EqualFold(period, "AM") && hour == 12 {
		hour = 0
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}
