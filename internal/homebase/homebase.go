package homebase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"dojosync/internal/browser"
	"dojosync/internal/config"
	"dojosync/internal/school"
)

// LoginURL is the Homebase shift portal; the login form is on the landing
// page.
const LoginURL = "https://app.joinhomebase.com"

const (
	selLoginEmail    = "#account_login"
	selLoginPassword = "#account_password"
	selLoginButton   = "#new_account > button"
)

// The shift dashboard lays out differently per viewport width, so each
// lookup tries a selector set per layout and takes the first that matches.
var shiftNameSelectors = []string{
	// Medium width screens.
	"#react-app-root > div > div > div > div > div > div.Box.mv4.mh4 > div > div.Box > div > div > " +
		"div:nth-child(2) > div > div > div.Box.ShiftsBlock > div > div:nth-child(2) > div > div > " +
		"div.Box.Box--row.ShiftCard.ShiftCard--card > div.Box.Box--ellipsis > div > " +
		"div.Box.Box--row.Box--align-items-center.Box--justify-content-start.ShiftCard__name_and_role > " +
		"div:nth-child(1) > span",
	// Large width screens.
	"#react-app-root > div > div > div > div > div > div.Box.mr24 > div.Box > div > div > div:nth-child(2) > " +
		"div > div > div.Box.ShiftsBlock > div > div:nth-child(2) > div > div > " +
		"div.Box.Box--row.ShiftCard.ShiftCard--card > div.Box.Box--ellipsis > div > " +
		"div.Box.Box--row.Box--align-items-center.Box--justify-content-start.ShiftCard__name_and_role > " +
		"div:nth-child(1) > span",
	// Small width screens.
	"#react-app-root > div > div > div > div > div > div:nth-child(2) > div > div.Box > div > div > " +
		"div:nth-child(2) > div > div > div.Box.ShiftsBlock > div > div:nth-child(2) > div > div > " +
		"div.Box.Box--row.ShiftCard.ShiftCard--card > div.Box.Box--ellipsis > div:nth-child(1) > " +
		"div.Box.Box--row.Box--align-items-center.Box--justify-content-start.ShiftCard__name_and_role > " +
		"div:nth-child(1) > span",
}

var shiftTimeSelectors = []string{
	// Medium width screens.
	"#react-app-root > div > div > div > div > div > div.Box.mv4.mh4 > div > div.Box > div > div > " +
		"div:nth-child(2) > div > div > div.Box.ShiftsBlock > div > div:nth-child(2) > div > div > " +
		"div.Box.Box--row.ShiftCard.ShiftCard--card > div.Box.Box--ellipsis > div > " +
		"div.Box.Box--row.Box--align-items-center.ShiftCard__status_and_scheduled > " +
		"div.Box.Box--ellipsis.ShiftCard__time-range > span",
	// Large width screens.
	"#react-app-root > div > div > div > div > div > div.Box.mr24 > div.Box > div > div > div:nth-child(2) > " +
		"div > div > div.Box.ShiftsBlock > div > div:nth-child(2) > div > div > " +
		"div.Box.Box--row.ShiftCard.ShiftCard--card > div.Box.Box--ellipsis > div > " +
		"div.Box.Box--row.Box--align-items-center.ShiftCard__status_and_scheduled > " +
		"div.Box.Box--ellipsis.ShiftCard__time-range > span",
	// Small width screens.
	"#react-app-root > div > div > div > div > div > div:nth-child(2) > div > div.Box > div > div > " +
		"div:nth-child(2) > div > div > div.Box.ShiftsBlock > div > div:nth-child(2) > div > div > " +
		"div.Box.Box--row.ShiftCard.ShiftCard--card > div.Box.Box--ellipsis > div:nth-child(1) > " +
		"div.Box.Box--column.Box--justify-content-center.ShiftCard__status_and_scheduled > " +
		"div.Box.Box--ellipsis.ShiftCard__time-range.mt4 > span",
}

// Read scrapes today's instructor shifts from the Homebase portal. There is
// no retry: a timeout propagates to the caller.
func Read(ctx context.Context, creds config.Credentials, opts browser.Options, log zerolog.Logger) ([]*school.Instructor, error) {
	b, err := browser.New(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if err := b.Navigate(LoginURL); err != nil {
		return nil, err
	}

	log.Info().Msg("logging in")
	if err := logIn(b, creds); err != nil {
		return nil, err
	}

	log.Info().Msg("reading instructors' names")
	names, err := firstMatchingTexts(b, shiftNameSelectors)
	if err != nil {
		return nil, fmt.Errorf("finding instructors' names: %w", err)
	}

	log.Info().Msg("reading instructors' shifts")
	shiftTexts, err := firstMatchingTexts(b, shiftTimeSelectors)
	if err != nil {
		return nil, fmt.Errorf("finding instructors' shifts: %w", err)
	}

	if len(names) != len(shiftTexts) {
		return nil, fmt.Errorf("found %d instructor names but %d shift ranges", len(names), len(shiftTexts))
	}

	day := time.Now()
	instructors := make([]*school.Instructor, 0, len(names))
	for i, name := range names {
		start, end, err := parseShiftRange(shiftTexts[i], day)
		if err != nil {
			return nil, fmt.Errorf("shift for %s: %w", name, err)
		}
		instructors = append(instructors, school.NewInstructor(name, start, end))
	}

	log.Info().Int("instructors", len(instructors)).Msg("done reading instructors' data")
	return instructors, nil
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

// firstMatchingTexts tries each selector with a short timeout and returns
// the texts of the first one that yields elements. Only timeout failures
// fall through to the next selector.
func firstMatchingTexts(b *browser.Browser, selectors []string) ([]string, error) {
	for _, sel := range selectors {
		texts, err := b.Texts(sel, 5*time.Second)
		if err != nil {
			if browser.IsTimeout(err) {
				continue
			}
			return nil, err
		}
		if len(texts) > 0 {
			return texts, nil
		}
	}
	return nil, fmt.Errorf("no layout matched: %w", browser.ErrTimeout)
}
