package gcal

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"dojosync/internal/school"
)

// TimeZone is the studio's time zone; event times are wall-clock times in
// this zone.
const TimeZone = "America/Vancouver"

// Publisher creates calendar events for merged sessions.
type Publisher struct {
	service    *calendar.Service
	calendarID string
	log        zerolog.Logger
}

// NewPublisher builds a Calendar API client from the given token source.
func NewPublisher(ctx context.Context, ts oauth2.TokenSource, calendarID string, log zerolog.Logger) (*Publisher, error) {
	service, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	return &Publisher{
		service:    service,
		calendarID: calendarID,
		log:        log,
	}, nil
}

// AddSessions creates one calendar event per session. Insertion stops at
// the first API failure; events created before it stay in place.
func (p *Publisher) AddSessions(sessions []*school.Session, unityNames, focusNames []string) error {
	for _, session := range sessions {
		event := BuildEvent(session, unityNames, focusNames)
		created, err := p.service.Events.Insert(p.calendarID, event).Do()
		if err != nil {
			return fmt.Errorf("inserting event %q: %w", event.Summary, err)
		}
		p.log.Info().Str("link", created.HtmlLink).Msg("class event created")
	}
	return nil
}

// BuildEvent converts a merged session into a calendar event on the
// session's date.
func BuildEvent(session *school.Session, unityNames, focusNames []string) *calendar.Event {
	date := session.StartTime.Format("2006-01-02")
	return &calendar.Event{
		Summary:     Summary(session),
		Description: BuildDescription(session, unityNames, focusNames),
		Start: &calendar.EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", date, session.StartTime.Format("15:04")),
			TimeZone: TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: fmt.Sprintf("%sT%s:00", date, session.EndTime.Format("15:04")),
			TimeZone: TimeZone,
		},
	}
}
