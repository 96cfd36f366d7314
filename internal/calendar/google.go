// Package calendar mirrors schedule entries to Google Calendar.
package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/config"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var colors = map[model.ScheduleType]string{
	model.ScheduleEvent:    "5",
	model.ScheduleParty:    "4",
	model.SchedulePackage:  "10",
	model.SchedulePersonal: "9",
}

type Google struct {
	events     *gcal.EventsService
	calendarID string
	loc        *time.Location
	logger     *zap.Logger
}

// NewGoogle builds a client that refreshes its access token from the stored
// refresh token.
func NewGoogle(ctx context.Context, creds *config.GoogleCredentials, calendarID string, loc *time.Location, logger *zap.Logger) (*Google, error) {
	ts := OAuthConfig(creds).TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})

	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Google{
		events:     svc.Events,
		calendarID: calendarID,
		loc:        loc,
		logger:     logger,
	}, nil
}

func (g *Google) CreateEvent(ctx context.Context, entry *model.ScheduleEntry) (string, error) {
	ev, err := buildEvent(entry, g.loc)
	if err != nil {
		return "", err
	}

	created, err := g.events.Insert(g.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	g.logger.Info("Calendar event created",
		zap.String("event_id", created.Id),
		zap.String("entry_id", entry.ID))
	return created.Id, nil
}

func (g *Google) UpdateEvent(ctx context.Context, eventID string, entry *model.ScheduleEntry) error {
	ev, err := buildEvent(entry, g.loc)
	if err != nil {
		return err
	}

	if _, err := g.events.Update(g.calendarID, eventID, ev).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update calendar event: %w", err)
	}

	g.logger.Info("Calendar event updated", zap.String("event_id", eventID))
	return nil
}

func (g *Google) DeleteEvent(ctx context.Context, eventID string) error {
	if err := g.events.Delete(g.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}

	g.logger.Info("Calendar event deleted", zap.String("event_id", eventID))
	return nil
}

func buildEvent(entry *model.ScheduleEntry, loc *time.Location) (*gcal.Event, error) {
	start, err := entry.StartsAt(loc)
	if err != nil {
		return nil, fmt.Errorf("parse entry time %q: %w", entry.Time, err)
	}
	end := start.Add(time.Duration(entry.DurationHours * float64(time.Hour)))

	description := ""
	if entry.Notes != nil {
		description = *entry.Notes
	}

	return &gcal.Event{
		Summary:     strings.ToUpper(string(entry.Type)) + " - " + entry.Description,
		Location:    entry.Location,
		Description: description,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		ColorId: colors[entry.Type],
	}, nil
}

// Disabled stands in when no Google credentials are configured. Entries are
// stored without an event id.
type Disabled struct{}

func (Disabled) CreateEvent(context.Context, *model.ScheduleEntry) (string, error) { return "", nil }

func (Disabled) UpdateEvent(context.Context, string, *model.ScheduleEntry) error { return nil }

func (Disabled) DeleteEvent(context.Context, string) error { return nil }
