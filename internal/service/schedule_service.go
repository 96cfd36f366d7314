package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"go.uber.org/zap"
)

var ErrEntryNotFound = errors.New("schedule entry not found")

// ScheduleInput is a fully collected schedule entry before persistence.
type ScheduleInput struct {
	Type          model.ScheduleType
	QuoteID       *string
	ResponsibleID *string
	Date          time.Time
	Time          string
	DurationHours float64
	Location      string
	Description   string
	Notes         *string
}

type ScheduleService struct {
	repo         ScheduleRepository
	responsibles ResponsibleRepository
	calendar     Calendar
	loc          *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

func NewScheduleService(
	repo ScheduleRepository,
	responsibles ResponsibleRepository,
	calendar Calendar,
	loc *time.Location,
	now func() time.Time,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		repo:         repo,
		responsibles: responsibles,
		calendar:     calendar,
		loc:          loc,
		now:          now,
		logger:       logger,
	}
}

// FindResponsible looks a responsible up by a case-insensitive name fragment.
func (s *ScheduleService) FindResponsible(ctx context.Context, fragment string) (*model.Responsible, error) {
	r, err := s.responsibles.SearchByName(ctx, strings.TrimSpace(fragment))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrResponsibleNotFound
		}
		return nil, fmt.Errorf("search responsible: %w", err)
	}
	return r, nil
}

// Create mirrors the entry to the calendar first and then stores it with
// the returned event id. Nothing is stored if the calendar call fails.
func (s *ScheduleService) Create(ctx context.Context, in ScheduleInput) (*model.ScheduleEntry, error) {
	now := s.now()
	entry := &model.ScheduleEntry{
		ID:            uuid.NewString(),
		QuoteID:       in.QuoteID,
		ResponsibleID: in.ResponsibleID,
		Type:          in.Type,
		Date:          StartOfDay(in.Date, s.loc),
		Time:          in.Time,
		DurationHours: in.DurationHours,
		Status:        model.SchedulePending,
		Location:      in.Location,
		Description:   in.Description,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	eventID, err := s.calendar.CreateEvent(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("create calendar event: %w", err)
	}
	if eventID != "" {
		entry.CalendarEventID = &eventID
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if eventID != "" {
			if derr := s.calendar.DeleteEvent(ctx, eventID); derr != nil {
				s.logger.Warn("Failed to remove calendar event of unsaved entry",
					zap.String("calendar_event_id", eventID), zap.Error(derr))
			}
		}
		return nil, fmt.Errorf("create schedule entry: %w", err)
	}

	s.logger.Info("Schedule entry created",
		zap.String("entry_id", entry.ID),
		zap.String("type", string(entry.Type)),
		zap.String("calendar_event_id", eventID))
	return entry, nil
}

func (s *ScheduleService) Get(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrapNotFound(err, "get schedule entry")
	}
	return entry, nil
}

// FindAt resolves the entry booked on day at the HH:MM clock time.
func (s *ScheduleService) FindAt(ctx context.Context, day time.Time, clock string) (*model.ScheduleEntry, error) {
	from, to := DayRange(day, s.loc)
	entry, err := s.repo.FindByDayAndTime(ctx, from, to, strings.TrimSpace(clock))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("find schedule entry: %w", err)
	}
	return entry, nil
}

func (s *ScheduleService) ChangeStatus(ctx context.Context, id string, status model.ScheduleStatus) error {
	if !model.IsScheduleStatus(status) {
		return fmt.Errorf("%w: schedule status %q", ErrInvalidInput, status)
	}
	if status == model.ScheduleCancelled {
		return s.Cancel(ctx, id)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return s.wrapNotFound(err, "update schedule status")
	}
	s.logger.Info("Schedule status changed", zap.String("entry_id", id), zap.String("status", string(status)))
	return nil
}

// Cancel marks the entry cancelled and removes its calendar event. Once the
// status is stored the cancellation stands; a calendar failure is only logged.
func (s *ScheduleService) Cancel(ctx context.Context, id string) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.wrapNotFound(err, "get schedule entry")
	}
	if err := s.repo.UpdateStatus(ctx, id, model.ScheduleCancelled); err != nil {
		return s.wrapNotFound(err, "cancel schedule entry")
	}
	if entry.CalendarEventID != nil && *entry.CalendarEventID != "" {
		if err := s.calendar.DeleteEvent(ctx, *entry.CalendarEventID); err != nil {
			s.logger.Warn("Failed to delete calendar event of cancelled entry",
				zap.String("entry_id", id),
				zap.String("calendar_event_id", *entry.CalendarEventID),
				zap.Error(err))
		}
	}
	s.logger.Info("Schedule entry cancelled", zap.String("entry_id", id))
	return nil
}

// Reschedule moves the entry to a new day and time and updates the calendar.
func (s *ScheduleService) Reschedule(ctx context.Context, id string, day time.Time, clock string) (*model.ScheduleEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.wrapNotFound(err, "get schedule entry")
	}

	day = StartOfDay(day, s.loc)
	if err := s.repo.Reschedule(ctx, id, day, clock); err != nil {
		return nil, s.wrapNotFound(err, "reschedule entry")
	}
	entry.Date = day
	entry.Time = clock
	entry.ReminderSent = false

	if entry.CalendarEventID != nil && *entry.CalendarEventID != "" {
		if err := s.calendar.UpdateEvent(ctx, *entry.CalendarEventID, entry); err != nil {
			return nil, fmt.Errorf("update calendar event: %w", err)
		}
	}
	s.logger.Info("Schedule entry rescheduled", zap.String("entry_id", id), zap.Time("date", day), zap.String("time", clock))
	return entry, nil
}

// ListBetween lists non-cancelled entries in [from, to).
func (s *ScheduleService) ListBetween(ctx context.Context, from, to time.Time) ([]*model.ScheduleEntry, error) {
	entries, err := s.repo.ListActiveBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return entries, nil
}

// ListPeriod lists non-cancelled entries for a period keyword.
func (s *ScheduleService) ListPeriod(ctx context.Context, p Period) ([]*model.ScheduleEntry, error) {
	from, to, err := p.Range(s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	return s.ListBetween(ctx, from, to)
}

// ListDay lists non-cancelled entries on one day.
func (s *ScheduleService) ListDay(ctx context.Context, day time.Time) ([]*model.ScheduleEntry, error) {
	from, to := DayRange(day, s.loc)
	return s.ListBetween(ctx, from, to)
}

func (s *ScheduleService) wrapNotFound(err error, op string) error {
	if errors.Is(err, ErrNotFound) {
		return ErrEntryNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// The reminder job runs every reminderPeriod, so a window of that width ending
// at reminderLead catches every start time on exactly one run.
const (
	reminderLead   = 60 * time.Minute
	reminderPeriod = 15 * time.Minute
)

// DueReminders returns entries starting more than 45 and at most 60 minutes
// from now whose reminder has not been sent yet.
func (s *ScheduleService) DueReminders(ctx context.Context) ([]*model.ScheduleEntry, error) {
	entries, err := s.repo.ListPendingReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}

	now := s.now()
	var due []*model.ScheduleEntry
	for _, e := range entries {
		if e.ReminderSent || e.Status == model.ScheduleCancelled {
			continue
		}
		start, err := e.StartsAt(s.loc)
		if err != nil {
			s.logger.Warn("Skipping entry with unparseable time",
				zap.String("entry_id", e.ID), zap.String("time", e.Time))
			continue
		}
		until := start.Sub(now)
		if until > reminderLead-reminderPeriod && until <= reminderLead {
			due = append(due, e)
		}
	}
	return due, nil
}

func (s *ScheduleService) MarkReminderSent(ctx context.Context, id string) error {
	if err := s.repo.MarkReminderSent(ctx, id); err != nil {
		return s.wrapNotFound(err, "mark reminder sent")
	}
	return nil
}
