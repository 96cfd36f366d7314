package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/repository/base"
	"github.com/recrearnolar/recrear_bot/internal/service"
)

type ScheduleRepository struct {
	*base.Repository
}

func NewScheduleRepository(b *base.Repository) *ScheduleRepository {
	return &ScheduleRepository{Repository: b}
}

const scheduleColumns = `
	id, orcamento_id, responsavel_id, tipo, data, horario, duracao::float8, status,
	local, descricao, observacoes, google_event_id, lembrete_enviado, created_at, updated_at`

func scanSchedule(row interface{ Scan(...any) error }) (*model.ScheduleEntry, error) {
	var e model.ScheduleEntry
	err := row.Scan(
		&e.ID,
		&e.QuoteID,
		&e.ResponsibleID,
		&e.Type,
		&e.Date,
		&e.Time,
		&e.DurationHours,
		&e.Status,
		&e.Location,
		&e.Description,
		&e.Notes,
		&e.CalendarEventID,
		&e.ReminderSent,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectSchedule(rows pgx.Rows) ([]*model.ScheduleEntry, error) {
	defer rows.Close()

	var entries []*model.ScheduleEntry
	for rows.Next() {
		e, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ScheduleRepository) Create(ctx context.Context, e *model.ScheduleEntry) error {
	query := `
		INSERT INTO agendamentos (
			id, orcamento_id, responsavel_id, tipo, data, horario, duracao, status,
			local, descricao, observacoes, google_event_id, lembrete_enviado, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.Pool().Exec(ctx, query,
		e.ID,
		e.QuoteID,
		e.ResponsibleID,
		e.Type,
		e.Date,
		e.Time,
		e.DurationHours,
		e.Status,
		e.Location,
		e.Description,
		e.Notes,
		e.CalendarEventID,
		e.ReminderSent,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create schedule entry: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	if !base.ValidID(id) {
		return nil, service.ErrNotFound
	}
	query := `SELECT ` + scheduleColumns + ` FROM agendamentos WHERE id = $1`

	e, err := scanSchedule(r.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get schedule entry by id: %w", base.MapNotFound(err))
	}
	return e, nil
}

// FindByDayAndTime finds the entry on a day with an exact HH:MM time.
func (r *ScheduleRepository) FindByDayAndTime(ctx context.Context, from, to time.Time, clock string) (*model.ScheduleEntry, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM agendamentos
		WHERE data >= $1 AND data < $2 AND horario = $3
		ORDER BY created_at
		LIMIT 1
	`

	e, err := scanSchedule(r.QueryRow(ctx, query, from, to, clock))
	if err != nil {
		return nil, fmt.Errorf("find schedule entry by time: %w", base.MapNotFound(err))
	}
	return e, nil
}

func (r *ScheduleRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]*model.ScheduleEntry, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM agendamentos
		WHERE data >= $1 AND data < $2 AND status <> $3
		ORDER BY data, horario
	`

	rows, err := r.Query(ctx, query, from, to, model.ScheduleCancelled)
	if err != nil {
		return nil, fmt.Errorf("list schedule entries: %w", err)
	}
	return collectSchedule(rows)
}

func (r *ScheduleRepository) ListPendingReminders(ctx context.Context) ([]*model.ScheduleEntry, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM agendamentos
		WHERE lembrete_enviado = FALSE AND status <> $1 AND data >= NOW() - INTERVAL '1 day'
		ORDER BY data, horario
	`

	rows, err := r.Query(ctx, query, model.ScheduleCancelled)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	return collectSchedule(rows)
}

func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id string, status model.ScheduleStatus) error {
	if !base.ValidID(id) {
		return service.ErrNotFound
	}
	query := `UPDATE agendamentos SET status = $2, updated_at = NOW() WHERE id = $1`

	if err := r.ExecOne(ctx, query, id, status); err != nil {
		return fmt.Errorf("update schedule status: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) MarkReminderSent(ctx context.Context, id string) error {
	if !base.ValidID(id) {
		return service.ErrNotFound
	}
	query := `UPDATE agendamentos SET lembrete_enviado = TRUE, updated_at = NOW() WHERE id = $1`

	if err := r.ExecOne(ctx, query, id); err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}

// Reschedule moves an entry and re-arms its reminder.
func (r *ScheduleRepository) Reschedule(ctx context.Context, id string, date time.Time, clock string) error {
	if !base.ValidID(id) {
		return service.ErrNotFound
	}
	query := `
		UPDATE agendamentos
		SET data = $2, horario = $3, lembrete_enviado = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	if err := r.ExecOne(ctx, query, id, date, clock); err != nil {
		return fmt.Errorf("reschedule entry: %w", err)
	}
	return nil
}
