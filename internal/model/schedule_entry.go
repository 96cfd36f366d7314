package model

import "time"

type ScheduleType string

const (
	ScheduleEvent    ScheduleType = "evento"
	ScheduleParty    ScheduleType = "festa"
	SchedulePackage  ScheduleType = "pacote"
	SchedulePersonal ScheduleType = "pessoal"
)

var ScheduleTypes = []ScheduleType{ScheduleEvent, ScheduleParty, SchedulePackage, SchedulePersonal}

type ScheduleStatus string

const (
	SchedulePending   ScheduleStatus = "pendente"
	ScheduleConfirmed ScheduleStatus = "confirmado"
	ScheduleDone      ScheduleStatus = "concluido"
	ScheduleCancelled ScheduleStatus = "cancelado"
)

var ScheduleStatuses = []ScheduleStatus{ScheduleConfirmed, ScheduleCancelled, SchedulePending, ScheduleDone}

// ScheduleEntry is an appointment mirrored to the external calendar.
type ScheduleEntry struct {
	ID              string         `json:"id"`
	QuoteID         *string        `json:"orcamento_id,omitempty"`
	ResponsibleID   *string        `json:"responsavel_id,omitempty"`
	Type            ScheduleType   `json:"tipo"`
	Date            time.Time      `json:"data"`
	Time            string         `json:"horario"` // HH:MM
	DurationHours   float64        `json:"duracao"`
	Status          ScheduleStatus `json:"status"`
	Location        string         `json:"local"`
	Description     string         `json:"descricao"`
	Notes           *string        `json:"observacoes,omitempty"`
	CalendarEventID *string        `json:"google_event_id,omitempty"`
	ReminderSent    bool           `json:"lembrete_enviado"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// StartsAt combines the calendar day and the HH:MM time in loc.
func (e *ScheduleEntry) StartsAt(loc *time.Location) (time.Time, error) {
	clock, err := time.Parse("15:04", e.Time)
	if err != nil {
		return time.Time{}, err
	}
	d := e.Date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

func IsScheduleType(t ScheduleType) bool {
	for _, v := range ScheduleTypes {
		if v == t {
			return true
		}
	}
	return false
}

func IsScheduleStatus(s ScheduleStatus) bool {
	for _, v := range ScheduleStatuses {
		if v == s {
			return true
		}
	}
	return false
}
