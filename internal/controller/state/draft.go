package state

import (
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
)

// Draft is the data a wizard has collected so far. Each command has its own
// variant; handlers switch on the concrete type.
type Draft interface {
	isDraft()
}

// Empty is the draft of wizards that have collected nothing yet.
type Empty struct{}

type PaymentDraft struct {
	DueDate   time.Time
	PackageID string
}

// LinkMode is how a schedule entry is tied to the rest of the records.
type LinkMode string

const (
	LinkQuote       LinkMode = "orcamento"
	LinkResponsible LinkMode = "responsavel"
	LinkNone        LinkMode = "nenhum"
)

type ScheduleDraft struct {
	Type          model.ScheduleType
	Link          LinkMode
	QuoteID       *string
	ResponsibleID *string
	Date          time.Time
	Time          string
	DurationHours float64
	Location      string
	Description   string
}

type ExpenseDraft struct {
	Category    model.ExpenseCategory
	Amount      float64
	Date        time.Time
	Description string
}

type QuoteDraft struct {
	Client           string
	Type             model.QuoteType
	EventDate        time.Time
	Time             string
	Children         int
	DurationHours    float64
	Staff            int
	HolidayOrWeekend bool
	TravelCost       float64
	Discount         float64
	Address          string
	Complement       *string
	Neighborhood     string
	City             string
}

// EntryLookup resolves a schedule entry by day and time, or carries an id
// already resolved.
type EntryLookup struct {
	Date    time.Time
	EntryID string
}

// DateRange is a custom listing period being collected.
type DateRange struct {
	Start time.Time
}

func (Empty) isDraft()         {}
func (PaymentDraft) isDraft()  {}
func (ScheduleDraft) isDraft() {}
func (ExpenseDraft) isDraft()  {}
func (QuoteDraft) isDraft()    {}
func (EntryLookup) isDraft()   {}
func (DateRange) isDraft()     {}
