package handlers

import (
	"context"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/controller/state"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"go.uber.org/zap"
)

// Services groups the domain services the wizards call.
type Services struct {
	Payments *service.PaymentService
	Schedule *service.ScheduleService
	Expenses *service.ExpenseService
	Quotes   *service.QuoteService
	Reports  *service.ReportService
}

// textStep consumes free text for one wizard step.
type textStep func(ctx context.Context, sess state.Session, text string)

type stepKey struct {
	cmd  state.Command
	step state.Step
}

// Handlers holds the wizard definitions and one-shot actions.
type Handlers struct {
	payments  *service.PaymentService
	schedule  *service.ScheduleService
	expenses  *service.ExpenseService
	quotes    *service.QuoteService
	reports   *service.ReportService
	sessions  *state.Store
	messenger chat.Messenger
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
	steps     map[stepKey]textStep
}

// NewHandlers creates the handler set.
func NewHandlers(
	services Services,
	sessions *state.Store,
	messenger chat.Messenger,
	loc *time.Location,
	now func() time.Time,
	logger *zap.Logger,
) *Handlers {
	h := &Handlers{
		payments:  services.Payments,
		schedule:  services.Schedule,
		expenses:  services.Expenses,
		quotes:    services.Quotes,
		reports:   services.Reports,
		sessions:  sessions,
		messenger: messenger,
		loc:       loc,
		now:       now,
		logger:    logger,
	}
	h.steps = h.textSteps()
	return h
}
