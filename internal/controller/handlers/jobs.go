package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"go.uber.org/zap"
)

// Background jobs report to one chat and never touch wizard sessions. They
// return the first error and leave the rest of the run for the next tick.

// SendDailyDigest sends today's entries.
func (h *Handlers) SendDailyDigest(ctx context.Context, chatID int64) error {
	entries, err := h.schedule.ListPeriod(ctx, service.PeriodToday)
	if err != nil {
		return fmt.Errorf("list today's entries: %w", err)
	}

	if len(entries) == 0 {
		return h.messenger.Send(ctx, chatID, plain("☀️ Bom dia! Não há agendamentos no sistema para hoje."))
	}

	var b strings.Builder
	b.WriteString("☀️ *BOM DIA! Agendamentos de hoje:*\n\n")
	for _, e := range entries {
		b.WriteString(h.formatEntry(e))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "📋 Total: %d agendamento(s)", len(entries))

	if err := h.messenger.Send(ctx, chatID, markdown(b.String())); err != nil {
		return fmt.Errorf("send daily digest: %w", err)
	}
	return nil
}

// SendHourReminders sends one reminder per entry starting in about an hour
// and flags it so later runs skip it.
func (h *Handlers) SendHourReminders(ctx context.Context, chatID int64) error {
	due, err := h.schedule.DueReminders(ctx)
	if err != nil {
		return fmt.Errorf("find due reminders: %w", err)
	}

	for _, e := range due {
		msg := chat.Message{
			Text:      "⏰ *LEMBRETE - Em 1 hora!*\n\n" + h.formatEntry(e),
			ParseMode: chat.ParseModeMarkdown,
			Keyboard:  reminderKeyboard(e.ID),
		}
		if err := h.messenger.Send(ctx, chatID, msg); err != nil {
			return fmt.Errorf("send reminder for entry %s: %w", e.ID, err)
		}
		if err := h.schedule.MarkReminderSent(ctx, e.ID); err != nil {
			return fmt.Errorf("mark reminder sent for entry %s: %w", e.ID, err)
		}
		h.logger.Info("Reminder sent", zap.String("entry_id", e.ID))
	}
	return nil
}

// SendPreviousMonthReport sends last month's report.
func (h *Handlers) SendPreviousMonthReport(ctx context.Context, chatID int64) error {
	report, err := h.reports.PreviousMonth(ctx)
	if err != nil {
		return fmt.Errorf("build previous month report: %w", err)
	}
	if err := h.messenger.Send(ctx, chatID, markdown(formatReport(report))); err != nil {
		return fmt.Errorf("send monthly report: %w", err)
	}
	return nil
}
