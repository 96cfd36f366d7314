package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/recrearnolar/recrear_bot/internal/controller/formatting"
	"github.com/recrearnolar/recrear_bot/internal/controller/state"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"go.uber.org/zap"
)

// StartCancelSchedule handles /cancelar_agendamento.
func (h *Handlers) StartCancelSchedule(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandCancelSchedule, state.StepDate, state.EntryLookup{},
		plain("📅 Digite a data do agendamento (DD/MM/AAAA):"))
}

// StartChangeStatus handles /mudar_status.
func (h *Handlers) StartChangeStatus(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandChangeStatus, state.StepDate, state.EntryLookup{},
		plain("📅 Digite a data do agendamento (DD/MM/AAAA):"))
}

func (h *Handlers) lookupDate(ctx context.Context, sess state.Session, text string) {
	day, err := parseDate(text, h.loc)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidDate)
		return
	}
	d := draftOf[state.EntryLookup](sess)
	d.Date = day
	h.advance(ctx, sess, state.StepTime, d, plain("⏰ Digite a hora do agendamento (formato HH:MM):"))
}

// findEntry resolves the entry at the collected day and the typed time. It
// replies and ends the wizard when there is nothing to act on.
func (h *Handlers) findEntry(ctx context.Context, sess state.Session, text string) (*model.ScheduleEntry, bool) {
	clock, err := parseClock(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidTime)
		return nil, false
	}

	d := draftOf[state.EntryLookup](sess)
	entry, err := h.schedule.FindAt(ctx, d.Date, clock)
	if !h.current(sess) {
		return nil, false
	}
	if errors.Is(err, service.ErrEntryNotFound) {
		h.abort(ctx, sess, "❌ Nenhum agendamento encontrado para esta data/hora.")
		return nil, false
	}
	if err != nil {
		h.logger.Error("Failed to find schedule entry", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		h.abort(ctx, sess, "❌ Erro ao buscar agendamento.")
		return nil, false
	}
	return entry, true
}

func (h *Handlers) cancelAtTime(ctx context.Context, sess state.Session, text string) {
	entry, ok := h.findEntry(ctx, sess, text)
	if !ok {
		return
	}
	if entry.Status == model.ScheduleCancelled {
		h.abort(ctx, sess, "ℹ️ Este agendamento já está cancelado.")
		return
	}
	if !h.claim(sess) {
		return
	}

	if err := h.schedule.Cancel(ctx, entry.ID); err != nil {
		h.logger.Error("Failed to cancel schedule entry", zap.String("entry_id", entry.ID), zap.Error(err))
		h.reply(ctx, sess.ChatID, "❌ Erro ao cancelar agendamento.")
		return
	}

	entry.Status = model.ScheduleCancelled
	h.send(ctx, sess.ChatID, markdown("❌ *Agendamento cancelado!*\n\n"+h.formatEntry(entry)))
}

func (h *Handlers) changeStatusAtTime(ctx context.Context, sess state.Session, text string) {
	entry, ok := h.findEntry(ctx, sess, text)
	if !ok {
		return
	}

	d := draftOf[state.EntryLookup](sess)
	d.EntryID = entry.ID
	h.advance(ctx, sess, state.StepStatus, d,
		withButtons("📌 Selecione o novo status para este agendamento:", scheduleStatusKeyboard()))
}

// OnScheduleStatus handles status_<status>.
func (h *Handlers) OnScheduleStatus(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandChangeStatus, state.StepStatus)
	if !ok {
		return
	}

	status := model.ScheduleStatus(arg)
	if !model.IsScheduleStatus(status) {
		h.reply(ctx, chatID, "❌ Status inválido.")
		return
	}

	if !h.claim(sess) {
		return
	}

	d := draftOf[state.EntryLookup](sess)
	err := h.schedule.ChangeStatus(ctx, d.EntryID, status)
	if errors.Is(err, service.ErrEntryNotFound) {
		h.reply(ctx, chatID, msgEntryNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to change schedule status", zap.String("entry_id", d.EntryID), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao alterar status.")
		return
	}

	h.send(ctx, chatID, markdown(fmt.Sprintf("✅ Status do agendamento alterado para: *%s*", status)))
}

// ConfirmEntry handles ag_conf_<id> from a reminder.
func (h *Handlers) ConfirmEntry(ctx context.Context, chatID int64, entryID string) {
	err := h.schedule.ChangeStatus(ctx, entryID, model.ScheduleConfirmed)
	if errors.Is(err, service.ErrEntryNotFound) {
		h.reply(ctx, chatID, msgEntryNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to confirm schedule entry", zap.String("entry_id", entryID), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao confirmar agendamento.")
		return
	}
	h.reply(ctx, chatID, "✅ Agendamento confirmado!")
}

// CancelEntry handles ag_canc_<id> from a reminder.
func (h *Handlers) CancelEntry(ctx context.Context, chatID int64, entryID string) {
	err := h.schedule.Cancel(ctx, entryID)
	if errors.Is(err, service.ErrEntryNotFound) {
		h.reply(ctx, chatID, msgEntryNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to cancel schedule entry", zap.String("entry_id", entryID), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao cancelar agendamento.")
		return
	}
	h.reply(ctx, chatID, "❌ Agendamento cancelado!")
}

// RescheduleEntry handles ag_reag_<id> by starting a date and time wizard
// for that entry.
func (h *Handlers) RescheduleEntry(ctx context.Context, chatID int64, entryID string) {
	entry, err := h.schedule.Get(ctx, entryID)
	if errors.Is(err, service.ErrEntryNotFound) {
		h.reply(ctx, chatID, msgEntryNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to get schedule entry", zap.String("entry_id", entryID), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao buscar agendamento.")
		return
	}
	if entry.Status == model.ScheduleCancelled {
		h.reply(ctx, chatID, "ℹ️ Este agendamento está cancelado.")
		return
	}

	h.begin(ctx, chatID, state.CommandReschedule, state.StepDate, state.EntryLookup{EntryID: entry.ID},
		markdown("📅 *Reagendar*\n\n"+h.formatEntry(entry)+"\n📅 Digite a nova data (DD/MM/AAAA):"))
}

func (h *Handlers) rescheduleDate(ctx context.Context, sess state.Session, text string) {
	day, err := parseDate(text, h.loc)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidDate)
		return
	}
	d := draftOf[state.EntryLookup](sess)
	d.Date = day
	h.advance(ctx, sess, state.StepTime, d, plain("⏰ Digite o novo horário (HH:MM):"))
}

func (h *Handlers) rescheduleTime(ctx context.Context, sess state.Session, text string) {
	clock, err := parseClock(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidTime)
		return
	}

	if !h.claim(sess) {
		return
	}

	d := draftOf[state.EntryLookup](sess)
	entry, err := h.schedule.Reschedule(ctx, d.EntryID, d.Date, clock)
	if errors.Is(err, service.ErrEntryNotFound) {
		h.reply(ctx, sess.ChatID, msgEntryNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to reschedule entry", zap.String("entry_id", d.EntryID), zap.Error(err))
		h.reply(ctx, sess.ChatID, "❌ Erro ao reagendar.")
		return
	}

	h.reply(ctx, sess.ChatID, fmt.Sprintf("✅ Agendamento reagendado para %s às %s!",
		formatting.Date(entry.Date.In(h.loc)), entry.Time))
}
