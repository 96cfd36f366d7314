package handlers

import (
	"context"
	"strings"

	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/controller/state"
	"go.uber.org/zap"
)

// HandleText feeds free text to the chat's active wizard. Without a session
// the text is dropped.
func (h *Handlers) HandleText(ctx context.Context, chatID int64, text string) {
	sess, ok := h.sessions.Get(chatID)
	if !ok {
		return
	}

	step, ok := h.steps[stepKey{cmd: sess.Command, step: sess.Step}]
	if !ok {
		// The session waits for a button press.
		h.reply(ctx, chatID, msgUseButtons)
		return
	}

	h.logger.Debug("Processing step",
		zap.Int64("chat_id", chatID),
		zap.String("command", string(sess.Command)),
		zap.String("step", string(sess.Step)))

	step(ctx, sess, strings.TrimSpace(text))
}

// begin replaces the chat's session with a new wizard and sends its first prompt.
func (h *Handlers) begin(ctx context.Context, chatID int64, cmd state.Command, step state.Step, draft state.Draft, prompt chat.Message) {
	sess := h.sessions.Start(chatID, cmd, step, draft)

	h.logger.Info("Wizard started",
		zap.Int64("chat_id", chatID),
		zap.String("command", string(cmd)),
		zap.String("session_id", sess.ID))

	h.send(ctx, chatID, prompt)
}

// current reports whether sess is still the chat's active session.
func (h *Handlers) current(sess state.Session) bool {
	live, ok := h.sessions.Get(sess.ChatID)
	if ok && live.ID == sess.ID {
		return true
	}
	h.logger.Info("Session replaced while processing",
		zap.Int64("chat_id", sess.ChatID),
		zap.String("session_id", sess.ID))
	return false
}

// advance stores the next step and sends its prompt. A session replaced in
// the meantime is left alone.
func (h *Handlers) advance(ctx context.Context, sess state.Session, step state.Step, draft state.Draft, prompt chat.Message) {
	if !h.current(sess) {
		return
	}
	h.sessions.Set(sess.Advance(step, draft))
	h.send(ctx, sess.ChatID, prompt)
}

// finish ends the wizard unless a newer one already took its place.
func (h *Handlers) finish(sess state.Session) {
	h.sessions.Take(sess.ChatID, sess.ID)
}

// claim ends the wizard before its final write. Of two events racing on the
// same session only the first gets true; the other must not write.
func (h *Handlers) claim(sess state.Session) bool {
	if h.sessions.Take(sess.ChatID, sess.ID) {
		return true
	}
	h.logger.Info("Session already completed or replaced",
		zap.Int64("chat_id", sess.ChatID),
		zap.String("session_id", sess.ID))
	return false
}

// abort replies and ends the wizard.
func (h *Handlers) abort(ctx context.Context, sess state.Session, text string) {
	h.reply(ctx, sess.ChatID, text)
	h.finish(sess)
}

// expect loads the session a button press continues. Buttons from a finished
// or replaced wizard get the expired reply.
func (h *Handlers) expect(ctx context.Context, chatID int64, cmd state.Command, step state.Step) (state.Session, bool) {
	sess, ok := h.sessions.Get(chatID)
	if !ok || !sess.Is(cmd, step) {
		h.logger.Debug("Callback outside its wizard step",
			zap.Int64("chat_id", chatID),
			zap.String("command", string(cmd)),
			zap.String("step", string(step)))
		h.reply(ctx, chatID, msgButtonExpired)
		return state.Session{}, false
	}
	return sess, true
}

func draftOf[T state.Draft](sess state.Session) T {
	d, _ := sess.Draft.(T)
	return d
}

func (h *Handlers) textSteps() map[stepKey]textStep {
	return map[stepKey]textStep{
		{state.CommandSearchPayment, state.StepDueDate}:       h.paymentDueDate,
		{state.CommandSearchPayment, state.StepResponsible}:   h.paymentResponsible,
		{state.CommandRegisterPayment, state.StepDueDate}:     h.paymentDueDate,
		{state.CommandRegisterPayment, state.StepResponsible}: h.paymentResponsible,

		{state.CommandCreateSchedule, state.StepQuoteID}:         h.scheduleQuoteID,
		{state.CommandCreateSchedule, state.StepResponsibleName}: h.scheduleResponsible,
		{state.CommandCreateSchedule, state.StepDate}:            h.scheduleDate,
		{state.CommandCreateSchedule, state.StepTime}:            h.scheduleTime,
		{state.CommandCreateSchedule, state.StepDuration}:        h.scheduleDuration,
		{state.CommandCreateSchedule, state.StepLocation}:        h.scheduleLocation,
		{state.CommandCreateSchedule, state.StepDescription}:     h.scheduleDescription,
		{state.CommandCreateSchedule, state.StepNotes}:           h.scheduleNotes,

		{state.CommandCancelSchedule, state.StepDate}: h.lookupDate,
		{state.CommandCancelSchedule, state.StepTime}: h.cancelAtTime,
		{state.CommandChangeStatus, state.StepDate}:   h.lookupDate,
		{state.CommandChangeStatus, state.StepTime}:   h.changeStatusAtTime,
		{state.CommandReschedule, state.StepDate}:     h.rescheduleDate,
		{state.CommandReschedule, state.StepTime}:     h.rescheduleTime,

		{state.CommandListSchedule, state.StepSpecificDate}: h.listScheduleDate,

		{state.CommandAddExpense, state.StepAmount}:      h.expenseAmount,
		{state.CommandAddExpense, state.StepManualDate}:  h.expenseManualDate,
		{state.CommandAddExpense, state.StepDescription}: h.expenseDescription,
		{state.CommandListExpenses, state.StepRangeStart}: h.expenseRangeStart,
		{state.CommandListExpenses, state.StepRangeEnd}:   h.expenseRangeEnd,

		{state.CommandCreateQuote, state.StepClient}:       h.quoteClient,
		{state.CommandCreateQuote, state.StepDate}:         h.quoteDate,
		{state.CommandCreateQuote, state.StepTime}:         h.quoteTime,
		{state.CommandCreateQuote, state.StepChildren}:     h.quoteChildren,
		{state.CommandCreateQuote, state.StepDuration}:     h.quoteDuration,
		{state.CommandCreateQuote, state.StepStaffManual}:  h.quoteStaffManual,
		{state.CommandCreateQuote, state.StepTravelCost}:   h.quoteTravelCost,
		{state.CommandCreateQuote, state.StepDiscount}:     h.quoteDiscount,
		{state.CommandCreateQuote, state.StepAddress}:      h.quoteAddress,
		{state.CommandCreateQuote, state.StepComplement}:   h.quoteComplement,
		{state.CommandCreateQuote, state.StepNeighborhood}: h.quoteNeighborhood,
		{state.CommandCreateQuote, state.StepCity}:         h.quoteCity,
		{state.CommandCreateQuote, state.StepPhone}:        h.quotePhone,

		{state.CommandSendQuote, state.StepSearch}:   h.sendQuoteSearch,
		{state.CommandQuoteStatus, state.StepSearch}: h.quoteStatusSearch,

		{state.CommandMonthlyReport, state.StepMonth}: h.reportMonth,
	}
}
