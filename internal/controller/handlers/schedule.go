package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/controller/formatting"
	"github.com/recrearnolar/recrear_bot/internal/controller/state"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"go.uber.org/zap"
)

// StartCreateSchedule handles /criar_agendamento.
func (h *Handlers) StartCreateSchedule(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandCreateSchedule, state.StepScheduleType, state.ScheduleDraft{},
		withButtons("Selecione o tipo de agendamento:", scheduleTypeKeyboard()))
}

// OnScheduleType handles ag_tipo_<type>.
func (h *Handlers) OnScheduleType(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandCreateSchedule, state.StepScheduleType)
	if !ok {
		return
	}

	typ := model.ScheduleType(arg)
	if !model.IsScheduleType(typ) {
		h.reply(ctx, chatID, msgInvalidOption)
		return
	}

	d := draftOf[state.ScheduleDraft](sess)
	d.Type = typ
	h.advance(ctx, sess, state.StepLinkMode, d,
		withButtons("Como deseja vincular o agendamento?", scheduleLinkKeyboard()))
}

// OnScheduleLink handles ag_vinc_<mode>.
func (h *Handlers) OnScheduleLink(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandCreateSchedule, state.StepLinkMode)
	if !ok {
		return
	}

	d := draftOf[state.ScheduleDraft](sess)
	d.Link = state.LinkMode(arg)
	switch d.Link {
	case state.LinkQuote:
		h.advance(ctx, sess, state.StepQuoteID, d, plain("🔢 Digite o ID do orçamento:"))
	case state.LinkResponsible:
		h.advance(ctx, sess, state.StepResponsibleName, d, plain("👤 Digite o nome do responsável:"))
	case state.LinkNone:
		h.advance(ctx, sess, state.StepDate, d, plain(promptDate))
	default:
		h.reply(ctx, chatID, msgInvalidOption)
	}
}

func (h *Handlers) scheduleQuoteID(ctx context.Context, sess state.Session, text string) {
	if err := uuid.Validate(text); err != nil {
		h.reply(ctx, sess.ChatID, "❌ ID de orçamento inválido. Confira e digite novamente:")
		return
	}

	quote, err := h.quotes.Get(ctx, text)
	if !h.current(sess) {
		return
	}
	if errors.Is(err, service.ErrQuoteNotFound) {
		h.abort(ctx, sess, msgQuoteNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to get quote", zap.String("quote_id", text), zap.Error(err))
		h.abort(ctx, sess, "❌ Erro ao buscar orçamento.")
		return
	}

	d := draftOf[state.ScheduleDraft](sess)
	d.QuoteID = &quote.ID
	h.advance(ctx, sess, state.StepDate, d, plain(promptDate))
}

func (h *Handlers) scheduleResponsible(ctx context.Context, sess state.Session, text string) {
	if text == "" {
		h.reply(ctx, sess.ChatID, msgEmptyField)
		return
	}

	responsible, err := h.schedule.FindResponsible(ctx, text)
	if !h.current(sess) {
		return
	}
	if errors.Is(err, service.ErrResponsibleNotFound) {
		h.abort(ctx, sess, "❌ Responsável não encontrado.")
		return
	}
	if err != nil {
		h.logger.Error("Failed to find responsible", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		h.abort(ctx, sess, "❌ Erro ao buscar responsável.")
		return
	}

	d := draftOf[state.ScheduleDraft](sess)
	d.ResponsibleID = &responsible.ID
	h.advance(ctx, sess, state.StepDate, d,
		plain(fmt.Sprintf("👤 Responsável: %s\n\n%s", responsible.Name, promptDate)))
}

func (h *Handlers) scheduleDate(ctx context.Context, sess state.Session, text string) {
	day, err := parseDate(text, h.loc)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidDate)
		return
	}
	d := draftOf[state.ScheduleDraft](sess)
	d.Date = day
	h.advance(ctx, sess, state.StepTime, d, plain(promptTime))
}

func (h *Handlers) scheduleTime(ctx context.Context, sess state.Session, text string) {
	clock, err := parseClock(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidTime)
		return
	}
	d := draftOf[state.ScheduleDraft](sess)
	d.Time = clock
	h.advance(ctx, sess, state.StepDuration, d, plain("⏱️ Duração em horas:"))
}

func (h *Handlers) scheduleDuration(ctx context.Context, sess state.Session, text string) {
	hours, err := parsePositive(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidAmount)
		return
	}
	d := draftOf[state.ScheduleDraft](sess)
	d.DurationHours = hours
	h.advance(ctx, sess, state.StepLocation, d, plain("📍 Digite o local:"))
}

func (h *Handlers) scheduleLocation(ctx context.Context, sess state.Session, text string) {
	if text == "" {
		h.reply(ctx, sess.ChatID, msgEmptyField)
		return
	}
	d := draftOf[state.ScheduleDraft](sess)
	d.Location = text
	h.advance(ctx, sess, state.StepDescription, d, plain("📝 Digite a descrição:"))
}

func (h *Handlers) scheduleDescription(ctx context.Context, sess state.Session, text string) {
	if text == "" {
		h.reply(ctx, sess.ChatID, msgEmptyField)
		return
	}
	d := draftOf[state.ScheduleDraft](sess)
	d.Description = text
	h.advance(ctx, sess, state.StepNotes, d, plain("💬 Observações (ou \"pular\"):"))
}

func (h *Handlers) scheduleNotes(ctx context.Context, sess state.Session, text string) {
	if !h.claim(sess) {
		return
	}

	d := draftOf[state.ScheduleDraft](sess)

	entry, err := h.schedule.Create(ctx, service.ScheduleInput{
		Type:          d.Type,
		QuoteID:       d.QuoteID,
		ResponsibleID: d.ResponsibleID,
		Date:          d.Date,
		Time:          d.Time,
		DurationHours: d.DurationHours,
		Location:      d.Location,
		Description:   d.Description,
		Notes:         optional(text),
	})
	if err != nil {
		h.logger.Error("Failed to create schedule entry", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		h.reply(ctx, sess.ChatID, "❌ Erro ao criar agendamento.")
		return
	}

	h.send(ctx, sess.ChatID, markdown("✅ *Agendamento criado com sucesso!*\n\n"+h.formatEntry(entry)))
}

// formatEntry renders one schedule entry for legacy Markdown.
func (h *Handlers) formatEntry(e *model.ScheduleEntry) string {
	typ := formatting.ScheduleType(e.Type)
	status := formatting.ScheduleStatus(e.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s* - %s às %s\n", typ.Emoji, strings.ToUpper(typ.Text), formatting.Date(e.Date.In(h.loc)), e.Time)
	fmt.Fprintf(&b, "📝 %s\n", chat.EscapeMarkdown(e.Description))
	fmt.Fprintf(&b, "📍 %s\n", chat.EscapeMarkdown(e.Location))
	fmt.Fprintf(&b, "⏱️ %s\n", formatting.Hours(e.DurationHours))
	if e.Notes != nil {
		fmt.Fprintf(&b, "💬 %s\n", chat.EscapeMarkdown(*e.Notes))
	}
	fmt.Fprintf(&b, "%s %s\n", status.Emoji, status.Text)
	return b.String()
}
