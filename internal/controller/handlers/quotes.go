package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/recrearnolar/recrear_bot/internal/controller/callbacks"
	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/controller/formatting"
	"github.com/recrearnolar/recrear_bot/internal/controller/state"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"go.uber.org/zap"
)

const promptQuoteSearch = "🔍 Digite o nome do cliente para buscar o orçamento:"

// StartCreateQuote handles /criar_orcamento.
func (h *Handlers) StartCreateQuote(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandCreateQuote, state.StepClient, state.QuoteDraft{},
		plain("👤 Digite o nome do cliente:"))
}

func (h *Handlers) quoteClient(ctx context.Context, sess state.Session, text string) {
	if text == "" {
		h.reply(ctx, sess.ChatID, msgEmptyField)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.Client = text
	h.advance(ctx, sess, state.StepQuoteType, d, withButtons("Tipo de serviço:", quoteTypeKeyboard()))
}

// OnQuoteType handles orc_tipo_<type>.
func (h *Handlers) OnQuoteType(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandCreateQuote, state.StepQuoteType)
	if !ok {
		return
	}

	typ := model.QuoteType(arg)
	if typ != model.QuoteParty && typ != model.QuoteEvent {
		h.reply(ctx, chatID, msgInvalidOption)
		return
	}

	d := draftOf[state.QuoteDraft](sess)
	d.Type = typ
	h.advance(ctx, sess, state.StepDate, d, plain("📅 Digite a data do evento (DD/MM/AAAA):"))
}

func (h *Handlers) quoteDate(ctx context.Context, sess state.Session, text string) {
	day, err := parseDate(text, h.loc)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidDate)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.EventDate = day
	h.advance(ctx, sess, state.StepTime, d, plain(promptTime))
}

func (h *Handlers) quoteTime(ctx context.Context, sess state.Session, text string) {
	clock, err := parseClock(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidTime)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.Time = clock
	h.advance(ctx, sess, state.StepChildren, d, plain("👶 Quantidade de crianças:"))
}

func (h *Handlers) quoteChildren(ctx context.Context, sess state.Session, text string) {
	children, err := parseCount(text, 0)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidCount)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.Children = children
	h.advance(ctx, sess, state.StepDuration, d, plain("⏱️ Duração em horas (ex: 2 ou 1,5):"))
}

func (h *Handlers) quoteDuration(ctx context.Context, sess state.Session, text string) {
	hours, err := parsePositive(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidAmount)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.DurationHours = hours
	h.advance(ctx, sess, state.StepStaff, d, withButtons("Quantidade de recreadores:", quoteStaffKeyboard()))
}

// OnQuoteStaff handles orc_rec_<n> and orc_rec_outro.
func (h *Handlers) OnQuoteStaff(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandCreateQuote, state.StepStaff)
	if !ok {
		return
	}

	d := draftOf[state.QuoteDraft](sess)
	if arg == callbacks.StaffOther {
		h.advance(ctx, sess, state.StepStaffManual, d, plain("👥 Digite a quantidade de recreadores:"))
		return
	}

	staff, err := strconv.Atoi(arg)
	if err != nil || staff < 1 {
		h.reply(ctx, chatID, msgInvalidOption)
		return
	}
	d.Staff = staff
	h.advance(ctx, sess, state.StepHoliday, d, withButtons("É feriado ou fim de semana?", quoteHolidayKeyboard()))
}

func (h *Handlers) quoteStaffManual(ctx context.Context, sess state.Session, text string) {
	staff, err := parseCount(text, 1)
	if err != nil {
		h.reply(ctx, sess.ChatID, "❌ Quantidade inválida. Digite um número inteiro maior que zero.")
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.Staff = staff
	h.advance(ctx, sess, state.StepHoliday, d, withButtons("É feriado ou fim de semana?", quoteHolidayKeyboard()))
}

// OnQuoteHoliday handles orc_fds_sim and orc_fds_nao.
func (h *Handlers) OnQuoteHoliday(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandCreateQuote, state.StepHoliday)
	if !ok {
		return
	}

	d := draftOf[state.QuoteDraft](sess)
	switch arg {
	case callbacks.HolidayYes:
		d.HolidayOrWeekend = true
	case callbacks.HolidayNo:
		d.HolidayOrWeekend = false
	default:
		h.reply(ctx, chatID, msgInvalidOption)
		return
	}
	h.advance(ctx, sess, state.StepTravelCost, d, plain("🚗 Custo de deslocamento (ou 0):"))
}

func (h *Handlers) quoteTravelCost(ctx context.Context, sess state.Session, text string) {
	cost, err := parseOrZero(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidNumber)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.TravelCost = cost
	h.advance(ctx, sess, state.StepDiscount, d, plain("💰 Desconto (ou 0):"))
}

func (h *Handlers) quoteDiscount(ctx context.Context, sess state.Session, text string) {
	discount, err := parseOrZero(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidNumber)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.Discount = discount
	h.advance(ctx, sess, state.StepAddress, d, plain("📍 Digite o endereço:"))
}

func (h *Handlers) quoteAddress(ctx context.Context, sess state.Session, text string) {
	if text == "" {
		h.reply(ctx, sess.ChatID, msgEmptyField)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.Address = text
	h.advance(ctx, sess, state.StepComplement, d, plain("📍 Complemento (ou \"pular\"):"))
}

func (h *Handlers) quoteComplement(ctx context.Context, sess state.Session, text string) {
	d := draftOf[state.QuoteDraft](sess)
	d.Complement = optional(text)
	h.advance(ctx, sess, state.StepNeighborhood, d, plain("🏘️ Bairro:"))
}

func (h *Handlers) quoteNeighborhood(ctx context.Context, sess state.Session, text string) {
	if text == "" {
		h.reply(ctx, sess.ChatID, msgEmptyField)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.Neighborhood = text
	h.advance(ctx, sess, state.StepCity, d, plain("🏙️ Cidade:"))
}

func (h *Handlers) quoteCity(ctx context.Context, sess state.Session, text string) {
	if text == "" {
		h.reply(ctx, sess.ChatID, msgEmptyField)
		return
	}
	d := draftOf[state.QuoteDraft](sess)
	d.City = text
	h.advance(ctx, sess, state.StepPhone, d, plain("📱 Telefone (opcional, ou \"pular\"):"))
}

func (h *Handlers) quotePhone(ctx context.Context, sess state.Session, text string) {
	if !h.claim(sess) {
		return
	}

	d := draftOf[state.QuoteDraft](sess)

	quote, err := h.quotes.Create(ctx, service.QuoteInput{
		Client:           d.Client,
		Type:             d.Type,
		EventDate:        d.EventDate,
		Time:             d.Time,
		Children:         d.Children,
		Staff:            d.Staff,
		DurationHours:    d.DurationHours,
		HolidayOrWeekend: d.HolidayOrWeekend,
		TravelCost:       d.TravelCost,
		Discount:         d.Discount,
		Address:          d.Address,
		Complement:       d.Complement,
		Neighborhood:     d.Neighborhood,
		City:             d.City,
		Phone:            optional(text),
	})
	if err != nil {
		h.logger.Error("Failed to create quote", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		h.reply(ctx, sess.ChatID, "❌ Erro ao criar orçamento.")
		return
	}

	var b strings.Builder
	b.WriteString("✅ *Orçamento criado com sucesso!*\n\n")
	fmt.Fprintf(&b, "👤 Cliente: %s\n", chat.EscapeMarkdown(quote.Client))
	fmt.Fprintf(&b, "📅 Data: %s\n", formatting.Date(quote.EventDate.In(h.loc)))
	fmt.Fprintf(&b, "⏰ Horário: %s\n", quote.Time)
	fmt.Fprintf(&b, "💰 Valor: %s\n", formatting.Currency(quote.FinalValue))
	fmt.Fprintf(&b, "🆔 ID: `%s`\n", quote.ID)

	link := h.quotes.Link(quote.ID)
	h.send(ctx, sess.ChatID, chat.Message{
		Text:      b.String(),
		ParseMode: chat.ParseModeMarkdown,
		Keyboard:  chat.NewBuilder().Row(chat.URLButton("🔗 Abrir orçamento", link)).Build(),
	})
}

// StartSendQuote handles /enviar_orcamento.
func (h *Handlers) StartSendQuote(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandSendQuote, state.StepSearch, state.Empty{}, plain(promptQuoteSearch))
}

func (h *Handlers) sendQuoteSearch(ctx context.Context, sess state.Session, text string) {
	quotes, ok := h.searchQuotes(ctx, sess, text)
	if !ok {
		return
	}

	if len(quotes) == 1 {
		h.reply(ctx, sess.ChatID, "🔗 Link do orçamento:\n"+h.quotes.Link(quotes[0].ID))
		h.finish(sess)
		return
	}

	var b strings.Builder
	b.WriteString("📋 *Orçamentos encontrados:*\n\n")
	for _, q := range quotes {
		fmt.Fprintf(&b, "👤 %s - %s\n", chat.EscapeMarkdown(q.Client), formatting.Date(q.EventDate.In(h.loc)))
		fmt.Fprintf(&b, "💰 %s\n", formatting.Currency(q.FinalValue))
		fmt.Fprintf(&b, "🔗 %s\n\n", h.quotes.Link(q.ID))
	}
	h.send(ctx, sess.ChatID, markdown(b.String()))
	h.finish(sess)
}

// StartQuoteStatus handles /status_orcamento.
func (h *Handlers) StartQuoteStatus(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandQuoteStatus, state.StepSearch, state.Empty{}, plain(promptQuoteSearch))
}

// quoteStatusSearch lists matching quotes as buttons. The buttons carry the
// quote id, so the wizard ends here.
func (h *Handlers) quoteStatusSearch(ctx context.Context, sess state.Session, text string) {
	quotes, ok := h.searchQuotes(ctx, sess, text)
	if !ok {
		return
	}

	buttons := make([]chat.Button, 0, len(quotes))
	for _, q := range quotes {
		label := fmt.Sprintf("%s - %s (%s)", q.Client, formatting.Date(q.EventDate.In(h.loc)), formatting.QuoteStatus(q.Status).Text)
		buttons = append(buttons, chat.CallbackButton(label, callbacks.Build(callbacks.EditQuoteStatus, q.ID)))
	}
	h.send(ctx, sess.ChatID, withButtons("📌 Selecione o orçamento para editar o status:",
		chat.NewBuilder().Column(buttons...).Build()))
	h.finish(sess)
}

func (h *Handlers) searchQuotes(ctx context.Context, sess state.Session, text string) ([]*model.Quote, bool) {
	if text == "" {
		h.reply(ctx, sess.ChatID, msgEmptyField)
		return nil, false
	}

	quotes, err := h.quotes.SearchByClient(ctx, text)
	if !h.current(sess) {
		return nil, false
	}
	if errors.Is(err, service.ErrQuoteNotFound) {
		h.abort(ctx, sess, "❌ Nenhum orçamento encontrado para este cliente.")
		return nil, false
	}
	if err != nil {
		h.logger.Error("Failed to search quotes", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		h.abort(ctx, sess, "❌ Erro ao buscar orçamento.")
		return nil, false
	}
	return quotes, true
}

// EditQuoteStatus handles editar_status:<id>.
func (h *Handlers) EditQuoteStatus(ctx context.Context, chatID int64, quoteID string) {
	quote, err := h.quotes.Get(ctx, quoteID)
	if errors.Is(err, service.ErrQuoteNotFound) {
		h.reply(ctx, chatID, msgQuoteNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to get quote", zap.String("quote_id", quoteID), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao buscar orçamento.")
		return
	}

	text := fmt.Sprintf("📄 %s - %s\nStatus atual: %s\n\n🔄 Escolha o novo status para este orçamento:",
		quote.Client, formatting.Date(quote.EventDate.In(h.loc)), formatting.QuoteStatus(quote.Status))
	h.send(ctx, chatID, withButtons(text, quoteStatusKeyboard(quote.ID)))
}

// SetQuoteStatus handles status:<id>:<status>.
func (h *Handlers) SetQuoteStatus(ctx context.Context, chatID int64, arg string) {
	quoteID, raw, err := callbacks.ParseSetQuoteStatus(arg)
	if err != nil {
		h.reply(ctx, chatID, "❌ Status inválido.")
		return
	}

	status := model.QuoteStatus(raw)
	err = h.quotes.UpdateStatus(ctx, quoteID, status)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		h.reply(ctx, chatID, "❌ Status inválido.")
		return
	case errors.Is(err, service.ErrQuoteNotFound):
		h.reply(ctx, chatID, msgQuoteNotFound)
		return
	case err != nil:
		h.logger.Error("Failed to update quote status", zap.String("quote_id", quoteID), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao atualizar status.")
		return
	}

	h.send(ctx, chatID, markdown(fmt.Sprintf("✅ Status do orçamento atualizado para *%s*", status)))
}
