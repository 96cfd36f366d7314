package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recrearnolar/recrear_bot/internal/controller/callbacks"
	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/controller/formatting"
	"github.com/recrearnolar/recrear_bot/internal/controller/state"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"go.uber.org/zap"
)

var periodTitles = map[service.Period]string{
	service.PeriodToday: "HOJE",
	service.PeriodWeek:  "PRÓXIMOS 7 DIAS",
	service.PeriodMonth: "ESTE MÊS",
}

// ListScheduleMenu handles /listar_agendamentos.
func (h *Handlers) ListScheduleMenu(ctx context.Context, chatID int64) {
	h.send(ctx, chatID, withButtons("Selecione o período:", listScheduleKeyboard()))
}

// OnListSchedule handles list_ag_<period>.
func (h *Handlers) OnListSchedule(ctx context.Context, chatID int64, arg string) {
	if arg == callbacks.PeriodDate {
		h.begin(ctx, chatID, state.CommandListSchedule, state.StepSpecificDate, state.Empty{}, plain(promptDate))
		return
	}

	period := service.Period(arg)
	title, ok := periodTitles[period]
	if !ok {
		h.reply(ctx, chatID, "❌ Período inválido.")
		return
	}

	entries, err := h.schedule.ListPeriod(ctx, period)
	if err != nil {
		h.logger.Error("Failed to list schedule entries", zap.String("period", arg), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao listar agendamentos.")
		return
	}
	h.sendEntries(ctx, chatID, title, entries, "📭 Não há agendamentos para este período.")
}

func (h *Handlers) listScheduleDate(ctx context.Context, sess state.Session, text string) {
	day, err := parseDate(text, h.loc)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidDate)
		return
	}

	entries, err := h.schedule.ListDay(ctx, day)
	if err != nil {
		h.logger.Error("Failed to list schedule entries", zap.Time("day", day), zap.Error(err))
		h.abort(ctx, sess, "❌ Erro ao listar agendamentos.")
		return
	}
	h.sendEntries(ctx, sess.ChatID, formatting.Date(day), entries, "📭 Não há agendamentos para esta data.")
	h.finish(sess)
}

func (h *Handlers) sendEntries(ctx context.Context, chatID int64, title string, entries []*model.ScheduleEntry, empty string) {
	if len(entries) == 0 {
		h.reply(ctx, chatID, empty)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 *AGENDAMENTOS - %s*\n\n", title)
	for _, e := range entries {
		b.WriteString(h.formatEntry(e))
		b.WriteString("---\n")
	}
	h.send(ctx, chatID, markdown(b.String()))
}

// ListExpensesMenu handles /listar_despesas.
func (h *Handlers) ListExpensesMenu(ctx context.Context, chatID int64) {
	h.send(ctx, chatID, withButtons("Selecione o período:", listExpensesKeyboard()))
}

// OnListExpenses handles list_desp_<period>.
func (h *Handlers) OnListExpenses(ctx context.Context, chatID int64, arg string) {
	if arg == callbacks.PeriodCustom {
		h.begin(ctx, chatID, state.CommandListExpenses, state.StepRangeStart, state.DateRange{},
			plain("📅 Digite a data inicial (DD/MM/AAAA):"))
		return
	}

	period := service.Period(arg)
	title, ok := periodTitles[period]
	if !ok {
		h.reply(ctx, chatID, "❌ Período inválido.")
		return
	}

	summary, err := h.expenses.Period(ctx, period)
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.String("period", arg), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao listar despesas.")
		return
	}
	h.sendExpenses(ctx, chatID, title, summary)
}

func (h *Handlers) expenseRangeStart(ctx context.Context, sess state.Session, text string) {
	day, err := parseDate(text, h.loc)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidDate)
		return
	}
	h.advance(ctx, sess, state.StepRangeEnd, state.DateRange{Start: day},
		plain("📅 Digite a data final (DD/MM/AAAA):"))
}

func (h *Handlers) expenseRangeEnd(ctx context.Context, sess state.Session, text string) {
	day, err := parseDate(text, h.loc)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidDate)
		return
	}

	d := draftOf[state.DateRange](sess)
	summary, err := h.expenses.DateRange(ctx, d.Start, day)
	if errors.Is(err, service.ErrInvalidInput) {
		h.reply(ctx, sess.ChatID, "❌ A data final deve ser igual ou posterior à data inicial.")
		return
	}
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		h.abort(ctx, sess, "❌ Erro ao listar despesas.")
		return
	}

	title := formatting.Date(d.Start) + " A " + formatting.Date(day)
	h.sendExpenses(ctx, sess.ChatID, title, summary)
	h.finish(sess)
}

func (h *Handlers) sendExpenses(ctx context.Context, chatID int64, title string, summary *service.ExpenseSummary) {
	if len(summary.Expenses) == 0 {
		h.reply(ctx, chatID, "📭 Não há despesas para este período.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💸 *DESPESAS \\- %s*\n\n", chat.EscapeMarkdownV2(title))
	for _, e := range summary.Expenses {
		b.WriteString(h.formatExpense(e))
		b.WriteString("\\-\\-\\-\n")
	}
	fmt.Fprintf(&b, "\n💵 *TOTAL: %s*", chat.EscapeMarkdownV2(formatting.Currency(summary.Total)))
	h.send(ctx, chatID, markdownV2(b.String()))
}

// TotalExpensesMenu handles /total_despesas.
func (h *Handlers) TotalExpensesMenu(ctx context.Context, chatID int64) {
	h.send(ctx, chatID, withButtons("Selecione o período:", totalExpensesKeyboard()))
}

// OnTotalExpenses handles total_desp_<period>.
func (h *Handlers) OnTotalExpenses(ctx context.Context, chatID int64, arg string) {
	period := service.Period(arg)
	title, ok := periodTitles[period]
	if !ok {
		h.reply(ctx, chatID, "❌ Período inválido.")
		return
	}

	totals, sum, err := h.expenses.CategoryTotals(ctx, period)
	if err != nil {
		h.logger.Error("Failed to total expenses", zap.String("period", arg), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao calcular total de despesas.")
		return
	}
	if len(totals) == 0 {
		h.reply(ctx, chatID, "📭 Não há despesas para este período.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💸 *TOTAL DE DESPESAS - %s*\n\n", title)
	for _, t := range totals {
		c := formatting.ExpenseCategory(t.Category)
		fmt.Fprintf(&b, "%s %s: %s\n", c.Emoji, c.Text, formatting.Currency(t.Total))
	}
	fmt.Fprintf(&b, "\n💵 *TOTAL GERAL: %s*", formatting.Currency(sum))
	h.send(ctx, chatID, markdown(b.String()))
}

// ListQuotesMenu handles /listar_orcamentos.
func (h *Handlers) ListQuotesMenu(ctx context.Context, chatID int64) {
	h.send(ctx, chatID, withButtons("Filtrar por status:", listQuotesKeyboard()))
}

// OnListQuotes handles list_orc_<status> and list_orc_todos.
func (h *Handlers) OnListQuotes(ctx context.Context, chatID int64, arg string) {
	var status *model.QuoteStatus
	title := "TODOS"
	if arg != callbacks.AllQuotes {
		s := model.QuoteStatus(arg)
		if !model.IsQuoteStatus(s) {
			h.reply(ctx, chatID, "❌ Status inválido.")
			return
		}
		status = &s
		title = strings.ToUpper(formatting.QuoteStatus(s).Text)
	}

	quotes, err := h.quotes.ListByStatus(ctx, status)
	if err != nil {
		h.logger.Error("Failed to list quotes", zap.String("status", arg), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao listar orçamentos.")
		return
	}
	if len(quotes) == 0 {
		h.reply(ctx, chatID, "📭 Não há orçamentos nesta categoria.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *ORÇAMENTOS \\- %s*\n\n", chat.EscapeMarkdownV2(title))
	for _, q := range quotes {
		b.WriteString(h.formatQuoteV2(q))
		b.WriteString("\\-\\-\\-\n")
	}
	h.send(ctx, chatID, markdownV2(b.String()))
}

func (h *Handlers) formatQuoteV2(q *model.Quote) string {
	typ := formatting.QuoteType(q.Type)
	status := formatting.QuoteStatus(q.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "📝 *%s*\n", chat.EscapeMarkdownV2(q.Client))
	fmt.Fprintf(&b, "%s %s\n", typ.Emoji, chat.EscapeMarkdownV2(strings.ToUpper(typ.Text)))
	fmt.Fprintf(&b, "📅 %s às %s\n", chat.EscapeMarkdownV2(formatting.Date(q.EventDate.In(h.loc))), chat.EscapeMarkdownV2(q.Time))
	fmt.Fprintf(&b, "💰 %s\n", chat.EscapeMarkdownV2(formatting.Currency(q.FinalValue)))
	fmt.Fprintf(&b, "📍 %s\n", chat.EscapeMarkdownV2(q.Address))
	fmt.Fprintf(&b, "%s %s\n", status.Emoji, chat.EscapeMarkdownV2(status.Text))
	fmt.Fprintf(&b, "🆔 `%s`\n", q.ID)
	return b.String()
}
