package handlers

import (
	"context"
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

// StartAddExpense handles /adicionar_despesa.
func (h *Handlers) StartAddExpense(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandAddExpense, state.StepCategory, state.ExpenseDraft{},
		withButtons("Selecione o tipo de despesa:", expenseCategoryKeyboard()))
}

// OnExpenseCategory handles desp_<category>.
func (h *Handlers) OnExpenseCategory(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandAddExpense, state.StepCategory)
	if !ok {
		return
	}

	category := model.ExpenseCategory(arg)
	if !model.IsExpenseCategory(category) {
		h.reply(ctx, chatID, "❌ Categoria inválida.")
		return
	}

	d := draftOf[state.ExpenseDraft](sess)
	d.Category = category
	h.advance(ctx, sess, state.StepAmount, d, plain("💰 Digite o valor da despesa (ex: 150,50):"))
}

func (h *Handlers) expenseAmount(ctx context.Context, sess state.Session, text string) {
	amount, err := parsePositive(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidAmount)
		return
	}
	d := draftOf[state.ExpenseDraft](sess)
	d.Amount = amount
	h.advance(ctx, sess, state.StepDateChoice, d, withButtons("Quando foi a despesa?", expenseDateKeyboard()))
}

// OnExpenseDate handles desp_data_hoje and desp_data_outra.
func (h *Handlers) OnExpenseDate(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandAddExpense, state.StepDateChoice)
	if !ok {
		return
	}

	d := draftOf[state.ExpenseDraft](sess)
	switch arg {
	case callbacks.ExpenseDateToday:
		d.Date = service.StartOfDay(h.now(), h.loc)
		h.advance(ctx, sess, state.StepDescription, d, plain("📝 Digite a descrição da despesa:"))
	case callbacks.ExpenseDateOther:
		h.advance(ctx, sess, state.StepManualDate, d, plain(promptDate))
	default:
		h.reply(ctx, chatID, msgInvalidOption)
	}
}

func (h *Handlers) expenseManualDate(ctx context.Context, sess state.Session, text string) {
	day, err := parseDate(text, h.loc)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidDate)
		return
	}
	d := draftOf[state.ExpenseDraft](sess)
	d.Date = day
	h.advance(ctx, sess, state.StepDescription, d, plain("📝 Digite a descrição da despesa:"))
}

func (h *Handlers) expenseDescription(ctx context.Context, sess state.Session, text string) {
	if text == "" {
		h.reply(ctx, sess.ChatID, msgEmptyField)
		return
	}
	d := draftOf[state.ExpenseDraft](sess)
	d.Description = text
	h.advance(ctx, sess, state.StepExpenseMethod, d,
		withButtons("Forma de pagamento (opcional):", expenseMethodKeyboard()))
}

// OnExpenseMethod handles desp_pag_<method> and desp_pag_pular, and stores
// the expense.
func (h *Handlers) OnExpenseMethod(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandAddExpense, state.StepExpenseMethod)
	if !ok {
		return
	}

	var method *model.PaymentMethod
	if arg != callbacks.SkipMethod {
		m := model.PaymentMethod(arg)
		if !model.IsExpenseMethod(m) {
			h.reply(ctx, chatID, "❌ Forma de pagamento inválida.")
			return
		}
		method = &m
	}

	if !h.claim(sess) {
		return
	}

	d := draftOf[state.ExpenseDraft](sess)
	expense, err := h.expenses.Create(ctx, service.ExpenseInput{
		Category:    d.Category,
		Amount:      d.Amount,
		Date:        d.Date,
		Description: d.Description,
		Method:      method,
	})
	if err != nil {
		h.logger.Error("Failed to create expense", zap.Int64("chat_id", chatID), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao adicionar despesa.")
		return
	}

	var b strings.Builder
	b.WriteString("✅ *Despesa adicionada com sucesso\\!*\n\n")
	b.WriteString(h.formatExpense(expense))
	h.send(ctx, chatID, markdownV2(b.String()))
}

// formatExpense renders one expense for MarkdownV2.
func (h *Handlers) formatExpense(e *model.Expense) string {
	category := formatting.ExpenseCategory(e.Category)

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n", category.Emoji, chat.EscapeMarkdownV2(category.Text))
	fmt.Fprintf(&b, "📝 %s\n", chat.EscapeMarkdownV2(e.Description))
	fmt.Fprintf(&b, "💰 %s\n", chat.EscapeMarkdownV2(formatting.Currency(e.Amount)))
	fmt.Fprintf(&b, "📅 %s\n", chat.EscapeMarkdownV2(formatting.Date(e.Date.In(h.loc))))
	if e.Method != nil {
		fmt.Fprintf(&b, "💳 %s\n", chat.EscapeMarkdownV2(formatting.PaymentMethod(*e.Method).Text))
	}
	return b.String()
}
