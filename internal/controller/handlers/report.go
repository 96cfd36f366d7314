package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/controller/formatting"
	"github.com/recrearnolar/recrear_bot/internal/controller/state"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"go.uber.org/zap"
)

// StartMonthlyReport handles /relatorio_mensal.
func (h *Handlers) StartMonthlyReport(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandMonthlyReport, state.StepMonth, state.Empty{},
		plain("📅 Digite o mês/ano (formato: MM/AAAA):"))
}

func (h *Handlers) reportMonth(ctx context.Context, sess state.Session, text string) {
	year, month, err := parseMonth(text)
	if err != nil {
		h.reply(ctx, sess.ChatID, "❌ Formato inválido. Use MM/AAAA")
		return
	}

	// The report is read only, so the wizard ends before the queries run.
	h.finish(sess)
	h.SendMonthlyReport(ctx, sess.ChatID, year, month)
}

// SendMonthlyReport builds and sends the report for one month.
func (h *Handlers) SendMonthlyReport(ctx context.Context, chatID int64, year int, month time.Month) {
	report, err := h.reports.Monthly(ctx, year, month)
	if err != nil {
		h.logger.Error("Failed to build monthly report",
			zap.Int("year", year),
			zap.Int("month", int(month)),
			zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao gerar relatório mensal.")
		return
	}
	h.send(ctx, chatID, markdown(formatReport(report)))
}

func formatReport(r *service.MonthlyReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *RELATÓRIO - %s*\n\n", formatting.MonthYearUpper(r.Year, r.Month))

	b.WriteString("💰 *RECEITAS*\n")
	fmt.Fprintf(&b, "├─ Orçamentos pagos: %s\n", formatting.Currency(r.QuoteRevenue))
	fmt.Fprintf(&b, "├─ Pacotes pagos: %s\n", formatting.Currency(r.PackageIncome))
	fmt.Fprintf(&b, "└─ *TOTAL RECEITAS: %s*\n\n", formatting.Currency(r.Revenue()))

	b.WriteString("💸 *DESPESAS*\n")
	if len(r.Expenses) == 0 {
		b.WriteString("├─ Nenhuma despesa registrada\n")
	}
	for _, t := range r.Expenses {
		c := formatting.ExpenseCategory(t.Category)
		fmt.Fprintf(&b, "├─ %s %s: %s\n", c.Emoji, c.Text, formatting.Currency(t.Total))
	}
	fmt.Fprintf(&b, "└─ *TOTAL DESPESAS: %s*\n\n", formatting.Currency(r.TotalExpenses))

	fmt.Fprintf(&b, "💵 *SALDO DO MÊS: %s*\n", formatting.Currency(r.Balance()))
	switch balance := r.Balance(); {
	case balance > 0:
		fmt.Fprintf(&b, "🟢 Lucro de %s%%", formatting.Percent(r.Margin()))
	case balance < 0:
		fmt.Fprintf(&b, "🔴 Prejuízo de %s%%", formatting.Percent(-r.Margin()))
	default:
		b.WriteString("⚪ Empatou no mês")
	}
	return b.String()
}
