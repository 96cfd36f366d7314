package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/controller/formatting"
	"github.com/recrearnolar/recrear_bot/internal/controller/state"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"go.uber.org/zap"
)

// StartSearchPayment handles /buscar_pagamento.
func (h *Handlers) StartSearchPayment(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandSearchPayment, state.StepDueDate, state.PaymentDraft{},
		plain("📅 Digite a data de vencimento (formato: DD/MM/AAAA):"))
}

// StartRegisterPayment handles /registrar_pagamento.
func (h *Handlers) StartRegisterPayment(ctx context.Context, chatID int64) {
	h.begin(ctx, chatID, state.CommandRegisterPayment, state.StepDueDate, state.PaymentDraft{},
		plain("📅 Digite a data de vencimento (formato: DD/MM/AAAA):"))
}

func (h *Handlers) paymentDueDate(ctx context.Context, sess state.Session, text string) {
	due, err := parseDate(text, h.loc)
	if err != nil {
		h.reply(ctx, sess.ChatID, msgInvalidDate)
		return
	}

	d := draftOf[state.PaymentDraft](sess)
	d.DueDate = due
	h.advance(ctx, sess, state.StepResponsible, d, plain("👤 Digite o nome do responsável:"))
}

func (h *Handlers) paymentResponsible(ctx context.Context, sess state.Session, text string) {
	d := draftOf[state.PaymentDraft](sess)

	found, err := h.payments.FindPackage(ctx, d.DueDate, text)
	if !h.current(sess) {
		return
	}
	switch {
	case errors.Is(err, service.ErrResponsibleNotFound):
		h.abort(ctx, sess, "❌ Responsável não encontrado.")
		return
	case errors.Is(err, service.ErrPackageNotFound):
		h.abort(ctx, sess, "❌ Pagamento não encontrado para esta data e responsável.")
		return
	case err != nil:
		h.logger.Error("Failed to find package", zap.Int64("chat_id", sess.ChatID), zap.Error(err))
		h.abort(ctx, sess, "❌ Erro ao buscar pagamento.")
		return
	}

	summary := h.formatPackage(found)
	if sess.Command == state.CommandRegisterPayment {
		if found.Package.IsPaid {
			h.send(ctx, sess.ChatID, markdown(summary+"\nℹ️ Este pagamento já está registrado."))
			h.finish(sess)
			return
		}
		d.PackageID = found.Package.ID
		h.advance(ctx, sess, state.StepPaymentMethod, d, chat.Message{
			Text:      summary + "\n💳 Selecione a forma de pagamento:",
			ParseMode: chat.ParseModeMarkdown,
			Keyboard:  packageMethodKeyboard(),
		})
		return
	}

	h.send(ctx, sess.ChatID, markdown(summary))
	h.finish(sess)
}

// OnPackageMethod handles pag_<method>.
func (h *Handlers) OnPackageMethod(ctx context.Context, chatID int64, arg string) {
	sess, ok := h.expect(ctx, chatID, state.CommandRegisterPayment, state.StepPaymentMethod)
	if !ok {
		return
	}

	method := model.PaymentMethod(arg)
	if !model.IsPackageMethod(method) {
		h.reply(ctx, chatID, "❌ Forma de pagamento inválida.")
		return
	}

	if !h.claim(sess) {
		return
	}

	d := draftOf[state.PaymentDraft](sess)
	if err := h.payments.RegisterPayment(ctx, d.PackageID, method); err != nil {
		h.logger.Error("Failed to register payment",
			zap.Int64("chat_id", chatID),
			zap.String("package_id", d.PackageID),
			zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao registrar pagamento.")
		return
	}

	h.reply(ctx, chatID, fmt.Sprintf("✅ Pagamento registrado com sucesso!\n💳 Forma: %s", formatting.PaymentMethod(method).Text))
}

// PendingPayments handles /pagamentos_pendentes.
func (h *Handlers) PendingPayments(ctx context.Context, chatID int64) {
	pending, err := h.payments.ListPending(ctx)
	if err != nil {
		h.logger.Error("Failed to list pending payments", zap.Int64("chat_id", chatID), zap.Error(err))
		h.reply(ctx, chatID, "❌ Erro ao buscar pagamentos pendentes.")
		return
	}
	if len(pending) == 0 {
		h.reply(ctx, chatID, "✅ Não há pagamentos pendentes!")
		return
	}

	var b strings.Builder
	b.WriteString("📋 *PAGAMENTOS PENDENTES*\n\n")
	var total float64
	for _, p := range pending {
		name := p.ResponsibleName
		if name == "" {
			name = "Desconhecido"
		}
		fmt.Fprintf(&b, "👤 %s\n", chat.EscapeMarkdown(name))
		fmt.Fprintf(&b, "📅 Vencimento: %s\n", formatting.Date(p.Package.DueDate.In(h.loc)))
		fmt.Fprintf(&b, "💰 Valor: %s\n", formatting.Currency(p.Package.Amount))
		fmt.Fprintf(&b, "📆 Mês: %s\n", chat.EscapeMarkdown(p.Package.ReferenceMonth))
		b.WriteString("---\n")
		total += p.Package.Amount
	}
	fmt.Fprintf(&b, "\n💵 *TOTAL PENDENTE: %s*", formatting.Currency(total))

	h.send(ctx, chatID, markdown(b.String()))
}

func (h *Handlers) formatPackage(found *service.PackageLookup) string {
	p := found.Package

	var b strings.Builder
	b.WriteString("📦 *PAGAMENTO ENCONTRADO*\n\n")
	fmt.Fprintf(&b, "👤 Responsável: %s\n", chat.EscapeMarkdown(found.Responsible.Name))
	fmt.Fprintf(&b, "📆 Mês: %s\n", chat.EscapeMarkdown(p.ReferenceMonth))
	fmt.Fprintf(&b, "💰 Valor: %s\n", formatting.Currency(p.Amount))
	fmt.Fprintf(&b, "📅 Vencimento: %s\n", formatting.Date(p.DueDate.In(h.loc)))
	if p.IsPaid {
		b.WriteString("✅ Pago: Sim\n")
		if p.Method != nil {
			fmt.Fprintf(&b, "💳 Forma: %s\n", formatting.PaymentMethod(*p.Method).Text)
		}
		if p.PaidAt != nil {
			fmt.Fprintf(&b, "🗓️ Pago em: %s\n", formatting.Date(p.PaidAt.In(h.loc)))
		}
	} else {
		b.WriteString("⏳ Pago: Não\n")
	}
	return b.String()
}
