package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/recrearnolar/recrear_bot/internal/controller/callbacks"
	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/controller/handlers"
	"go.uber.org/zap"
)

const (
	msgAccessDenied   = "🚫 *Acesso Negado*\n\nVocê não tem permissão para usar este bot.\n\nEntre em contato com o administrador."
	msgUnknownCommand = "❓ Comando desconhecido. Use /ajuda para ver os comandos disponíveis."
	msgStarted        = "🤖 Bot Recrear no Lar iniciado com sucesso!"
)

type command struct {
	name        string
	description string
	run         func(ctx context.Context, chatID int64)
}

// Dispatcher routes inbound chat events. Commands always start fresh,
// callback tokens go through the prefix router and any other text continues
// the chat's wizard.
type Dispatcher struct {
	handlers    *handlers.Handlers
	messenger   chat.Messenger
	commands    map[string]command
	menu        []chat.Command
	router      *callbacks.Router
	authorized  map[int64]struct{}
	adminChatID int64
	logger      *zap.Logger
}

// NewDispatcher builds the command and callback tables. An empty authorized
// list lets every user in.
func NewDispatcher(
	h *handlers.Handlers,
	messenger chat.Messenger,
	authorized []int64,
	adminChatID int64,
	logger *zap.Logger,
) *Dispatcher {
	d := &Dispatcher{
		handlers:    h,
		messenger:   messenger,
		commands:    make(map[string]command),
		authorized:  make(map[int64]struct{}, len(authorized)),
		adminChatID: adminChatID,
		logger:      logger,
	}
	for _, id := range authorized {
		d.authorized[id] = struct{}{}
	}
	if len(d.authorized) == 0 {
		logger.Warn("No authorized users configured, the bot is open to everyone")
	}

	d.registerCommands([]command{
		{"start", "🚀 Iniciar o bot", h.HandleStart},
		{"ajuda", "❓ Lista de comandos", h.HandleHelp},
		{"buscar_pagamento", "🔍 Buscar pagamento", h.StartSearchPayment},
		{"registrar_pagamento", "💰 Registrar pagamento", h.StartRegisterPayment},
		{"pagamentos_pendentes", "⏳ Pagamentos pendentes", h.PendingPayments},
		{"criar_agendamento", "📅 Criar agendamento", h.StartCreateSchedule},
		{"listar_agendamentos", "📋 Listar agendamentos", h.ListScheduleMenu},
		{"mudar_status", "📌 Alterar status de agendamento", h.StartChangeStatus},
		{"cancelar_agendamento", "❌ Cancelar agendamento", h.StartCancelSchedule},
		{"adicionar_despesa", "💸 Adicionar despesa", h.StartAddExpense},
		{"listar_despesas", "📄 Listar despesas", h.ListExpensesMenu},
		{"total_despesas", "🧮 Total de despesas", h.TotalExpensesMenu},
		{"criar_orcamento", "📝 Criar orçamento", h.StartCreateQuote},
		{"listar_orcamentos", "📊 Listar orçamentos", h.ListQuotesMenu},
		{"enviar_orcamento", "🔗 Link de orçamento", h.StartSendQuote},
		{"status_orcamento", "🔄 Status de orçamento", h.StartQuoteStatus},
		{"relatorio_mensal", "📈 Relatório mensal", h.StartMonthlyReport},
	})

	d.router = callbacks.NewRouter().
		// wizard steps
		Handle(callbacks.ScheduleType, h.OnScheduleType).
		Handle(callbacks.ScheduleLink, h.OnScheduleLink).
		Handle(callbacks.ScheduleStatus, h.OnScheduleStatus).
		Handle(callbacks.ExpenseCategory, h.OnExpenseCategory).
		Handle(callbacks.ExpenseDate, h.OnExpenseDate).
		Handle(callbacks.ExpenseMethod, h.OnExpenseMethod).
		Handle(callbacks.PackageMethod, h.OnPackageMethod).
		Handle(callbacks.QuoteType, h.OnQuoteType).
		Handle(callbacks.QuoteStaff, h.OnQuoteStaff).
		Handle(callbacks.QuoteHoliday, h.OnQuoteHoliday).
		// one-shot actions
		Handle(callbacks.ListSchedule, h.OnListSchedule).
		Handle(callbacks.ListExpenses, h.OnListExpenses).
		Handle(callbacks.TotalExpenses, h.OnTotalExpenses).
		Handle(callbacks.ListQuotes, h.OnListQuotes).
		Handle(callbacks.EditQuoteStatus, h.EditQuoteStatus).
		Handle(callbacks.SetQuoteStatus, h.SetQuoteStatus).
		Handle(callbacks.ConfirmEntry, h.ConfirmEntry).
		Handle(callbacks.CancelEntry, h.CancelEntry).
		Handle(callbacks.RescheduleEntry, h.RescheduleEntry)

	return d
}

func (d *Dispatcher) registerCommands(cmds []command) {
	for _, c := range cmds {
		d.commands[c.name] = c
		d.menu = append(d.menu, chat.Command{Name: c.name, Description: c.description})
	}
}

// Commands is the menu to register with the transport.
func (d *Dispatcher) Commands() []chat.Command {
	out := make([]chat.Command, len(d.menu))
	copy(out, d.menu)
	return out
}

// OnText handles a text message.
func (d *Dispatcher) OnText(ctx context.Context, chatID int64, from chat.User, text string) {
	defer d.recoverPanic(ctx, chatID)

	if !d.allowed(ctx, chatID, from) {
		return
	}

	name, ok := parseCommand(text)
	if !ok {
		d.handlers.HandleText(ctx, chatID, text)
		return
	}

	cmd, ok := d.commands[name]
	if !ok {
		d.logger.Debug("Unknown command", zap.Int64("chat_id", chatID), zap.String("command", name))
		d.send(ctx, chatID, chat.Message{Text: msgUnknownCommand})
		return
	}

	d.logger.Info("Command received",
		zap.Int64("chat_id", chatID),
		zap.Int64("user_id", from.ID),
		zap.String("command", name))
	cmd.run(ctx, chatID)
}

// OnCallback handles a button press.
func (d *Dispatcher) OnCallback(ctx context.Context, chatID int64, from chat.User, token string) {
	defer d.recoverPanic(ctx, chatID)

	if !d.allowed(ctx, chatID, from) {
		return
	}

	fn, arg, ok := d.router.Match(token)
	if !ok {
		d.logger.Warn("Unknown callback token", zap.Int64("chat_id", chatID), zap.String("token", token))
		return
	}

	d.logger.Debug("Callback received",
		zap.Int64("chat_id", chatID),
		zap.String("token", token))
	fn(ctx, chatID, arg)
}

// NotifyStartup tells the admin chat the bot is up.
func (d *Dispatcher) NotifyStartup(ctx context.Context) error {
	if d.adminChatID == 0 {
		return nil
	}
	return d.messenger.Send(ctx, d.adminChatID, chat.Message{Text: msgStarted})
}

func (d *Dispatcher) allowed(ctx context.Context, chatID int64, from chat.User) bool {
	if len(d.authorized) == 0 {
		return true
	}
	if _, ok := d.authorized[from.ID]; ok {
		return true
	}

	d.logger.Warn("Unauthorized access attempt",
		zap.Int64("user_id", from.ID),
		zap.String("username", from.Username),
		zap.Int64("chat_id", chatID))

	d.send(ctx, chatID, chat.Message{Text: msgAccessDenied, ParseMode: chat.ParseModeMarkdown})

	if d.adminChatID != 0 && d.adminChatID != chatID {
		notice := fmt.Sprintf("🚫 Tentativa de acesso não autorizado:\n\nNome: %s\nID: %d\nUsername: @%s",
			strings.TrimSpace(from.FirstName+" "+from.LastName), from.ID, from.Username)
		d.send(ctx, d.adminChatID, chat.Message{Text: notice})
	}
	return false
}

func (d *Dispatcher) recoverPanic(ctx context.Context, chatID int64) {
	if r := recover(); r != nil {
		d.logger.Error("Handler panicked",
			zap.Int64("chat_id", chatID),
			zap.Any("panic", r),
			zap.Stack("stack"))
		d.handlers.Failure(ctx, chatID)
	}
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, msg chat.Message) {
	if err := d.messenger.Send(ctx, chatID, msg); err != nil {
		d.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// parseCommand extracts "name" from "/name@bot args". Any text starting with
// "/" is a command; the name may come back empty.
func parseCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	name := strings.Fields(text)[0][1:]
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	return strings.ToLower(name), true
}
