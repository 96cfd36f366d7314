package handlers

import (
	"github.com/recrearnolar/recrear_bot/internal/controller/callbacks"
	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/controller/formatting"
	"github.com/recrearnolar/recrear_bot/internal/model"
)

// grid lays buttons out perRow to a row.
func grid(perRow int, buttons ...chat.Button) chat.Keyboard {
	b := chat.NewBuilder()
	for start := 0; start < len(buttons); start += perRow {
		end := min(start+perRow, len(buttons))
		b.Row(buttons[start:end]...)
	}
	return b.Build()
}

func scheduleTypeKeyboard() chat.Keyboard {
	buttons := make([]chat.Button, 0, len(model.ScheduleTypes))
	for _, t := range model.ScheduleTypes {
		buttons = append(buttons, chat.CallbackButton(
			formatting.ScheduleType(t).String(),
			callbacks.Build(callbacks.ScheduleType, string(t))))
	}
	return grid(2, buttons...)
}

func scheduleLinkKeyboard() chat.Keyboard {
	return chat.NewBuilder().Column(
		chat.CallbackButton("🔢 Por Orçamento", callbacks.Build(callbacks.ScheduleLink, "orcamento")),
		chat.CallbackButton("👤 Por Responsável", callbacks.Build(callbacks.ScheduleLink, "responsavel")),
		chat.CallbackButton("📌 Sem vínculo", callbacks.Build(callbacks.ScheduleLink, "nenhum")),
	).Build()
}

func scheduleStatusKeyboard() chat.Keyboard {
	buttons := make([]chat.Button, 0, len(model.ScheduleStatuses))
	for _, s := range model.ScheduleStatuses {
		buttons = append(buttons, chat.CallbackButton(
			formatting.ScheduleStatus(s).String(),
			callbacks.Build(callbacks.ScheduleStatus, string(s))))
	}
	return grid(2, buttons...)
}

func packageMethodKeyboard() chat.Keyboard {
	buttons := make([]chat.Button, 0, len(model.PackageMethods))
	for _, m := range model.PackageMethods {
		buttons = append(buttons, chat.CallbackButton(
			formatting.PaymentMethod(m).String(),
			callbacks.Build(callbacks.PackageMethod, string(m))))
	}
	return grid(2, buttons...)
}

func expenseCategoryKeyboard() chat.Keyboard {
	buttons := make([]chat.Button, 0, len(model.ExpenseCategories))
	for _, c := range model.ExpenseCategories {
		buttons = append(buttons, chat.CallbackButton(
			formatting.ExpenseCategory(c).String(),
			callbacks.Build(callbacks.ExpenseCategory, string(c))))
	}
	return grid(2, buttons...)
}

func expenseDateKeyboard() chat.Keyboard {
	return grid(2,
		chat.CallbackButton("📅 Hoje", callbacks.Build(callbacks.ExpenseDate, callbacks.ExpenseDateToday)),
		chat.CallbackButton("🗓️ Outra data", callbacks.Build(callbacks.ExpenseDate, callbacks.ExpenseDateOther)),
	)
}

func expenseMethodKeyboard() chat.Keyboard {
	buttons := make([]chat.Button, 0, len(model.ExpenseMethods)+1)
	for _, m := range model.ExpenseMethods {
		buttons = append(buttons, chat.CallbackButton(
			formatting.PaymentMethod(m).String(),
			callbacks.Build(callbacks.ExpenseMethod, string(m))))
	}
	buttons = append(buttons, chat.CallbackButton("⏭️ Pular", callbacks.Build(callbacks.ExpenseMethod, callbacks.SkipMethod)))
	return grid(2, buttons...)
}

func quoteTypeKeyboard() chat.Keyboard {
	return grid(2,
		chat.CallbackButton(formatting.QuoteType(model.QuoteParty).String(), callbacks.Build(callbacks.QuoteType, string(model.QuoteParty))),
		chat.CallbackButton(formatting.QuoteType(model.QuoteEvent).String(), callbacks.Build(callbacks.QuoteType, string(model.QuoteEvent))),
	)
}

func quoteStaffKeyboard() chat.Keyboard {
	return grid(4,
		chat.CallbackButton("1", callbacks.Build(callbacks.QuoteStaff, "1")),
		chat.CallbackButton("2", callbacks.Build(callbacks.QuoteStaff, "2")),
		chat.CallbackButton("3", callbacks.Build(callbacks.QuoteStaff, "3")),
		chat.CallbackButton("Outro", callbacks.Build(callbacks.QuoteStaff, callbacks.StaffOther)),
	)
}

func quoteHolidayKeyboard() chat.Keyboard {
	return grid(2,
		chat.CallbackButton("✅ Sim", callbacks.Build(callbacks.QuoteHoliday, callbacks.HolidayYes)),
		chat.CallbackButton("❌ Não", callbacks.Build(callbacks.QuoteHoliday, callbacks.HolidayNo)),
	)
}

// quoteStatusKeyboard offers every quote status for one quote.
func quoteStatusKeyboard(quoteID string) chat.Keyboard {
	buttons := make([]chat.Button, 0, len(model.QuoteStatuses))
	for _, s := range model.QuoteStatuses {
		buttons = append(buttons, chat.CallbackButton(
			formatting.QuoteStatus(s).String(),
			callbacks.BuildSetQuoteStatus(quoteID, string(s))))
	}
	return chat.NewBuilder().Column(buttons...).Build()
}

func reminderKeyboard(entryID string) chat.Keyboard {
	return chat.NewBuilder().Row(
		chat.CallbackButton("✅ Confirmar", callbacks.Build(callbacks.ConfirmEntry, entryID)),
		chat.CallbackButton("📅 Reagendar", callbacks.Build(callbacks.RescheduleEntry, entryID)),
		chat.CallbackButton("❌ Cancelar", callbacks.Build(callbacks.CancelEntry, entryID)),
	).Build()
}

func listScheduleKeyboard() chat.Keyboard {
	return chat.NewBuilder().Column(
		chat.CallbackButton("📅 Hoje", callbacks.Build(callbacks.ListSchedule, "hoje")),
		chat.CallbackButton("📆 Próximos 7 dias", callbacks.Build(callbacks.ListSchedule, "semana")),
		chat.CallbackButton("🗓️ Data específica", callbacks.Build(callbacks.ListSchedule, callbacks.PeriodDate)),
	).Build()
}

func listExpensesKeyboard() chat.Keyboard {
	return chat.NewBuilder().Column(
		chat.CallbackButton("📅 Hoje", callbacks.Build(callbacks.ListExpenses, "hoje")),
		chat.CallbackButton("📆 Próximos 7 dias", callbacks.Build(callbacks.ListExpenses, "semana")),
		chat.CallbackButton("🗓️ Este mês", callbacks.Build(callbacks.ListExpenses, "mes")),
		chat.CallbackButton("📊 Período personalizado", callbacks.Build(callbacks.ListExpenses, callbacks.PeriodCustom)),
	).Build()
}

func totalExpensesKeyboard() chat.Keyboard {
	return chat.NewBuilder().Column(
		chat.CallbackButton("📅 Hoje", callbacks.Build(callbacks.TotalExpenses, "hoje")),
		chat.CallbackButton("📆 Próximos 7 dias", callbacks.Build(callbacks.TotalExpenses, "semana")),
		chat.CallbackButton("🗓️ Este mês", callbacks.Build(callbacks.TotalExpenses, "mes")),
	).Build()
}

func listQuotesKeyboard() chat.Keyboard {
	buttons := make([]chat.Button, 0, len(model.QuoteStatuses)+1)
	for _, s := range []model.QuoteStatus{model.QuoteDraft, model.QuoteSent, model.QuoteApproved, model.QuoteDone, model.QuoteCancelled} {
		buttons = append(buttons, chat.CallbackButton(
			formatting.QuoteStatus(s).String(),
			callbacks.Build(callbacks.ListQuotes, string(s))))
	}
	buttons = append(buttons, chat.CallbackButton("📋 Todos", callbacks.Build(callbacks.ListQuotes, callbacks.AllQuotes)))
	return grid(2, buttons...)
}
