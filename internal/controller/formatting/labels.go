package formatting

import "github.com/recrearnolar/recrear_bot/internal/model"

// Display is how an enum value is shown in chat.
type Display struct {
	Emoji string
	Text  string
}

func (d Display) String() string {
	return d.Emoji + " " + d.Text
}

var unknown = Display{"❓", "Desconhecido"}

var scheduleTypes = map[model.ScheduleType]Display{
	model.ScheduleEvent:    {"🎉", "Evento"},
	model.ScheduleParty:    {"🎈", "Festa"},
	model.SchedulePackage:  {"📦", "Pacote"},
	model.SchedulePersonal: {"👤", "Pessoal"},
}

func ScheduleType(t model.ScheduleType) Display {
	if d, ok := scheduleTypes[t]; ok {
		return d
	}
	return Display{"📅", string(t)}
}

var scheduleStatuses = map[model.ScheduleStatus]Display{
	model.SchedulePending:   {"⏳", "Pendente"},
	model.ScheduleConfirmed: {"✅", "Confirmado"},
	model.ScheduleDone:      {"📌", "Concluído"},
	model.ScheduleCancelled: {"❌", "Cancelado"},
}

func ScheduleStatus(s model.ScheduleStatus) Display {
	if d, ok := scheduleStatuses[s]; ok {
		return d
	}
	return unknown
}

var expenseCategories = map[model.ExpenseCategory]Display{
	model.ExpenseLabor:       {"💼", "Pró-labore"},
	model.ExpenseFood:        {"🍔", "Alimentação"},
	model.ExpenseTransport:   {"🚗", "Transporte"},
	model.ExpenseMaterials:   {"📦", "Materiais"},
	model.ExpenseMarketing:   {"📢", "Marketing"},
	model.ExpenseEquipment:   {"🔧", "Equipamentos"},
	model.ExpenseRent:        {"🏢", "Aluguel"},
	model.ExpenseUtilities:   {"💡", "Água/Luz"},
	model.ExpensePhone:       {"📱", "Telefonia"},
	model.ExpenseTaxes:       {"📋", "Impostos"},
	model.ExpenseMaintenance: {"🛠️", "Manutenção"},
	model.ExpenseOutsourced:  {"👥", "Terceirizados"},
	model.ExpenseOther:       {"📌", "Outros"},
}

func ExpenseCategory(c model.ExpenseCategory) Display {
	if d, ok := expenseCategories[c]; ok {
		return d
	}
	return Display{"📌", string(c)}
}

var quoteStatuses = map[model.QuoteStatus]Display{
	model.QuoteDraft:     {"📝", "Rascunho"},
	model.QuoteSent:      {"📤", "Enviado"},
	model.QuoteApproved:  {"✅", "Aprovado"},
	model.QuoteDone:      {"🎉", "Concluído"},
	model.QuoteCancelled: {"❌", "Cancelado"},
}

func QuoteStatus(s model.QuoteStatus) Display {
	if d, ok := quoteStatuses[s]; ok {
		return d
	}
	return unknown
}

var quoteTypes = map[model.QuoteType]Display{
	model.QuoteParty: {"🎈", "Festa"},
	model.QuoteEvent: {"📅", "Evento"},
}

func QuoteType(t model.QuoteType) Display {
	if d, ok := quoteTypes[t]; ok {
		return d
	}
	return Display{"📅", string(t)}
}

var paymentMethods = map[model.PaymentMethod]Display{
	model.PaymentPix:      {"💳", "PIX"},
	model.PaymentCash:     {"💵", "Dinheiro"},
	model.PaymentCard:     {"💳", "Cartão"},
	model.PaymentCredit:   {"💳", "Cartão Crédito"},
	model.PaymentDebit:    {"💳", "Cartão Débito"},
	model.PaymentTransfer: {"🏦", "Transferência"},
}

func PaymentMethod(m model.PaymentMethod) Display {
	if d, ok := paymentMethods[m]; ok {
		return d
	}
	return Display{"💳", string(m)}
}
