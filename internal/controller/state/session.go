package state

// Command names a wizard. Values match the chat commands that start them.
type Command string

const (
	CommandSearchPayment   Command = "buscar_pagamento"
	CommandRegisterPayment Command = "registrar_pagamento"
	CommandCreateSchedule  Command = "criar_agendamento"
	CommandCancelSchedule  Command = "cancelar_agendamento"
	CommandChangeStatus    Command = "mudar_status"
	CommandReschedule      Command = "reagendar"
	CommandListSchedule    Command = "listar_agendamentos"
	CommandAddExpense      Command = "adicionar_despesa"
	CommandListExpenses    Command = "listar_despesas"
	CommandCreateQuote     Command = "criar_orcamento"
	CommandSendQuote       Command = "enviar_orcamento"
	CommandQuoteStatus     Command = "status_orcamento"
	CommandMonthlyReport   Command = "relatorio_mensal"
)

// Step names the input a session is waiting for.
type Step string

const (
	StepDueDate         Step = "vencimento"
	StepResponsible     Step = "responsavel"
	StepPaymentMethod   Step = "forma"
	StepScheduleType    Step = "tipo"
	StepLinkMode        Step = "vinculo"
	StepQuoteID         Step = "orcamento_id"
	StepResponsibleName Step = "responsavel_nome"
	StepDate            Step = "data"
	StepTime            Step = "horario"
	StepDuration        Step = "duracao"
	StepLocation        Step = "local"
	StepDescription     Step = "descricao"
	StepNotes           Step = "observacoes"
	StepStatus          Step = "status"
	StepSpecificDate    Step = "data_especifica"
	StepCategory        Step = "categoria"
	StepAmount          Step = "valor"
	StepDateChoice      Step = "data_escolha"
	StepManualDate      Step = "data_manual"
	StepExpenseMethod   Step = "forma_pagamento"
	StepRangeStart      Step = "inicio"
	StepRangeEnd        Step = "fim"
	StepClient          Step = "cliente"
	StepQuoteType       Step = "tipo_servico"
	StepChildren        Step = "criancas"
	StepStaff           Step = "recreadores"
	StepStaffManual     Step = "recreadores_manual"
	StepHoliday         Step = "feriado"
	StepTravelCost      Step = "deslocamento"
	StepDiscount        Step = "desconto"
	StepAddress         Step = "endereco"
	StepComplement      Step = "complemento"
	StepNeighborhood    Step = "bairro"
	StepCity            Step = "cidade"
	StepPhone           Step = "telefone"
	StepSearch          Step = "buscar"
	StepMonth           Step = "mes"
)

// Session is a chat's in-progress wizard. ID changes every time a wizard
// starts, so a handler that awaited I/O can tell whether its session was
// replaced in the meantime.
type Session struct {
	ID      string
	ChatID  int64
	Command Command
	Step    Step
	Draft   Draft
}

// Is reports whether the session runs cmd and waits at step.
func (s Session) Is(cmd Command, step Step) bool {
	return s.Command == cmd && s.Step == step
}

// Advance returns a copy moved to step with draft replaced.
func (s Session) Advance(step Step, draft Draft) Session {
	s.Step = step
	s.Draft = draft
	return s
}
