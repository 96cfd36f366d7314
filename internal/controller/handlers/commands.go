package handlers

import (
	"context"
)

// HandleStart handles /start.
func (h *Handlers) HandleStart(ctx context.Context, chatID int64) {
	h.send(ctx, chatID, markdown("🎉 *Bem-vindo ao Bot Recrear no Lar!*\n\n"+
		"Use /ajuda para ver todos os comandos disponíveis."))
}

// HandleHelp handles /ajuda. Sent as plain text since command names carry
// underscores.
func (h *Handlers) HandleHelp(ctx context.Context, chatID int64) {
	helpText := "📚 Comandos disponíveis:\n\n" +
		"💰 Pagamentos\n" +
		"/buscar_pagamento - Buscar pagamento de pacote\n" +
		"/registrar_pagamento - Registrar pagamento de pacote\n" +
		"/pagamentos_pendentes - Listar pagamentos pendentes\n\n" +
		"📅 Agendamentos\n" +
		"/criar_agendamento - Criar agendamento\n" +
		"/listar_agendamentos - Listar agendamentos\n" +
		"/mudar_status - Alterar status de agendamento\n" +
		"/cancelar_agendamento - Cancelar agendamento\n\n" +
		"💸 Despesas\n" +
		"/adicionar_despesa - Adicionar despesa\n" +
		"/listar_despesas - Listar despesas\n" +
		"/total_despesas - Total de despesas por categoria\n\n" +
		"📝 Orçamentos\n" +
		"/criar_orcamento - Criar orçamento\n" +
		"/listar_orcamentos - Listar orçamentos por status\n" +
		"/enviar_orcamento - Obter link de orçamento\n" +
		"/status_orcamento - Alterar status de orçamento\n\n" +
		"📊 Relatórios\n" +
		"/relatorio_mensal - Relatório financeiro do mês\n\n" +
		"/ajuda - Mostrar esta ajuda"

	h.reply(ctx, chatID, helpText)
}
