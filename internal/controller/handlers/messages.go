package handlers

import (
	"context"

	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"go.uber.org/zap"
)

// Replies shared by several wizards.
const (
	msgInvalidDate    = "❌ Data inválida. Use o formato DD/MM/AAAA"
	msgInvalidTime    = "❌ Horário inválido. Use o formato HH:MM"
	msgInvalidAmount  = "❌ Valor inválido. Digite um número maior que zero (ex: 150,50)"
	msgInvalidNumber  = "❌ Valor inválido. Digite um número (ex: 150,50) ou 0"
	msgInvalidCount   = "❌ Quantidade inválida. Digite um número inteiro."
	msgEmptyField     = "❌ Este campo não pode ficar vazio. Digite novamente:"
	msgInvalidOption  = "❌ Opção inválida."
	msgButtonExpired  = "⚠️ Este botão expirou. Comece novamente pelo comando."
	msgUseButtons     = "👆 Selecione uma das opções nos botões acima."
	msgEntryNotFound  = "❌ Agendamento não encontrado."
	msgQuoteNotFound  = "❌ Orçamento não encontrado."
	msgGenericFailure = "❌ Ocorreu um erro. Tente novamente."

	promptDate = "📅 Digite a data (DD/MM/AAAA):"
	promptTime = "⏰ Digite o horário (HH:MM):"
)

func plain(text string) chat.Message {
	return chat.Message{Text: text}
}

func markdown(text string) chat.Message {
	return chat.Message{Text: text, ParseMode: chat.ParseModeMarkdown}
}

func markdownV2(text string) chat.Message {
	return chat.Message{Text: text, ParseMode: chat.ParseModeMarkdownV2}
}

func withButtons(text string, kb chat.Keyboard) chat.Message {
	return chat.Message{Text: text, Keyboard: kb}
}

// send delivers msg and logs if delivery failed.
func (h *Handlers) send(ctx context.Context, chatID int64, msg chat.Message) {
	if err := h.messenger.Send(ctx, chatID, msg); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (h *Handlers) reply(ctx context.Context, chatID int64, text string) {
	h.send(ctx, chatID, plain(text))
}

// Failure sends the generic failure reply. The dispatcher uses it after a
// recovered panic.
func (h *Handlers) Failure(ctx context.Context, chatID int64) {
	h.reply(ctx, chatID, msgGenericFailure)
}
