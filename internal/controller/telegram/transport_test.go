package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineKeyboard(t *testing.T) {
	kb := chat.NewBuilder().
		Row(chat.CallbackButton("Sim", "orc_fds_sim"), chat.CallbackButton("Não", "orc_fds_nao")).
		Row(chat.URLButton("🔗 Abrir orçamento", "https://office.test/orcamento/1")).
		Build()

	markup := inlineKeyboard(kb)

	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "Sim", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "orc_fds_sim", markup.InlineKeyboard[0][0].CallbackData)
	assert.Empty(t, markup.InlineKeyboard[0][0].URL)

	link := markup.InlineKeyboard[1][0]
	assert.Equal(t, "https://office.test/orcamento/1", link.URL)
	assert.Empty(t, link.CallbackData)
}

func TestCallbackChatID(t *testing.T) {
	from := models.User{ID: 7}

	withMessage := &models.CallbackQuery{
		From:    from,
		Message: models.MaybeInaccessibleMessage{Message: &models.Message{Chat: models.Chat{ID: -100}}},
	}
	assert.Equal(t, int64(-100), callbackChatID(withMessage))

	inaccessible := &models.CallbackQuery{
		From:    from,
		Message: models.MaybeInaccessibleMessage{InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: -200}}},
	}
	assert.Equal(t, int64(-200), callbackChatID(inaccessible))

	assert.Equal(t, int64(7), callbackChatID(&models.CallbackQuery{From: from}))
}

func TestUserOf(t *testing.T) {
	u := userOf(models.User{ID: 3, Username: "ana", FirstName: "Ana", LastName: "Lima"})
	assert.Equal(t, chat.User{ID: 3, Username: "ana", FirstName: "Ana", LastName: "Lima"}, u)
}
