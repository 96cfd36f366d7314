package telebot

import (
	"testing"

	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func TestCallbackToken(t *testing.T) {
	tests := []struct {
		name string
		cb   tele.Callback
		want string
	}{
		{"raw", tele.Callback{Data: "desp_pag_pix"}, "desp_pag_pix"},
		{"form feed", tele.Callback{Data: "\fag_conf_abc"}, "ag_conf_abc"},
		{"unique only", tele.Callback{Unique: "list_orc_todos"}, "list_orc_todos"},
		{"unique and data", tele.Callback{Unique: "status:abc", Data: "x"}, "status:abc|x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, callbackToken(&tt.cb))
		})
	}
}

func TestReplyMarkup(t *testing.T) {
	kb := chat.NewBuilder().
		Column(chat.CallbackButton("✅ Confirmar", "ag_conf_1"), chat.URLButton("🔗 Abrir", "https://office.test/o/1")).
		Build()

	markup := replyMarkup(kb)

	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "ag_conf_1", markup.InlineKeyboard[0][0].Data)
	assert.Empty(t, markup.InlineKeyboard[0][0].URL)
	assert.Equal(t, "https://office.test/o/1", markup.InlineKeyboard[1][0].URL)
	assert.Empty(t, markup.InlineKeyboard[1][0].Data)
}
