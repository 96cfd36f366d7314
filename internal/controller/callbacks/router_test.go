package callbacks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allFamilies() []string {
	return []string{
		ScheduleType, ScheduleLink, ExpenseCategory, ExpenseDate, ExpenseMethod,
		PackageMethod, QuoteType, QuoteStaff, QuoteHoliday, ScheduleStatus,
		ListSchedule, ListExpenses, TotalExpenses, ListQuotes, EditQuoteStatus,
		SetQuoteStatus, ConfirmEntry, CancelEntry, RescheduleEntry,
	}
}

func recordingRouter(hit *string) *Router {
	r := NewRouter()
	for _, prefix := range allFamilies() {
		r.Handle(prefix, func(_ context.Context, _ int64, arg string) {
			*hit = prefix + "|" + arg
		})
	}
	return r
}

func TestRouterFamiliesAreExclusive(t *testing.T) {
	tests := []struct {
		token  string
		prefix string
		arg    string
	}{
		{"status_confirmado", ScheduleStatus, "confirmado"},
		{"status:0d2f-11:enviado", SetQuoteStatus, "0d2f-11:enviado"},
		{"editar_status:0d2f-11", EditQuoteStatus, "0d2f-11"},
		{"desp_alimentacao", ExpenseCategory, "alimentacao"},
		{"desp_agua_luz", ExpenseCategory, "agua_luz"},
		{"desp_pag_cartao_credito", ExpenseMethod, "cartao_credito"},
		{"desp_data_hoje", ExpenseDate, "hoje"},
		{"pag_pix", PackageMethod, "pix"},
		{"list_desp_mes", ListExpenses, "mes"},
		{"total_desp_semana", TotalExpenses, "semana"},
		{"list_ag_data", ListSchedule, "data"},
		{"ag_tipo_festa", ScheduleType, "festa"},
		{"ag_conf_abc", ConfirmEntry, "abc"},
		{"ag_reag_abc", RescheduleEntry, "abc"},
		{"orc_rec_outro", QuoteStaff, "outro"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			var hit string
			r := recordingRouter(&hit)

			fn, arg, ok := r.Match(tt.token)
			require.True(t, ok)
			assert.Equal(t, tt.arg, arg)

			fn(context.Background(), 1, arg)
			assert.Equal(t, tt.prefix+"|"+tt.arg, hit)
		})
	}
}

func TestRouterUnknownToken(t *testing.T) {
	var hit string
	_, _, ok := recordingRouter(&hit).Match("noop")
	assert.False(t, ok)
}

func TestRouterOrdersLongestFirst(t *testing.T) {
	r := NewRouter().
		Handle("desp_", func(context.Context, int64, string) {}).
		Handle("desp_pag_", func(context.Context, int64, string) {})

	assert.Equal(t, []string{"desp_pag_", "desp_"}, r.Prefixes())
}

func TestParseSetQuoteStatus(t *testing.T) {
	id, status, err := ParseSetQuoteStatus("abc-123:aprovado")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
	assert.Equal(t, "aprovado", status)

	assert.Equal(t, "status:abc-123:aprovado", BuildSetQuoteStatus("abc-123", "aprovado"))

	for _, bad := range []string{"", "abc", ":aprovado", "abc:"} {
		_, _, err := ParseSetQuoteStatus(bad)
		assert.Error(t, err, bad)
	}
}
