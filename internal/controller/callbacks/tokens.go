package callbacks

import (
	"fmt"
	"strings"
)

// ========================
// Callback Data Patterns
// ========================
// Families are told apart by prefix. Session-bound families continue the
// chat's active wizard; the rest are one-shot actions.

// Session-bound
const (
	ScheduleType    = "ag_tipo_"   // ag_tipo_festa
	ScheduleLink    = "ag_vinc_"   // ag_vinc_responsavel
	ExpenseCategory = "desp_"      // desp_alimentacao
	ExpenseDate     = "desp_data_" // desp_data_hoje | desp_data_outra
	ExpenseMethod   = "desp_pag_"  // desp_pag_pix | desp_pag_pular
	PackageMethod   = "pag_"       // pag_dinheiro
	QuoteType       = "orc_tipo_"  // orc_tipo_evento
	QuoteStaff      = "orc_rec_"   // orc_rec_2 | orc_rec_outro
	QuoteHoliday    = "orc_fds_"   // orc_fds_sim | orc_fds_nao
	ScheduleStatus  = "status_"    // status_confirmado
)

// One-shot
const (
	ListSchedule    = "list_ag_"       // list_ag_hoje | list_ag_semana | list_ag_data
	ListExpenses    = "list_desp_"     // list_desp_mes | list_desp_periodo
	TotalExpenses   = "total_desp_"    // total_desp_semana
	ListQuotes      = "list_orc_"      // list_orc_enviado | list_orc_todos
	EditQuoteStatus = "editar_status:" // editar_status:<quote id>
	SetQuoteStatus  = "status:"        // status:<quote id>:<status>
	ConfirmEntry    = "ag_conf_"       // ag_conf_<entry id>
	CancelEntry     = "ag_canc_"       // ag_canc_<entry id>
	RescheduleEntry = "ag_reag_"       // ag_reag_<entry id>
)

// Fixed values carried by some families.
const (
	ExpenseDateToday = "hoje"
	ExpenseDateOther = "outra"
	SkipMethod       = "pular"
	StaffOther       = "outro"
	HolidayYes       = "sim"
	HolidayNo        = "nao"
	PeriodDate       = "data"
	PeriodCustom     = "periodo"
	AllQuotes        = "todos"
)

// Build joins a prefix and its value.
func Build(prefix, value string) string {
	return prefix + value
}

// BuildSetQuoteStatus builds status:<id>:<status>.
func BuildSetQuoteStatus(quoteID, status string) string {
	return SetQuoteStatus + quoteID + ":" + status
}

// ParseSetQuoteStatus splits the argument of a status:<id>:<status> token.
func ParseSetQuoteStatus(arg string) (quoteID, status string, err error) {
	idx := strings.LastIndex(arg, ":")
	if idx <= 0 || idx == len(arg)-1 {
		return "", "", fmt.Errorf("invalid quote status token %q", arg)
	}
	return arg[:idx], arg[idx+1:], nil
}
