package formatting

import (
	"testing"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	assert.Equal(t, "R$ 150,50", Currency(150.5))
	assert.Equal(t, "R$ 0,00", Currency(0))
	assert.Equal(t, "R$ 1234,57", Currency(1234.567))
	assert.Equal(t, "R$ -20,00", Currency(-20))
}

func TestHoursAndPercent(t *testing.T) {
	assert.Equal(t, "2h", Hours(2))
	assert.Equal(t, "1.5h", Hours(1.5))
	assert.Equal(t, "33.3", Percent(100.0/3))
	assert.Equal(t, "-12.5", Percent(-12.5))
}

func TestDates(t *testing.T) {
	assert.Equal(t, "05/01/2024", Date(time.Date(2024, time.January, 5, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "março de 2024", MonthYear(2024, time.March))
	assert.Equal(t, "MARÇO DE 2024", MonthYearUpper(2024, time.March))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "🎈 Festa", ScheduleType(model.ScheduleParty).String())
	assert.Equal(t, "⏳", ScheduleStatus(model.SchedulePending).Emoji)
	assert.Equal(t, "Água/Luz", ExpenseCategory(model.ExpenseUtilities).Text)
	assert.Equal(t, unknown, QuoteStatus("perdido"))
	assert.Equal(t, "Transferência", PaymentMethod(model.PaymentTransfer).Text)
}
