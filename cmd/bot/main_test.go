package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthFlag(t *testing.T) {
	year, month, err := parseMonthFlag("03/2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.March, month)

	year, month, err = parseMonthFlag("11/2023")
	require.NoError(t, err)
	assert.Equal(t, 2023, year)
	assert.Equal(t, time.November, month)

	for _, bad := range []string{"13/2024", "2024-03", ""} {
		_, _, err := parseMonthFlag(bad)
		assert.Error(t, err, bad)
	}
}

func TestRenderReport(t *testing.T) {
	report := &service.MonthlyReport{
		Year:          2024,
		Month:         time.March,
		QuoteRevenue:  1500,
		PackageIncome: 500,
		Expenses: []model.CategoryTotal{
			{Category: model.ExpenseCategory("alimentacao"), Total: 300},
			{Category: model.ExpenseCategory("transporte"), Total: 200},
		},
		TotalExpenses: 500,
	}

	var buf bytes.Buffer
	renderReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "Pacotes pagos")
	assert.Contains(t, out, "R$ 2000,00")
	assert.Contains(t, out, "R$ 300,00")
	assert.Contains(t, out, "R$ 1500,00")
	assert.Contains(t, out, "75.0%")
}

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "report", "calendar-token"}, names)
}
