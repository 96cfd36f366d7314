package formatting

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "02/01/2006"

// Date formats t as DD/MM/YYYY.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthYear formats a month as "maio de 2024".
func MonthYear(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("%02d/%d", int(month), year)
	}
	return fmt.Sprintf("%s de %d", monthNames[month-1], year)
}

// MonthYearUpper is MonthYear in capitals, used in report titles.
func MonthYearUpper(year int, month time.Month) string {
	return strings.ToUpper(MonthYear(year, month))
}
