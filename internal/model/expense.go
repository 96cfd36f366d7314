package model

import "time"

type ExpenseCategory string

const (
	ExpenseLabor       ExpenseCategory = "pro_labore"
	ExpenseFood        ExpenseCategory = "alimentacao"
	ExpenseTransport   ExpenseCategory = "transporte"
	ExpenseMaterials   ExpenseCategory = "materiais"
	ExpenseMarketing   ExpenseCategory = "marketing"
	ExpenseEquipment   ExpenseCategory = "equipamentos"
	ExpenseRent        ExpenseCategory = "aluguel"
	ExpenseUtilities   ExpenseCategory = "agua_luz"
	ExpensePhone       ExpenseCategory = "telefonia"
	ExpenseTaxes       ExpenseCategory = "impostos"
	ExpenseMaintenance ExpenseCategory = "manutencao"
	ExpenseOutsourced  ExpenseCategory = "terceirizados"
	ExpenseOther       ExpenseCategory = "outros"
)

// ExpenseCategories is the closed category set, in menu order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseLabor, ExpenseFood, ExpenseTransport, ExpenseMaterials, ExpenseMarketing,
	ExpenseEquipment, ExpenseRent, ExpenseUtilities, ExpensePhone, ExpenseTaxes,
	ExpenseMaintenance, ExpenseOutsourced, ExpenseOther,
}

type Expense struct {
	ID          string          `json:"id"`
	Category    ExpenseCategory `json:"tipo"`
	Amount      float64         `json:"valor"`
	Date        time.Time       `json:"data"`
	Description string          `json:"descricao"`
	Method      *PaymentMethod  `json:"forma_pagamento,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CategoryTotal is one row of an aggregate-by-category query.
type CategoryTotal struct {
	Category ExpenseCategory
	Total    float64
}

func IsExpenseCategory(c ExpenseCategory) bool {
	for _, v := range ExpenseCategories {
		if v == c {
			return true
		}
	}
	return false
}
