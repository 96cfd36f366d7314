package model

import "time"

type PaymentMethod string

const (
	PaymentPix      PaymentMethod = "pix"
	PaymentCash     PaymentMethod = "dinheiro"
	PaymentCard     PaymentMethod = "cartao"
	PaymentCredit   PaymentMethod = "cartao_credito"
	PaymentDebit    PaymentMethod = "cartao_debito"
	PaymentTransfer PaymentMethod = "transferencia"
)

// PackageMethods are the methods offered when registering a package payment.
var PackageMethods = []PaymentMethod{PaymentPix, PaymentCash, PaymentCard, PaymentTransfer}

// ExpenseMethods are the methods offered when recording an expense.
var ExpenseMethods = []PaymentMethod{PaymentPix, PaymentCash, PaymentCredit, PaymentDebit, PaymentTransfer}

// PaymentPackage is one month of a recurring childcare package.
type PaymentPackage struct {
	ID             string         `json:"id"`
	ResponsibleID  string         `json:"responsavel_id"`
	ReferenceMonth string         `json:"mes_referencia"`
	Amount         float64        `json:"valor"`
	DueDate        time.Time      `json:"vencimento"`
	IsPaid         bool           `json:"is_paid"`
	Method         *PaymentMethod `json:"forma,omitempty"`
	PaidAt         *time.Time     `json:"pago_em,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// IsPackageMethod reports whether m is accepted for package payments.
func IsPackageMethod(m PaymentMethod) bool {
	for _, v := range PackageMethods {
		if v == m {
			return true
		}
	}
	return false
}

// IsExpenseMethod reports whether m is accepted for expenses.
func IsExpenseMethod(m PaymentMethod) bool {
	for _, v := range ExpenseMethods {
		if v == m {
			return true
		}
	}
	return false
}
