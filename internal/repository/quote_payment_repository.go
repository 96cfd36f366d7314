package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/repository/base"
)

// QuotePaymentRepository reads payments the back office records against quotes.
type QuotePaymentRepository struct {
	*base.Repository
}

func NewQuotePaymentRepository(b *base.Repository) *QuotePaymentRepository {
	return &QuotePaymentRepository{Repository: b}
}

func (r *QuotePaymentRepository) SumBetween(ctx context.Context, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(valor), 0)::float8
		FROM orcamentos_pagamentos
		WHERE data_pagamento >= $1 AND data_pagamento < $2
	`

	var total float64
	if err := r.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum quote payments: %w", err)
	}
	return total, nil
}
