package model

import "time"

// QuotePayment is a payment received against a quote. Written by the back
// office; the bot only reads it for revenue totals.
type QuotePayment struct {
	ID        string    `json:"id"`
	QuoteID   string    `json:"orcamento_id"`
	Amount    float64   `json:"valor"`
	PaidAt    time.Time `json:"data_pagamento"`
	CreatedAt time.Time `json:"created_at"`
}
