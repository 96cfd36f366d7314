package model

import "time"

type QuoteType string

const (
	QuoteParty QuoteType = "festa"
	QuoteEvent QuoteType = "evento"
)

type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "rascunho"
	QuoteSent      QuoteStatus = "enviado"
	QuoteApproved  QuoteStatus = "aprovado"
	QuoteDone      QuoteStatus = "concluido"
	QuoteCancelled QuoteStatus = "cancelado"
)

var QuoteStatuses = []QuoteStatus{QuoteCancelled, QuoteDraft, QuoteSent, QuoteApproved, QuoteDone}

// Quote is an estimate for a party or event.
type Quote struct {
	ID               string      `json:"id"`
	Client           string      `json:"cliente"`
	Type             QuoteType   `json:"tipo"`
	PackageKind      string      `json:"tipo_pacote"` // avulso | mensal
	EventDate        time.Time   `json:"data_evento"`
	Time             string      `json:"horario"`
	Children         int         `json:"quantidade_criancas"`
	Staff            int         `json:"quantidade_recreadores"`
	DurationHours    float64     `json:"duracao"`
	TravelCost       float64     `json:"custo_deslocamento"`
	Discount         float64     `json:"desconto"`
	HolidayOrWeekend bool        `json:"is_feriado_ou_fds"`
	Status           QuoteStatus `json:"status"`
	Address          string      `json:"endereco"`
	Complement       *string     `json:"complemento,omitempty"`
	Neighborhood     string      `json:"bairro"`
	City             string      `json:"cidade"`
	Phone            *string     `json:"telefone,omitempty"`
	FinalValue       float64     `json:"valor_final"`
	ValidUntil       time.Time   `json:"validade"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func IsQuoteStatus(s QuoteStatus) bool {
	for _, v := range QuoteStatuses {
		if v == s {
			return true
		}
	}
	return false
}
