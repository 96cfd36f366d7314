package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/repository/base"
	"github.com/recrearnolar/recrear_bot/internal/service"
)

type QuoteRepository struct {
	*base.Repository
}

func NewQuoteRepository(b *base.Repository) *QuoteRepository {
	return &QuoteRepository{Repository: b}
}

const quoteColumns = `
	id, cliente, tipo, tipo_pacote, data_evento, horario, quantidade_criancas,
	quantidade_recreadores, duracao::float8, custo_deslocamento::float8, desconto::float8,
	is_feriado_ou_fds, status, endereco, complemento, bairro, cidade, telefone,
	valor_final::float8, validade, created_at, updated_at`

func scanQuote(row interface{ Scan(...any) error }) (*model.Quote, error) {
	var q model.Quote
	err := row.Scan(
		&q.ID,
		&q.Client,
		&q.Type,
		&q.PackageKind,
		&q.EventDate,
		&q.Time,
		&q.Children,
		&q.Staff,
		&q.DurationHours,
		&q.TravelCost,
		&q.Discount,
		&q.HolidayOrWeekend,
		&q.Status,
		&q.Address,
		&q.Complement,
		&q.Neighborhood,
		&q.City,
		&q.Phone,
		&q.FinalValue,
		&q.ValidUntil,
		&q.CreatedAt,
		&q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func collectQuotes(rows pgx.Rows) ([]*model.Quote, error) {
	defer rows.Close()

	var quotes []*model.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (r *QuoteRepository) Create(ctx context.Context, q *model.Quote) error {
	query := `
		INSERT INTO orcamentos (
			id, cliente, tipo, tipo_pacote, data_evento, horario, quantidade_criancas,
			quantidade_recreadores, duracao, custo_deslocamento, desconto, is_feriado_ou_fds,
			status, endereco, complemento, bairro, cidade, telefone, valor_final, validade,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.Pool().Exec(ctx, query,
		q.ID,
		q.Client,
		q.Type,
		q.PackageKind,
		q.EventDate,
		q.Time,
		q.Children,
		q.Staff,
		q.DurationHours,
		q.TravelCost,
		q.Discount,
		q.HolidayOrWeekend,
		q.Status,
		q.Address,
		q.Complement,
		q.Neighborhood,
		q.City,
		q.Phone,
		q.FinalValue,
		q.ValidUntil,
		q.CreatedAt,
		q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create quote: %w", err)
	}
	return nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	if !base.ValidID(id) {
		return nil, service.ErrNotFound
	}
	query := `SELECT ` + quoteColumns + ` FROM orcamentos WHERE id = $1`

	q, err := scanQuote(r.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get quote by id: %w", base.MapNotFound(err))
	}
	return q, nil
}

// SearchByClient returns the newest quotes whose client name contains fragment.
func (r *QuoteRepository) SearchByClient(ctx context.Context, fragment string, limit int) ([]*model.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM orcamentos
		WHERE cliente ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.Query(ctx, query, escapeLike(fragment), limit)
	if err != nil {
		return nil, fmt.Errorf("search quotes: %w", err)
	}
	return collectQuotes(rows)
}

func (r *QuoteRepository) ListByStatus(ctx context.Context, status *model.QuoteStatus) ([]*model.Quote, error) {
	query := `
		SELECT ` + quoteColumns + `
		FROM orcamentos
		WHERE $1::text IS NULL OR status = $1
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return collectQuotes(rows)
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status model.QuoteStatus) error {
	if !base.ValidID(id) {
		return service.ErrNotFound
	}
	query := `UPDATE orcamentos SET status = $2, updated_at = NOW() WHERE id = $1`

	if err := r.ExecOne(ctx, query, id, status); err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	return nil
}
