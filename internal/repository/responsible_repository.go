package repository

import (
	"context"
	"fmt"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/repository/base"
	"github.com/recrearnolar/recrear_bot/internal/service"
)

type ResponsibleRepository struct {
	*base.Repository
}

func NewResponsibleRepository(b *base.Repository) *ResponsibleRepository {
	return &ResponsibleRepository{Repository: b}
}

const responsibleColumns = `id, nome, telefone, created_at`

func (r *ResponsibleRepository) scan(row interface{ Scan(...any) error }) (*model.Responsible, error) {
	var resp model.Responsible
	if err := row.Scan(&resp.ID, &resp.Name, &resp.Phone, &resp.CreatedAt); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindByName matches the full name exactly.
func (r *ResponsibleRepository) FindByName(ctx context.Context, name string) (*model.Responsible, error) {
	query := `SELECT ` + responsibleColumns + ` FROM responsaveis WHERE nome = $1 LIMIT 1`

	resp, err := r.scan(r.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("find responsible by name: %w", base.MapNotFound(err))
	}
	return resp, nil
}

// SearchByName returns the oldest responsible whose name contains fragment,
// ignoring case.
func (r *ResponsibleRepository) SearchByName(ctx context.Context, fragment string) (*model.Responsible, error) {
	query := `
		SELECT ` + responsibleColumns + `
		FROM responsaveis
		WHERE nome ILIKE '%' || $1 || '%'
		ORDER BY created_at
		LIMIT 1
	`

	resp, err := r.scan(r.QueryRow(ctx, query, escapeLike(fragment)))
	if err != nil {
		return nil, fmt.Errorf("search responsible: %w", base.MapNotFound(err))
	}
	return resp, nil
}

func (r *ResponsibleRepository) GetByID(ctx context.Context, id string) (*model.Responsible, error) {
	if !base.ValidID(id) {
		return nil, service.ErrNotFound
	}
	query := `SELECT ` + responsibleColumns + ` FROM responsaveis WHERE id = $1`

	resp, err := r.scan(r.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get responsible by id: %w", base.MapNotFound(err))
	}
	return resp, nil
}
