package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"github.com/recrearnolar/recrear_bot/internal/repository/base"
	"github.com/recrearnolar/recrear_bot/internal/service"
)

type PackageRepository struct {
	*base.Repository
}

func NewPackageRepository(b *base.Repository) *PackageRepository {
	return &PackageRepository{Repository: b}
}

const packageColumns = `id, responsavel_id, mes_referencia, valor::float8, vencimento, is_paid, forma, pago_em, created_at, updated_at`

func scanPackage(row interface{ Scan(...any) error }) (*model.PaymentPackage, error) {
	var p model.PaymentPackage
	err := row.Scan(
		&p.ID,
		&p.ResponsibleID,
		&p.ReferenceMonth,
		&p.Amount,
		&p.DueDate,
		&p.IsPaid,
		&p.Method,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByResponsibleDueBetween finds the package of a responsible due in [from, to).
func (r *PackageRepository) FindByResponsibleDueBetween(ctx context.Context, responsibleID string, from, to time.Time) (*model.PaymentPackage, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM pagamentos
		WHERE responsavel_id = $1 AND vencimento >= $2 AND vencimento < $3
		ORDER BY vencimento
		LIMIT 1
	`

	p, err := scanPackage(r.QueryRow(ctx, query, responsibleID, from, to))
	if err != nil {
		return nil, fmt.Errorf("find package by due date: %w", base.MapNotFound(err))
	}
	return p, nil
}

func (r *PackageRepository) ListUnpaid(ctx context.Context) ([]*model.PaymentPackage, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM pagamentos
		WHERE is_paid = FALSE
		ORDER BY vencimento
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list unpaid packages: %w", err)
	}
	defer rows.Close()

	var pkgs []*model.PaymentPackage
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, rows.Err()
}

func (r *PackageRepository) MarkPaid(ctx context.Context, id string, method model.PaymentMethod, paidAt time.Time) error {
	if !base.ValidID(id) {
		return service.ErrNotFound
	}
	query := `
		UPDATE pagamentos
		SET is_paid = TRUE, forma = $2, pago_em = $3, updated_at = NOW()
		WHERE id = $1
	`

	if err := r.ExecOne(ctx, query, id, method, paidAt); err != nil {
		return fmt.Errorf("mark package paid: %w", err)
	}
	return nil
}

// SumPaidBetween sums packages paid in [from, to).
func (r *PackageRepository) SumPaidBetween(ctx context.Context, from, to time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(valor), 0)::float8
		FROM pagamentos
		WHERE is_paid = TRUE AND pago_em >= $1 AND pago_em < $2
	`

	var total float64
	if err := r.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum paid packages: %w", err)
	}
	return total, nil
}
