package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recrearnolar/recrear_bot/internal/model"
	"go.uber.org/zap"
)

var (
	ErrResponsibleNotFound = errors.New("responsible not found")
	ErrPackageNotFound     = errors.New("payment package not found")
)

// PackageLookup is a package together with the responsible it belongs to.
type PackageLookup struct {
	Responsible *model.Responsible
	Package     *model.PaymentPackage
}

// PendingPackage is an unpaid package with its responsible's name resolved.
type PendingPackage struct {
	Package         *model.PaymentPackage
	ResponsibleName string
}

type PaymentService struct {
	responsibles ResponsibleRepository
	packages     PackageRepository
	loc          *time.Location
	now          func() time.Time
	logger       *zap.Logger
}

func NewPaymentService(
	responsibles ResponsibleRepository,
	packages PackageRepository,
	loc *time.Location,
	now func() time.Time,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		responsibles: responsibles,
		packages:     packages,
		loc:          loc,
		now:          now,
		logger:       logger,
	}
}

// FindPackage finds the package of the named responsible due on dueDate.
func (s *PaymentService) FindPackage(ctx context.Context, dueDate time.Time, responsibleName string) (*PackageLookup, error) {
	responsible, err := s.responsibles.FindByName(ctx, strings.TrimSpace(responsibleName))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrResponsibleNotFound
		}
		return nil, fmt.Errorf("find responsible: %w", err)
	}

	from, to := DayRange(dueDate, s.loc)
	pkg, err := s.packages.FindByResponsibleDueBetween(ctx, responsible.ID, from, to)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("find package: %w", err)
	}

	s.logger.Debug("Package found",
		zap.String("package_id", pkg.ID),
		zap.String("responsible_id", responsible.ID))

	return &PackageLookup{Responsible: responsible, Package: pkg}, nil
}

// RegisterPayment marks the package paid now with the given method.
func (s *PaymentService) RegisterPayment(ctx context.Context, packageID string, method model.PaymentMethod) error {
	if !model.IsPackageMethod(method) {
		return fmt.Errorf("%w: payment method %q", ErrInvalidInput, method)
	}
	if err := s.packages.MarkPaid(ctx, packageID, method, s.now()); err != nil {
		return fmt.Errorf("mark package paid: %w", err)
	}

	s.logger.Info("Package payment registered",
		zap.String("package_id", packageID),
		zap.String("method", string(method)))
	return nil
}

// ListPending lists unpaid packages with responsible names. Unknown
// responsibles are reported with an empty name.
func (s *PaymentService) ListPending(ctx context.Context) ([]PendingPackage, error) {
	pkgs, err := s.packages.ListUnpaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unpaid packages: %w", err)
	}

	names := make(map[string]string)
	result := make([]PendingPackage, 0, len(pkgs))
	for _, pkg := range pkgs {
		name, ok := names[pkg.ResponsibleID]
		if !ok {
			r, err := s.responsibles.GetByID(ctx, pkg.ResponsibleID)
			switch {
			case err == nil:
				name = r.Name
			case errors.Is(err, ErrNotFound):
			default:
				return nil, fmt.Errorf("get responsible: %w", err)
			}
			names[pkg.ResponsibleID] = name
		}
		result = append(result, PendingPackage{Package: pkg, ResponsibleName: name})
	}
	return result, nil
}
