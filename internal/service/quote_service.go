package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/recrearnolar/recrear_bot/internal/model"
	"go.uber.org/zap"
)

var ErrQuoteNotFound = errors.New("quote not found")

const (
	quoteValidity      = 30 * 24 * time.Hour
	quoteSearchLimit   = 5
	quotePackageSingle = "avulso"
)

// QuoteInput carries everything the quote wizard collects.
type QuoteInput struct {
	Client           string
	Type             model.QuoteType
	EventDate        time.Time
	Time             string
	Children         int
	Staff            int
	DurationHours    float64
	HolidayOrWeekend bool
	TravelCost       float64
	Discount         float64
	Address          string
	Complement       *string
	Neighborhood     string
	City             string
	Phone            *string
}

type QuoteService struct {
	repo          QuoteRepository
	backofficeURL string
	loc           *time.Location
	now           func() time.Time
	logger        *zap.Logger
}

func NewQuoteService(repo QuoteRepository, backofficeURL string, loc *time.Location, now func() time.Time, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		repo:          repo,
		backofficeURL: strings.TrimRight(backofficeURL, "/"),
		loc:           loc,
		now:           now,
		logger:        logger,
	}
}

// Create prices and stores a draft quote valid for 30 days.
func (s *QuoteService) Create(ctx context.Context, in QuoteInput) (*model.Quote, error) {
	if in.Staff < 1 {
		return nil, fmt.Errorf("%w: staff count must be at least 1", ErrInvalidInput)
	}

	now := s.now()
	quote := &model.Quote{
		ID:               uuid.NewString(),
		Client:           strings.TrimSpace(in.Client),
		Type:             in.Type,
		PackageKind:      quotePackageSingle,
		EventDate:        StartOfDay(in.EventDate, s.loc),
		Time:             in.Time,
		Children:         in.Children,
		Staff:            in.Staff,
		DurationHours:    in.DurationHours,
		TravelCost:       in.TravelCost,
		Discount:         in.Discount,
		HolidayOrWeekend: in.HolidayOrWeekend,
		Status:           model.QuoteDraft,
		Address:          in.Address,
		Complement:       in.Complement,
		Neighborhood:     in.Neighborhood,
		City:             in.City,
		Phone:            in.Phone,
		ValidUntil:       now.Add(quoteValidity),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	quote.FinalValue = QuotePrice(PricingInput{
		Children:         in.Children,
		Staff:            in.Staff,
		DurationHours:    in.DurationHours,
		HolidayOrWeekend: in.HolidayOrWeekend,
		TravelCost:       in.TravelCost,
		Discount:         in.Discount,
	})

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	s.logger.Info("Quote created",
		zap.String("quote_id", quote.ID),
		zap.String("client", quote.Client),
		zap.Float64("final_value", quote.FinalValue))
	return quote, nil
}

func (s *QuoteService) Get(ctx context.Context, id string) (*model.Quote, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// SearchByClient returns up to five most recent quotes for a client name
// fragment. An empty result is ErrQuoteNotFound.
func (s *QuoteService) SearchByClient(ctx context.Context, fragment string) ([]*model.Quote, error) {
	quotes, err := s.repo.SearchByClient(ctx, strings.TrimSpace(fragment), quoteSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search quotes: %w", err)
	}
	if len(quotes) == 0 {
		return nil, ErrQuoteNotFound
	}
	return quotes, nil
}

// ListByStatus lists quotes with the given status, or all when status is nil.
func (s *QuoteService) ListByStatus(ctx context.Context, status *model.QuoteStatus) ([]*model.Quote, error) {
	if status != nil && !model.IsQuoteStatus(*status) {
		return nil, fmt.Errorf("%w: quote status %q", ErrInvalidInput, *status)
	}
	quotes, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}

func (s *QuoteService) UpdateStatus(ctx context.Context, id string, status model.QuoteStatus) error {
	if !model.IsQuoteStatus(status) {
		return fmt.Errorf("%w: quote status %q", ErrInvalidInput, status)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("update quote status: %w", err)
	}
	s.logger.Info("Quote status changed", zap.String("quote_id", id), zap.String("status", string(status)))
	return nil
}

// Link is the back-office page a client can open to view the quote.
func (s *QuoteService) Link(id string) string {
	return s.backofficeURL + "/orcamentos/visualizar/" + id
}
