package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/packdash/backend-go/internal/cache"
	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/prediction"
	"github.com/packdash/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

type OrderService struct {
	orders  repository.OrderRepository
	clients repository.ClientRepository
	cache   cache.InsightCache
}

func NewOrderService(orders repository.OrderRepository, clients repository.ClientRepository, cacheImpl cache.InsightCache) *OrderService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopInsightCache()
	}
	return &OrderService{orders: orders, clients: clients, cache: cacheImpl}
}

// List returns every order, or the orders of one client when clientID is
// set, newest week first.
func (s *OrderService) List(ctx context.Context, clientID string) ([]domain.Order, error) {
	if clientID == "" {
		return s.orders.List(ctx)
	}
	if _, err := s.clients.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.orders.ListByClient(ctx, clientID)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *OrderService) Create(ctx context.Context, input domain.Order) (*domain.Order, error) {
	order, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	if err := s.orders.Create(ctx, &order); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	log.Info().
		Str("order_id", order.ID).
		Str("client_id", order.ClientID).
		Str("week", prediction.FormatWeek(order.WeekNumber, order.Year)).
		Float64("total", order.Total).
		Msg("order created")
	return &order, nil
}

func (s *OrderService) Update(ctx context.Context, id string, input domain.Order) (*domain.Order, error) {
	if _, err := s.orders.Get(ctx, id); err != nil {
		return nil, err
	}

	input.ID = id
	order, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, &order); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	return &order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// prepare validates an order and fills the fields derived from the
// catalogue: product units, default details and the total.
func (s *OrderService) prepare(ctx context.Context, o domain.Order) (domain.Order, error) {
	if o.ClientID == "" {
		return o, fmt.Errorf("%w: client_id is required", domain.ErrInvalidInput)
	}
	if o.WeekNumber < 1 || o.WeekNumber > prediction.WeeksPerYear {
		return o, fmt.Errorf("%w: week_number must be between 1 and %d", domain.ErrInvalidInput, prediction.WeeksPerYear)
	}
	if o.Year <= 0 {
		return o, fmt.Errorf("%w: year must be positive", domain.ErrInvalidInput)
	}
	if o.DeliveryWeek < 0 || o.DeliveryWeek > prediction.WeeksPerYear {
		return o, fmt.Errorf("%w: delivery_week must be between 1 and %d", domain.ErrInvalidInput, prediction.WeeksPerYear)
	}
	if o.Total < 0 {
		return o, fmt.Errorf("%w: total must not be negative", domain.ErrInvalidInput)
	}

	if _, err := s.clients.Get(ctx, o.ClientID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return o, fmt.Errorf("%w: unknown client %s", domain.ErrInvalidInput, o.ClientID)
		}
		return o, err
	}

	if o.Products == nil {
		return o, nil
	}

	products := make([]domain.OrderProduct, 0, len(o.Products))
	var sum float64
	for i, p := range o.Products {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return o, fmt.Errorf("%w: product %d has no name", domain.ErrInvalidInput, i+1)
		}
		if p.Quantity < 0 {
			return o, fmt.Errorf("%w: product %s has a negative quantity", domain.ErrInvalidInput, p.Name)
		}
		category, ok := domain.LookupCategory(p.Category)
		if !ok {
			return o, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, p.Category)
		}
		if p.Unit == "" {
			p.Unit = category.Unit
		}
		if p.Details == nil {
			p.Details = domain.DetailsFor(p.Category)
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		sum += p.Quantity
		products = append(products, p)
	}
	o.Products = products

	if o.Total == 0 {
		o.Total = sum
	}
	return o, nil
}

func (s *OrderService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("orders: cache invalidation failed")
	}
}
