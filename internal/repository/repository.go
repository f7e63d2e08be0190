// backend-go/internal/repository/repository.go
package repository

import (
	"context"

	"github.com/packdash/backend-go/internal/domain"
)

// ClientRepository persists clients. Get returns domain.ErrNotFound for
// unknown ids.
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository persists orders, newest week first.
type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id string) error
}
