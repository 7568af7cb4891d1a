package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// CreateSweetInput carries all data needed to create a new sweet.
type CreateSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// SweetService defines the inventory use cases. Role gating (admin-only
// create/update/delete/restock) is enforced by the HTTP middleware before any
// of these are reached.
type SweetService interface {
	Create(ctx context.Context, input CreateSweetInput) (*domain.Sweet, error)
	List(ctx context.Context, filter SweetFilter) ([]domain.Sweet, error)
	GetByID(ctx context.Context, id uint) (*domain.Sweet, error)
	Update(ctx context.Context, id uint, fields SweetUpdate) (*domain.Sweet, error)
	Delete(ctx context.Context, id uint) error
	// Purchase decrements stock by quantity (defaulting to 1 when quantity is
	// not positive) and returns the updated sweet along with the quantity that
	// was actually applied.
	Purchase(ctx context.Context, id uint, quantity int) (*domain.Sweet, int, error)
	// Restock increments stock by quantity, which must be positive.
	Restock(ctx context.Context, id uint, quantity int) (*domain.Sweet, error)
}
