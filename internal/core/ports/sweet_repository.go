package ports

import (
	"context"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

// SweetFilter carries the optional search filters for listing sweets.
// All provided filters are combined with AND. Name and Category match as
// case-sensitive substrings; the price bounds are inclusive.
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// IsZero reports whether no filter is set (full catalog listing).
func (f SweetFilter) IsZero() bool {
	return f.Name == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// SweetUpdate holds the fields of a partial update. Nil fields are left
// untouched.
type SweetUpdate struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
}

// SweetRepository defines persistence operations for sweets.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	// List returns sweets matching filter, ordered by id ascending so the
	// result is stable for a given store state.
	List(ctx context.Context, filter SweetFilter) ([]domain.Sweet, error)
	FindByID(ctx context.Context, id uint) (*domain.Sweet, error)
	Update(ctx context.Context, id uint, fields SweetUpdate) (*domain.Sweet, error)
	Delete(ctx context.Context, id uint) error

	// AdjustQuantity atomically applies delta to the row's quantity in a
	// single conditional statement. A negative delta only succeeds when the
	// current quantity covers it; competing purchases of the same row can
	// therefore never drive the quantity below zero (no lost updates).
	// Returns domain.ErrSweetNotFound or domain.ErrInsufficientStock.
	AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.Sweet, error)
}
