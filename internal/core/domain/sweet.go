package domain

import (
	"errors"
	"time"
)

var ErrSweetNotFound = errors.New("sweet not found")
var ErrInsufficientStock = errors.New("insufficient quantity in stock")

// Sweet is a single inventory item. Quantity is never negative: the only
// mutation path is an atomic conditional update in the repository.
//
// Name carries no uniqueness constraint; the seed loader upserts by name as a
// loading convenience, but the runtime create path allows duplicates.
type Sweet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;index"`
	Category  string    `json:"category" gorm:"not null;index"`
	Price     float64   `json:"price" gorm:"type:numeric(10,2);not null"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
