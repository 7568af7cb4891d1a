package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
)

// SweetRepository persists sweets in PostgreSQL.
type SweetRepository struct {
	db *gorm.DB
}

func NewSweetRepository(db *gorm.DB) *SweetRepository {
	return &SweetRepository{db: db}
}

func (r *SweetRepository) Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// List returns sweets matching filter, ordered by id so the listing is stable
// for a given store state. Name and category match as case-sensitive
// substrings (LIKE); the price bounds are inclusive.
func (r *SweetRepository) List(ctx context.Context, filter ports.SweetFilter) ([]domain.Sweet, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Sweet{})

	if filter.Name != "" {
		tx = tx.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		tx = tx.Where("category LIKE ?", "%"+filter.Category+"%")
	}
	if filter.MinPrice != nil {
		tx = tx.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		tx = tx.Where("price <= ?", *filter.MaxPrice)
	}

	var sweets []domain.Sweet
	if err := tx.Order("id ASC").Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

func (r *SweetRepository) FindByID(ctx context.Context, id uint) (*domain.Sweet, error) {
	var s domain.Sweet
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Update applies only the non-nil fields and returns the updated row.
func (r *SweetRepository) Update(ctx context.Context, id uint, fields ports.SweetUpdate) (*domain.Sweet, error) {
	values := map[string]any{}
	if fields.Name != nil {
		values["name"] = *fields.Name
	}
	if fields.Category != nil {
		values["category"] = *fields.Category
	}
	if fields.Price != nil {
		values["price"] = *fields.Price
	}
	if fields.Quantity != nil {
		values["quantity"] = *fields.Quantity
	}

	if len(values) == 0 {
		return r.FindByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&domain.Sweet{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrSweetNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *SweetRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Sweet{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSweetNotFound
	}
	return nil
}

// AdjustQuantity applies delta to the row's quantity in a single conditional
// UPDATE. For a decrement the WHERE clause requires enough stock, so two
// competing purchases of the last units serialize at the database: one wins,
// the other matches no row and fails with ErrInsufficientStock.
func (r *SweetRepository) AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.Sweet, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Sweet{})
	if delta < 0 {
		tx = tx.Where("id = ? AND quantity >= ?", id, -delta)
	} else {
		tx = tx.Where("id = ?", id)
	}

	res := tx.UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the row is missing or the stock did not cover the decrement.
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrInsufficientStock
	}

	return r.FindByID(ctx, id)
}

// UpsertByName inserts the sweet or, when one with the same name exists,
// overwrites its category, price, and quantity. Used only by the seed loader;
// name uniqueness is not a runtime invariant.
func (r *SweetRepository) UpsertByName(ctx context.Context, s *domain.Sweet) error {
	var existing domain.Sweet
	err := r.db.WithContext(ctx).First(&existing, "name = ?", s.Name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(s).Error
	}
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"category": s.Category,
		"price":    s.Price,
		"quantity": s.Quantity,
	}).Error
}
