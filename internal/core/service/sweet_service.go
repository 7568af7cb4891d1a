package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/core/ports"
)

// CatalogCache abstracts the listing cache (Redis). A (nil, nil) Get result
// means cache miss.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Sweet, error)
	Set(ctx context.Context, sweets []domain.Sweet) error
	Invalidate(ctx context.Context) error
}

// SweetService implements the inventory use cases on top of a SweetRepository.
type SweetService struct {
	repo   ports.SweetRepository
	cache  CatalogCache
	logger zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, cache CatalogCache, logger zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, cache: cache, logger: logger}
}

// Create validates and persists a new sweet.
func (s *SweetService) Create(ctx context.Context, input ports.CreateSweetInput) (*domain.Sweet, error) {
	if err := validateSweetFields(&input.Name, &input.Category, &input.Price, &input.Quantity); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Sweet{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create sweet")
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Uint("id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

// List returns all sweets matching filter. The unfiltered catalog listing is
// served from the cache when warm.
func (s *SweetService) List(ctx context.Context, filter ports.SweetFilter) ([]domain.Sweet, error) {
	if filter.IsZero() {
		if cached, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
		} else if cached != nil {
			return cached, nil
		}
	}

	sweets, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.IsZero() {
		if err := s.cache.Set(ctx, sweets); err != nil {
			s.logger.Warn().Err(err).Msg("failed to populate catalog cache")
		}
	}
	return sweets, nil
}

func (s *SweetService) GetByID(ctx context.Context, id uint) (*domain.Sweet, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies only the supplied fields, re-validating each with the same
// rules as Create. Untouched fields are preserved.
func (s *SweetService) Update(ctx context.Context, id uint, fields ports.SweetUpdate) (*domain.Sweet, error) {
	if err := validateSweetFields(fields.Name, fields.Category, fields.Price, fields.Quantity); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Uint("id", id).Msg("sweet updated")
	return updated, nil
}

func (s *SweetService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	s.logger.Info().Uint("id", id).Msg("sweet deleted")
	return nil
}

// Purchase decrements stock by quantity, defaulting to a single unit when the
// caller sends no quantity or a non-positive one. It returns the quantity
// actually applied so callers never re-derive the defaulting rule. The
// decrement is a single conditional statement in the repository, so a purchase
// that loses the race for the last units fails with ErrInsufficientStock and
// changes nothing.
func (s *SweetService) Purchase(ctx context.Context, id uint, quantity int) (*domain.Sweet, int, error) {
	if quantity <= 0 {
		quantity = 1
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, -quantity)
	if err != nil {
		return nil, 0, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Uint("id", id).Int("quantity", quantity).Int("remaining", sweet.Quantity).Msg("sweet purchased")
	return sweet, quantity, nil
}

// Restock increments stock by quantity, which must be positive.
func (s *SweetService) Restock(ctx context.Context, id uint, quantity int) (*domain.Sweet, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be a positive integer")
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Uint("id", id).Int("quantity", quantity).Int("stock", sweet.Quantity).Msg("sweet restocked")
	return sweet, nil
}

func (s *SweetService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}

// validateSweetFields checks the supplied (non-nil) fields and reports the
// first violated constraint. Create passes all four; Update passes only the
// fields present in the request.
func validateSweetFields(name, category *string, price *float64, quantity *int) error {
	if name != nil && *name == "" {
		return domain.NewValidationError("name is required")
	}
	if category != nil && *category == "" {
		return domain.NewValidationError("category is required")
	}
	if price != nil && *price <= 0 {
		return domain.NewValidationError("price must be positive")
	}
	if quantity != nil && *quantity < 0 {
		return domain.NewValidationError("quantity must be non-negative")
	}
	return nil
}
