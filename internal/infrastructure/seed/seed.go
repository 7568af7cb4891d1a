// Package seed loads a starter catalog and well-known accounts into the
// database. Records are upserted by natural key (user email, sweet name) so
// the loader can run repeatedly without duplicating rows.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
	"github.com/sweetshop/sweetshop-api/internal/infrastructure/db/postgres"
)

type seedUser struct {
	Email    string
	Password string
	Role     string
}

type seedSweet struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

var seedUsers = []seedUser{
	{Email: "admin@sweetshop.com", Password: "admin123", Role: domain.RoleAdmin},
	{Email: "user@sweetshop.com", Password: "user123", Role: domain.RoleUser},
	{Email: "john@example.com", Password: "password123", Role: domain.RoleUser},
}

var seedSweets = []seedSweet{
	{Name: "Dark Chocolate Bar", Category: "Chocolate", Price: 4.99, Quantity: 50},
	{Name: "Milk Chocolate Bar", Category: "Chocolate", Price: 3.99, Quantity: 75},
	{Name: "White Chocolate Bar", Category: "Chocolate", Price: 4.49, Quantity: 30},
	{Name: "Chocolate Truffles", Category: "Chocolate", Price: 12.99, Quantity: 25},
	{Name: "Gummy Bears", Category: "Candy", Price: 2.99, Quantity: 100},
	{Name: "Sour Patch Kids", Category: "Candy", Price: 3.49, Quantity: 80},
	{Name: "Jelly Beans", Category: "Candy", Price: 4.29, Quantity: 60},
	{Name: "Rainbow Lollipop", Category: "Candy", Price: 1.99, Quantity: 120},
	{Name: "Glazed Donut", Category: "Pastry", Price: 2.49, Quantity: 40},
	{Name: "Chocolate Croissant", Category: "Pastry", Price: 3.79, Quantity: 35},
	{Name: "Strawberry Cupcake", Category: "Pastry", Price: 4.99, Quantity: 20},
	{Name: "Caramel Fudge", Category: "Fudge", Price: 6.49, Quantity: 45},
}

// Run upserts all seed users and sweets.
func Run(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	sweetRepo := postgres.NewSweetRepository(db)

	for _, u := range seedUsers {
		if err := upsertUser(ctx, db, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		log.Info().Str("email", u.Email).Str("role", u.Role).Msg("seeded user")
	}

	for _, s := range seedSweets {
		sweet := &domain.Sweet{
			Name:     s.Name,
			Category: s.Category,
			Price:    s.Price,
			Quantity: s.Quantity,
		}
		if err := sweetRepo.UpsertByName(ctx, sweet); err != nil {
			return fmt.Errorf("seed sweet %s: %w", s.Name, err)
		}
		log.Info().Str("name", s.Name).Str("category", s.Category).Msg("seeded sweet")
	}

	return nil
}

func upsertUser(ctx context.Context, db *gorm.DB, u seedUser) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var existing domain.User
	err = db.WithContext(ctx).First(&existing, "email = ?", u.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.WithContext(ctx).Create(&domain.User{
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         u.Role,
		}).Error
	}
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"password_hash": string(hash),
		"role":          u.Role,
	}).Error
}
