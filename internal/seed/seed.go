package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"foodcourt/internal/domain"
)

type userSeed struct {
	Username string
	Password string
	Role     domain.Role
}

type menuSeed struct {
	Item       string
	PriceCents int64
	Image      string
}

// Apply inserts the default accounts and menu for manual testing. It is
// idempotent via ON CONFLICT; existing passwords and prices are left
// untouched so local overrides survive re-seeding.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
		{Username: "user", Password: "123", Role: domain.RoleCustomer},
	}
	for _, u := range users {
		if err := insertUser(ctx, pool, u); err != nil {
			return fmt.Errorf("insert user %s: %w", u.Username, err)
		}
	}

	items := []menuSeed{
		{Item: "Pizza", PriceCents: 250, Image: "pizza.jpg"},
		{Item: "Burger", PriceCents: 120, Image: "burger.jpg"},
		{Item: "Pasta", PriceCents: 180, Image: "pasta.jpg"},
		{Item: "Chocolate Cake", PriceCents: 150, Image: "cake.jpg"},
		{Item: "Sandwich", PriceCents: 90, Image: "sandwich.jpg"},
	}
	for _, m := range items {
		if err := insertMenuItem(ctx, pool, m); err != nil {
			return fmt.Errorf("insert menu item %s: %w", m.Item, err)
		}
	}

	return nil
}

func insertUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (username, password_hash, role)
VALUES ($1, $2, $3)
ON CONFLICT (username) DO NOTHING
`
	_, err = pool.Exec(ctx, q, u.Username, string(hash), u.Role)
	return err
}

func insertMenuItem(ctx context.Context, pool *pgxpool.Pool, m menuSeed) error {
	const q = `
INSERT INTO menu_items (item, price_cents, image)
VALUES ($1, $2, $3)
ON CONFLICT (item) DO NOTHING
`
	_, err := pool.Exec(ctx, q, m.Item, m.PriceCents, m.Image)
	return err
}
