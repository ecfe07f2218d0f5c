// Package seed fills the database with synthetic users, orders and products.
package seed

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"orm-lessons/internal/models"
)

const (
	Users         = 10
	Orders        = 10
	Products      = 10
	LinksPerOrder = 3

	maxTelegramID = 9999
	maxQuantity   = 9999
	maxPrice      = 1000
)

// Store is the part of the repository the seeder drives.
type Store interface {
	AddUser(ctx context.Context, telegramID int64, fullName, languageCode string, userName *string, referrerID *int64) (*models.User, error)
	AddOrder(ctx context.Context, userID int64) (*models.Order, error)
	AddProduct(ctx context.Context, title, description string, price decimal.Decimal) (*models.Product, error)
	AddProductToOrder(ctx context.Context, orderID, productID, quantity int) error
}

type Result struct {
	Users    []*models.User
	Orders   []*models.Order
	Products []*models.Product
	Links    int
}

type Seeder struct {
	store Store
	fake  *gofakeit.Faker
	log   zerolog.Logger
}

// New returns a Seeder whose output is fully determined by seed.
func New(store Store, seed int64, log zerolog.Logger) *Seeder {
	return &Seeder{
		store: store,
		fake:  gofakeit.New(seed),
		log:   log,
	}
}

// Run creates Users users, each referred by the one created before it,
// Orders orders owned by random users, Products products, and links
// LinksPerOrder distinct random products into every order.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	used := make(map[int64]struct{}, Users)
	for i := 0; i < Users; i++ {
		var referrerID *int64
		if len(res.Users) > 0 {
			id := res.Users[len(res.Users)-1].TelegramID
			referrerID = &id
		}
		telegramID := s.telegramID(used)
		userName := s.fake.Username()
		user, err := s.store.AddUser(ctx,
			telegramID,
			s.fake.Name(),
			s.fake.LanguageAbbreviation(),
			&userName,
			referrerID,
		)
		if err != nil {
			return nil, fmt.Errorf("seed user %d: %w", i+1, err)
		}
		res.Users = append(res.Users, user)
	}

	for i := 0; i < Orders; i++ {
		owner := res.Users[s.fake.Number(0, len(res.Users)-1)]
		order, err := s.store.AddOrder(ctx, owner.TelegramID)
		if err != nil {
			return nil, fmt.Errorf("seed order %d: %w", i+1, err)
		}
		res.Orders = append(res.Orders, order)
	}

	for i := 0; i < Products; i++ {
		price := decimal.NewFromFloat(s.fake.Price(0, maxPrice)).Round(models.PriceScale)
		product, err := s.store.AddProduct(ctx, s.fake.Word(), s.fake.Sentence(8), price)
		if err != nil {
			return nil, fmt.Errorf("seed product %d: %w", i+1, err)
		}
		res.Products = append(res.Products, product)
	}

	for _, order := range res.Orders {
		for _, idx := range s.pickDistinct(len(res.Products), LinksPerOrder) {
			product := res.Products[idx]
			quantity := s.fake.Number(1, maxQuantity)
			if err := s.store.AddProductToOrder(ctx, order.OrderID, product.ProductID, quantity); err != nil {
				return nil, fmt.Errorf("seed link order %d product %d: %w", order.OrderID, product.ProductID, err)
			}
			res.Links++
		}
	}

	s.log.Info().
		Int("users", len(res.Users)).
		Int("orders", len(res.Orders)).
		Int("products", len(res.Products)).
		Int("links", res.Links).
		Msg("fake data seeded")
	return res, nil
}

// telegramID draws an id not yet in used and records it.
func (s *Seeder) telegramID(used map[int64]struct{}) int64 {
	for {
		id := int64(s.fake.Number(1, maxTelegramID))
		if _, ok := used[id]; !ok {
			used[id] = struct{}{}
			return id
		}
	}
}

// pickDistinct returns k distinct indexes below n, or all of them when n <= k.
func (s *Seeder) pickDistinct(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	s.fake.ShuffleAnySlice(idx)
	if k < n {
		idx = idx[:k]
	}
	return idx
}
