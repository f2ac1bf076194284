package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"marketplace/internal/common"
	"marketplace/internal/domain/model"
)

// MemoryUserRepository implements UserRepository using in-memory storage.
// It is useful for tests and for running without Postgres.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*model.User
	byEmail map[string]string // email -> userID
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[string]*model.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrUserExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	u := *user
	r.users[u.ID] = &u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	u := *r.users[id]
	return &u, nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u := *user
	return &u, nil
}

// MemoryProductRepository implements ProductRepository using in-memory storage.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []model.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

func (r *MemoryProductRepository) Create(ctx context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	r.products = append(r.products, cloneProduct(*product))
	return nil
}

func (r *MemoryProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Product, error) {
	return r.filter(func(p model.Product) bool { return p.OwnerID == ownerID }), nil
}

func (r *MemoryProductRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	return r.filter(func(model.Product) bool { return true }), nil
}

func (r *MemoryProductRepository) Search(ctx context.Context, term string) ([]model.Product, error) {
	needle := strings.ToLower(term)
	return r.filter(func(p model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
	}), nil
}

func (r *MemoryProductRepository) filter(keep func(model.Product) bool) []model.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Product{}
	for _, p := range r.products {
		if keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func cloneProduct(p model.Product) model.Product {
	if p.ImageURL != nil {
		url := *p.ImageURL
		p.ImageURL = &url
	}
	return p
}
