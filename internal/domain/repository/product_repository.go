package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"marketplace/internal/domain/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	// Search matches term as a case-insensitive substring of name or description.
	Search(ctx context.Context, term string) ([]model.Product, error)
}

type pgProductRepository struct {
	db *sql.DB
}

func NewPgProductRepository(db *sql.DB) ProductRepository {
	return &pgProductRepository{db: db}
}

const productColumns = `id, owner_id, name, slug, description, price_cents, image_url, created_at`

// Listings are newest first; id breaks ties between rows created in the same instant.
const productOrder = ` ORDER BY created_at DESC, id DESC`

func (r *pgProductRepository) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (id, owner_id, name, slug, description, price_cents, image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.OwnerID, p.Name, p.Slug, p.Description, p.Price.Cents(), nullString(p.ImageURL),
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1` + productOrder
	return r.list(ctx, "ListByOwner", query, ownerID)
}

func (r *pgProductRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products` + productOrder
	return r.list(ctx, "ListAll", query)
}

func (r *pgProductRepository) Search(ctx context.Context, term string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE name ILIKE $1 OR description ILIKE $1` + productOrder
	return r.list(ctx, "Search", query, "%"+escapeLike(term)+"%")
}

func (r *pgProductRepository) list(ctx context.Context, op, query string, args ...interface{}) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProductRepository.%s query: %w", op, err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var (
			p        model.Product
			cents    int64
			imageURL sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Slug, &p.Description, &cents, &imageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgProductRepository.%s scan: %w", op, err)
		}
		p.Price = model.Price(cents)
		if imageURL.Valid {
			p.ImageURL = &imageURL.String
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProductRepository.%s rows: %w", op, err)
	}
	return products, nil
}

// escapeLike makes LIKE wildcards in term match literally.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
