package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"marketplace/internal/common"
	"marketplace/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// ErrUserExists is returned by Create when the email is already registered.
var ErrUserExists = common.New(common.ErrConflict, "user already exists")

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password_hash)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, password_hash, created_at
	          FROM users WHERE email = $1`
	return r.findOne(ctx, "FindByEmail", query, email)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	// Postgres rejects malformed UUIDs with a syntax error; treat them as unknown ids.
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}
	query := `SELECT id, name, email, password_hash, created_at
	          FROM users WHERE id = $1`
	return r.findOne(ctx, "FindByID", query, id)
}

func (r *pgUserRepository) findOne(ctx context.Context, op, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.%s: %w", op, err)
	}
	return user, nil
}
