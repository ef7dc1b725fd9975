package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inventory_backend/internal/models"
)

// UserRepository defines the interface for user account database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, userID int64) (*models.User, error)
}

// userRepository implements the UserRepository interface.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser inserts a new user. The password must already be hashed.
func (r *userRepository) CreateUser(ctx context.Context, executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (name, email, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	currentTime := time.Now()
	err := executor.QueryRowContext(ctx, query, user.Name, user.Email, hashedPassword, currentTime, currentTime).Scan(&user.ID)
	if err != nil {
		return 0, wrapWriteError(err, "creating user")
	}
	user.PasswordHash = hashedPassword
	user.CreatedAt = currentTime
	user.UpdatedAt = currentTime
	return user.ID, nil
}

func (r *userRepository) findOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE ` + where
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user: %v", ErrDatabaseError, err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

// FindUserByID retrieves a user by ID.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return r.findOne(ctx, "id = $1", userID)
}
