package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/order-days/internal/domain/models"
)

type UserStorage interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpsertUser(ctx context.Context, user *models.User) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

// получение пользователя по точному совпадению логина
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	row := r.db.QueryRowContext(ctx, "SELECT id, username, password_hash, name FROM users WHERE username = $1", username)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpsertUser создаёт пользователя или обновляет пароль и имя существующего.
// Через API пользователи не создаются, только командой createuser.
func (r *userRepository) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (username)
		DO UPDATE SET password_hash = EXCLUDED.password_hash,
		              name = EXCLUDED.name
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, user.Username, string(user.PasswordHash), user.Name).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	user.ID = id
	return user, nil
}
