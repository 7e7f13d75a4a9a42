package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

var ErrUserNotFound = errors.New("user not found")

// Registered users expire on their own in case a delete is lost on shutdown.
const userTTL = 24 * time.Hour

// UserRepository stores the registered-user record for a live connection.
// It is bookkeeping only; gameplay never blocks on it.
type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbUser struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) UserRepository {
	return &dbUser{
		client: client,
	}
}

func (that *dbUser) Save(ctx context.Context, user *entity.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	userKey := "user:" + user.ID
	if err = that.client.Set(ctx, userKey, userJSON, userTTL).Err(); err != nil {
		return fmt.Errorf("failed to set user: %w", err)
	}

	return nil
}

func (that *dbUser) GetByID(ctx context.Context, id string) (*entity.User, error) {
	userKey := "user:" + id

	response, err := that.client.Get(ctx, userKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	var existingUser entity.User
	if err = json.Unmarshal([]byte(response), &existingUser); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &existingUser, nil
}

func (that *dbUser) DeleteByID(ctx context.Context, id string) error {
	userKey := "user:" + id

	if err := that.client.Del(ctx, userKey).Err(); err != nil {
		return fmt.Errorf("failed to delete user by ID: %w", err)
	}

	return nil
}
