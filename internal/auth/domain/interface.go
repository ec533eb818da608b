package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain UserRepository

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User, details ProfileDetails) error
	SetRefreshToken(ctx context.Context, userID string, token *string) error
	RecordLoginSuccess(ctx context.Context, userID string) error
	RecordLoginFailure(ctx context.Context, userID string, maxAttempts int, lockFor time.Duration) (*time.Time, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SetActive(ctx context.Context, userID string, active bool) error
	GetAllUsers(ctx context.Context) ([]User, error)
}
