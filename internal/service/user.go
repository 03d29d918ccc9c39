package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-tracker/backend/internal/models"
)

// UserService provisions local rows for identity-provider users.
type UserService struct {
	db    *gorm.DB
	group singleflight.Group
}

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// provisionTimeout bounds the shared provisioning round trip, which outlives
// the context of any single caller.
const provisionTimeout = 5 * time.Second

// EnsureUser returns the local user for id, creating it on first sight.
// It is idempotent and safe to call concurrently: calls for the same id in
// this process share one round trip, and across processes the primary key
// turns a racing insert into a no-op. An existing username is never
// overwritten. A blank username falls back to id.
//
// The shared round trip is detached from the caller's cancellation, so one
// caller going away only ends its own wait.
func (s *UserService) EnsureUser(ctx context.Context, id, username string) (*models.User, error) {
	if id == "" {
		return nil, errors.New("user id is required")
	}
	if username == "" {
		username = id
	}

	ch := s.group.DoChan(id, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), provisionTimeout)
		defer cancel()

		user := models.User{ID: id, Username: username}
		db := s.db.WithContext(ctx)
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to provision user: %w", err)
		}
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		return &user, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.User), nil
	}
}
