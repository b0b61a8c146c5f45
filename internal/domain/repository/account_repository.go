package repository

import (
	"context"
	"errors"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountRepository defines database operations on accounts and consumer
// profiles.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Update(ctx context.Context, a *entity.Account) error

	GetConsumerProfile(ctx context.Context, accountID string) (*entity.ConsumerProfile, error)
	UpsertConsumerProfile(ctx context.Context, p *entity.ConsumerProfile) error
}
