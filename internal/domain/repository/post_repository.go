package repository

import (
	"context"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
)

// PostRepository defines database operations on blog posts.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	List(ctx context.Context, limit, offset int) ([]entity.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]entity.Post, error)
}
