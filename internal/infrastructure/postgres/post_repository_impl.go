package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	"github.com/wellnest/wellnest-api/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (author_id, title, content, tags)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.AuthorID, p.Title, p.Content, p.Tags)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p := &entity.Post{}

	row := r.pool.QueryRow(ctx, `
		SELECT p.id, COALESCE(p.author_id::text, ''), COALESCE(a.name, p.legacy_author_name),
		       p.title, p.content, p.tags, p.created_at, p.updated_at
		FROM posts p
		LEFT JOIN accounts a ON a.id = p.author_id
		WHERE p.id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Content,
		&p.Tags, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET title = $1, content = $2, tags = $3, updated_at = $4
		WHERE id = $5
	`, p.Title, p.Content, p.Tags, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, COALESCE(p.author_id::text, ''), COALESCE(a.name, p.legacy_author_name),
		       p.title, p.content, p.tags, p.created_at, p.updated_at
		FROM posts p
		LEFT JOIN accounts a ON a.id = p.author_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, COALESCE(p.author_id::text, ''), COALESCE(a.name, p.legacy_author_name),
		       p.title, p.content, p.tags, p.created_at, p.updated_at
		FROM posts p
		LEFT JOIN accounts a ON a.id = p.author_id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC
	`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

func scanPosts(rows pgx.Rows) ([]entity.Post, error) {
	out := []entity.Post{}
	for rows.Next() {
		var p entity.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Title, &p.Content,
			&p.Tags, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
