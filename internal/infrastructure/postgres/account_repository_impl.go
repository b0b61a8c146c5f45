package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	"github.com/wellnest/wellnest-api/internal/domain/repository"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash, name, role, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.Email, a.Password, a.Name, string(a.Role), a.AvatarURL)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getBy(ctx, "id", id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getBy(ctx, "email", email)
}

func (r *AccountRepository) getBy(ctx context.Context, col, val string) (*entity.Account, error) {
	a := &entity.Account{}
	var role string

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, avatar_url, created_at, updated_at
		FROM accounts
		WHERE `+col+` = $1
	`, val)

	if err := row.Scan(&a.ID, &a.Email, &a.Password, &a.Name, &role,
		&a.AvatarURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	a.Role = entity.Role(role)
	return a, nil
}

func (r *AccountRepository) Update(ctx context.Context, a *entity.Account) error {
	a.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET email = $1, password_hash = $2, name = $3, avatar_url = $4, updated_at = $5
		WHERE id = $6
	`, a.Email, a.Password, a.Name, a.AvatarURL, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) GetConsumerProfile(ctx context.Context, accountID string) (*entity.ConsumerProfile, error) {
	p := &entity.ConsumerProfile{AccountID: accountID}

	row := r.pool.QueryRow(ctx, `
		SELECT age, gender, about, health_goals, interests
		FROM consumer_profiles
		WHERE account_id = $1
	`, accountID)

	if err := row.Scan(&p.Age, &p.Gender, &p.About, &p.HealthGoals, &p.Interests); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *AccountRepository) UpsertConsumerProfile(ctx context.Context, p *entity.ConsumerProfile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO consumer_profiles (account_id, age, gender, about, health_goals, interests)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id) DO UPDATE SET
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			about = EXCLUDED.about,
			health_goals = EXCLUDED.health_goals,
			interests = EXCLUDED.interests
	`, p.AccountID, p.Age, p.Gender, p.About, p.HealthGoals, p.Interests)
	return err
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
