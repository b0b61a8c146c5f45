package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/wellnest/wellnest-api/internal/domain/entity"
	repo "github.com/wellnest/wellnest-api/internal/domain/repository"
	"github.com/wellnest/wellnest-api/pkg/helpers"
)

const maxProfileTags = 5

// AccountService covers registration, authentication, sessions, and the
// consumer profile.
type AccountService struct {
	Repo      repo.AccountRepository
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewAccountService(r repo.AccountRepository, jwt *helpers.JWTManager, rdb *redis.Client, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *AccountService {
	return &AccountService{Repo: r, JWT: jwt, Redis: rdb, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func sessionKey(accountID string) string {
	return "account:session:" + accountID
}

// Register creates an account with a bcrypt-hashed password.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.Account, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	a := &entity.Account{
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: hash,
		Name:     strings.TrimSpace(in.Name),
		Role:     entity.Role(in.Role),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return a, nil
}

// Authenticate validates email/password and returns the account.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	a, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(a.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// IssueTokens generates the token pair and records a session in Redis. The
// session carries the role so the auth middleware can gate routes without a
// database read.
func (s *AccountService) IssueTokens(ctx context.Context, a *entity.Account) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, string(a.Role))
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID, string(a.Role))
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		sid := uuid.NewString()
		key := sessionKey(a.ID)
		fields := map[string]any{
			"account_id": a.ID,
			"email":      a.Email,
			"name":       a.Name,
			"role":       string(a.Role),
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis session write failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Login authenticates and issues a session.
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.Account, TokenPair, error) {
	a, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, a)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return a, pair, nil
}

// Refresh rotates the token pair for a valid refresh token with a live session.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	a, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(a.ID)).Result()
		if rErr != nil || len(data) == 0 {
			return TokenPair{}, ErrInvalidCredentials
		}
	}
	return s.IssueTokens(ctx, a)
}

// Logout drops the redis session.
func (s *AccountService) Logout(ctx context.Context, accountID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(accountID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("account_id", accountID).Warn("redis session delete failed")
	}
}

// GetAccount loads an account by id.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// GetConsumerProfile returns the consumer profile, defaulted to an empty
// profile when none has been saved yet.
func (s *AccountService) GetConsumerProfile(ctx context.Context, accountID string) (*entity.ConsumerProfile, *entity.Account, error) {
	a, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.Repo.GetConsumerProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return &entity.ConsumerProfile{
				AccountID:   accountID,
				HealthGoals: []string{},
				Interests:   []string{},
			}, a, nil
		}
		return nil, nil, err
	}
	return p, a, nil
}

type ConsumerProfileInput struct {
	Age         *int
	Gender      string
	About       string
	HealthGoals []string
	Interests   []string
}

// UpdateConsumerProfile full-replaces the consumer profile with range checks
// and tag normalization.
func (s *AccountService) UpdateConsumerProfile(ctx context.Context, accountID string, in ConsumerProfileInput) (*entity.ConsumerProfile, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	if in.Age != nil && (*in.Age < 0 || *in.Age > 120) {
		return nil, Validationf("invalid age value")
	}
	if !entity.ValidGender(in.Gender) {
		return nil, Validationf("invalid gender value")
	}
	if len(in.About) > 500 {
		return nil, Validationf("about must be at most 500 characters")
	}

	p := &entity.ConsumerProfile{
		AccountID:   accountID,
		Age:         in.Age,
		Gender:      in.Gender,
		About:       in.About,
		HealthGoals: entity.NormalizeTags(in.HealthGoals, maxProfileTags),
		Interests:   entity.NormalizeTags(in.Interests, maxProfileTags),
	}
	if err := s.Repo.UpsertConsumerProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UploadAvatar stores an avatar image in GCS and records its URL.
func (s *AccountService) UploadAvatar(ctx context.Context, accountID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	a, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", accountID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	a.AvatarURL = url
	if err := s.Repo.Update(ctx, a); err != nil {
		return "", err
	}
	return url, nil
}
