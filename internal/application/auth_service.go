package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/customtee/platform-api/internal/domain/entity"
	repo "github.com/customtee/platform-api/internal/domain/repository"
	"github.com/customtee/platform-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountDisabled    = errors.New("account disabled")
)

// AuthService is the identity collaborator: register, login, logout and the
// session record that middleware.Auth resolves tokens against.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Logger: logger}
}

// TokenPair is an issued access/refresh token set with expirations for the
// cookie writer.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Session is the Redis record behind an authenticated user.
type Session struct {
	UserID   string `json:"user_id"`
	IssuedAt string `json:"issued_at"`
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// RegisterInput is the validated register payload.
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Register creates a BUYER account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
		Role:      entity.RoleBuyer,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return u, nil
}

// Authenticate validates email/password. Disabled accounts fail with a
// distinct error so the handler can report it without leaking whether the
// password matched.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	if u.IsDeleted {
		return nil, ErrAccountDisabled
	}
	return u, nil
}

// IssueTokens generates the token pair and records the session in Redis.
// The session lives as long as the refresh token.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}

	sess := Session{UserID: u.ID, IssuedAt: time.Now().UTC().Format(time.RFC3339)}
	if err := helpers.RedisSetJSON(ctx, s.Redis, sessionKey(u.ID), sess, s.JWT.RefreshTTL); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// ResolveSession verifies an access token against the stored session and
// returns the user id. Used by middleware.Auth.
func (s *AuthService) ResolveSession(ctx context.Context, accessToken string) (string, error) {
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	var sess Session
	found, err := helpers.RedisGetJSON(ctx, s.Redis, sessionKey(claims.UserID), &sess)
	if err != nil {
		return "", err
	}
	if !found || sess.UserID != claims.UserID {
		return "", ErrInvalidCredentials
	}
	return claims.UserID, nil
}

// Logout drops the Redis session. Cookie clearing is the handler's job.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return helpers.RedisDel(ctx, s.Redis, sessionKey(userID))
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
