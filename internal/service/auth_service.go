package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/bookies/internal/model"
	appErr "github.com/xxxsen/bookies/internal/pkg/errors"
	"github.com/xxxsen/bookies/internal/pkg/jwt"
	"github.com/xxxsen/bookies/internal/pkg/password"
	"github.com/xxxsen/bookies/internal/pkg/timeutil"
)

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	jwtTTL    time.Duration
	hashCost  int
}

type AuthOption func(*AuthService)

// WithHashCost overrides the bcrypt cost, mostly for tests.
func WithHashCost(cost int) AuthOption {
	return func(s *AuthService) {
		s.hashCost = cost
	}
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration, opts ...AuthOption) *AuthService {
	s := &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl, hashCost: password.Cost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Signup(ctx context.Context, email, plainPassword string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || plainPassword == "" {
		return nil, appErr.ErrInvalid
	}
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, appErr.ErrConflict
	}
	hash, err := password.HashWithCost(plainPassword, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsConflict(err) {
			return nil, appErr.ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	logutil.GetLogger(ctx).Info("user signed up", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (string, *model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || plainPassword == "" {
		return "", nil, appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return "", nil, appErr.ErrNoAccount
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return "", nil, appErr.ErrPasswordMismatch
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

// VerifyToken returns the identity embedded in a bearer token.
func (s *AuthService) VerifyToken(token string) (*jwt.Claims, error) {
	claims, err := jwt.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, appErr.ErrUnauthorized
	}
	return claims, nil
}
