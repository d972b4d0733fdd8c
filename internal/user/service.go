package user

import (
	"context"
	"errors"
	"strings"

	"thrift-store-be/internal/apperror"
	"thrift-store-be/internal/auth"
	"thrift-store-be/internal/logger"

	"go.uber.org/zap"
)

type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Me(ctx context.Context, userID int64) (*User, error)
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrMissingRegisterFields
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Warn("email already registered", zap.String("email", email))
		return nil, ErrEmailExists
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(apperror.Translate(err), apperror.ErrDuplicateEntry) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := s.tokens.Issue(u.Identity())
	if err != nil {
		log.Error("failed to issue token", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.Int64("user_id", u.ID))
	return &AuthResult{Token: token, User: *u}, nil
}

func (s *service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrMissingLoginFields
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || !CheckPasswordHash(in.Password, u.Password) {
		log.Warn("login rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Identity())
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *u}, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
