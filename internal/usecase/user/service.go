package user

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/triplog/triplog-backend/domain"
)

type service struct {
	userRepo  domain.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

var _ domain.UserUsecase = (*service)(nil)

func NewService(userRepo domain.UserRepository, jwtSecret []byte, tokenTTL time.Duration) *service {
	return &service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func (s *service) Register(ctx context.Context, name, username, password string) error {
	if name == "" || username == "" || len(password) < 6 {
		return domain.ErrBadParamInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.Insert(ctx, &domain.User{
		Name:     name,
		Username: username,
		Password: string(hashed),
		Role:     domain.RoleUser,
	})
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", domain.ErrBadParamInput
		}
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
