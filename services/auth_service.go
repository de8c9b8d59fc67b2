package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackgraver/simple-track/models"
	"github.com/jackgraver/simple-track/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	secret []byte
}

func NewAuthService(db *gorm.DB, secret []byte) *AuthService {
	return &AuthService{db: db, secret: secret}
}

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, invalid("email and a password of at least 8 characters are required")
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrConflict
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Email: email, Password: hashed, FullName: fullName}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrUnauthorized
	}
	return utils.GenerateJWT(s.secret, user.ID, user.Email)
}

// Authenticate validates a bearer token and returns the user id it names.
func (s *AuthService) Authenticate(ctx context.Context, token string) (uint, error) {
	userID, _, err := utils.ParseJWT(s.secret, token)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, utils.ErrInvalidToken
	}
	return userID, nil
}
