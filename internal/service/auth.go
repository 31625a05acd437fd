package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agriconnect/marketplace/internal/auth"
	"github.com/agriconnect/marketplace/internal/hash"
	"github.com/agriconnect/marketplace/internal/logging"
	"github.com/agriconnect/marketplace/internal/models"
	"github.com/agriconnect/marketplace/internal/mykafka"
	"github.com/agriconnect/marketplace/internal/transport"
)

type AuthService struct {
	DB        *gorm.DB
	JWTSecret []byte
	Producer  *mykafka.Producer
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, fmt.Errorf("%w: name, email, password and role are required", ErrValidation)
	}
	if req.Role != models.RoleFarmer && req.Role != models.RoleBuyer {
		return nil, fmt.Errorf("%w: role must be either 'Farmer' or 'Buyer'", ErrValidation)
	}

	var existing models.User
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: an account with this email already exists", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
		PhoneNumber:  req.PhoneNumber,
		Role:         req.Role,
	}
	if req.Role == models.RoleFarmer {
		user.RadaRegistrationNumber = req.RadaRegistrationNumber
	}

	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(user.ID), map[string]interface{}{
		"type":    "user_registered",
		"user_id": user.ID,
		"role":    user.Role,
	})

	return &user, nil
}

// Login verifies the credentials and issues an HS256 access token
// carrying the (user_id, role) pair.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", fmt.Errorf("%w: both email and password are required", ErrValidation)
	}

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return "", ErrInvalidCredentials
	}

	return auth.SignAccessToken(user.ID, user.Role, s.JWTSecret)
}

func (s *AuthService) publish(ctx context.Context, key string, event map[string]interface{}) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.TopicUserEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_error", "topic", mykafka.TopicUserEvents, "error", err)
	}
}
