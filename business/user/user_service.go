package user

import (
	"context"
	"errors"
	"fmt"
	"smartMarket/domain"
	"smartMarket/internal/repository/redis"
	"smartMarket/pkg/logger"
	"smartMarket/pkg/utils"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, data redis.TokenData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

const (
	RoleCustomer   = "customer"
	RoleStoreOwner = "store_owner"
	RoleAdmin      = "admin"
)

const tokenTTL = 24 * time.Hour

type userService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	validate  *validator.Validate
}

func NewUserService(userRepo UserRepository, tokenRepo TokenRepository, validate *validator.Validate) *userService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		validate:  validate,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName: user.FullName,
		Email:    user.Email,
		Password: passwordHash,
		Role:     RoleCustomer,
		IsActive: true,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	logger.Info("User registered", "user_id", newUser.ID)

	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.User{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if !user.IsActive {
		return "", domain.User{}, errors.New("account is disabled")
	}

	if !utils.CheckPassword(user.Password, password) {
		return "", domain.User{}, errors.New("invalid email or password")
	}

	userID := strconv.FormatUint(uint64(user.ID), 10)

	token, err := utils.GenerateJWT(userID, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	now := time.Now()
	tokenData := redis.TokenData{
		UserID:    userID,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(tokenTTL),
	}

	if err := s.tokenRepo.StoreToken(ctx, userID, token, tokenData, tokenTTL); err != nil {
		logger.Error("Failed to store token", err)
		return "", domain.User{}, errors.New("failed to store token")
	}

	logger.Info("User logged in", "user_id", user.ID)

	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return s.tokenRepo.DeleteToken(ctx, strconv.FormatUint(uint64(userID), 10), token)
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}
