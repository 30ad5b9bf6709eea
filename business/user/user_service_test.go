package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartMarket/domain"
	"smartMarket/internal/repository/redis"
	"smartMarket/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail    domain.User
	byEmailErr error
	created    *domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = 1
	f.created = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	return f.byEmail, f.byEmailErr
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return f.byEmail, f.byEmailErr
}

type fakeTokenRepo struct {
	stored  *redis.TokenData
	deleted bool
}

func (f *fakeTokenRepo) StoreToken(ctx context.Context, userID, token string, data redis.TokenData, ttl time.Duration) error {
	f.stored = &data
	return nil
}

func (f *fakeTokenRepo) ValidateToken(ctx context.Context, token string) (string, error) {
	if f.stored == nil || f.stored.Token != token {
		return "", errors.New("token not found")
	}
	return f.stored.UserID, nil
}

func (f *fakeTokenRepo) DeleteToken(ctx context.Context, userID, token string) error {
	f.deleted = true
	return nil
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepo{byEmailErr: errors.New("user not found")}
	svc := NewUserService(repo, &fakeTokenRepo{}, validator.New())

	user, err := svc.Register(context.Background(), &domain.User{
		FullName: "Ana Pratiwi",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	// stored password must be hashed
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "secret123", repo.created.Password)
	assert.True(t, utils.CheckPassword(repo.created.Password, "secret123"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{byEmail: domain.User{ID: 2, Email: "ana@example.com"}}
	svc := NewUserService(repo, &fakeTokenRepo{}, validator.New())

	_, err := svc.Register(context.Background(), &domain.User{
		FullName: "Ana Pratiwi",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, "email already exists", err.Error())
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, &fakeTokenRepo{}, validator.New())

	_, err := svc.Register(context.Background(), &domain.User{Email: "not-an-email", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, "invalid email format", err.Error())

	_, err = svc.Register(context.Background(), &domain.User{Email: "ana@example.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, "password must be at least 6 characters", err.Error())
}

func TestLogin(t *testing.T) {
	utils.InitJWT("test-secret")

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	repo := &fakeUserRepo{byEmail: domain.User{ID: 1, Email: "ana@example.com", Password: hash, Role: RoleCustomer, IsActive: true}}
	tokens := &fakeTokenRepo{}
	svc := NewUserService(repo, tokens, validator.New())

	token, user, err := svc.Login(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(1), user.ID)

	require.NotNil(t, tokens.stored)
	assert.Equal(t, token, tokens.stored.Token)
	assert.Equal(t, "1", tokens.stored.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitJWT("test-secret")

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	repo := &fakeUserRepo{byEmail: domain.User{ID: 1, Password: hash, IsActive: true}}
	svc := NewUserService(repo, &fakeTokenRepo{}, validator.New())

	_, _, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestLoginDisabledAccount(t *testing.T) {
	repo := &fakeUserRepo{byEmail: domain.User{ID: 1, IsActive: false}}
	svc := NewUserService(repo, &fakeTokenRepo{}, validator.New())

	_, _, err := svc.Login(context.Background(), "ana@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, "account is disabled", err.Error())
}

func TestLogout(t *testing.T) {
	tokens := &fakeTokenRepo{}
	svc := NewUserService(&fakeUserRepo{}, tokens, validator.New())

	require.NoError(t, svc.Logout(context.Background(), 1, "some-token"))
	assert.True(t, tokens.deleted)
}
