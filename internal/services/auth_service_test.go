package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/sortetech/recarga-sorte-backend/internal/config"
	"github.com/sortetech/recarga-sorte-backend/internal/models"
	"github.com/sortetech/recarga-sorte-backend/internal/repositories"
)

type fakeAdminUserRepo struct {
	repositories.AdminUserRepository
	usersByEmail map[string]*models.AdminUser
}

func newFakeAdminUserRepo() *fakeAdminUserRepo {
	return &fakeAdminUserRepo{usersByEmail: make(map[string]*models.AdminUser)}
}

func (f *fakeAdminUserRepo) Create(ctx context.Context, adminUser *models.AdminUser) error {
	adminUser.ID = primitive.NewObjectID()
	stored := *adminUser
	f.usersByEmail[adminUser.Email] = &stored
	return nil
}

func (f *fakeAdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: 3600,
		},
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeAdminUserRepo()
	service := NewAuthService(repo, testAuthConfig())

	user, err := service.Register(context.Background(), &models.RegisterRequest{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Empty(t, user.Password)
	assert.Equal(t, "admin", user.Role)

	stored := repo.usersByEmail["ana@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret-pass")))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeAdminUserRepo()
	service := NewAuthService(repo, testAuthConfig())

	_, err := service.Register(context.Background(), &models.RegisterRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), &models.RegisterRequest{
		Email:    "ana@example.com",
		Password: "other-pass",
	})
	assert.Error(t, err)
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newFakeAdminUserRepo()
	cfg := testAuthConfig()
	service := NewAuthService(repo, cfg)

	_, err := service.Register(context.Background(), &models.RegisterRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	resp, err := service.Login(context.Background(), &models.LoginRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "ana@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeAdminUserRepo()
	service := NewAuthService(repo, testAuthConfig())

	_, err := service.Register(context.Background(), &models.RegisterRequest{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &models.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong-pass",
	})
	assert.EqualError(t, err, "invalid credentials")

	_, err = service.Login(context.Background(), &models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.EqualError(t, err, "invalid credentials")
}
