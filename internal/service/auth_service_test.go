package service_test

import (
	"context"
	"testing"

	"github.com/alperendnc/jewelery-app-sub000/internal/config"
	"github.com/alperendnc/jewelery-app-sub000/internal/dto"
	"github.com/alperendnc/jewelery-app-sub000/internal/model"
	"github.com/alperendnc/jewelery-app-sub000/internal/repository"
	"github.com/alperendnc/jewelery-app-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users map[primitive.ObjectID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return duplicateKeyError()
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if includeInactive || u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := fields["role"]; ok {
		u.Role = v.(string)
	}
	if v, ok := fields["passwordHash"]; ok {
		u.PasswordHash = v.(string)
	}
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Active = active
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

func newAuthFixture() (service.AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

func TestLogin_IssuesTokensForValidCredentials(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "operator1", Name: "Operator One", Password: "secret123", Role: "operator",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "operator1", Password: "secret123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "operator", resp.User.Role)
}

func TestLogin_UniformFailures(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "operator1", Name: "Operator One", Password: "secret123", Role: "operator",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "operator1", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_RejectsDeactivatedUser(t *testing.T) {
	svc, repo := newAuthFixture()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "operator1", Name: "Operator One", Password: "secret123", Role: "operator",
	})
	require.NoError(t, err)

	require.NoError(t, repo.SetActive(ctx, mustOID(t, created.ID), false))
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "operator1", Password: "secret123"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestRefresh_RoundTrip(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "admin1", Name: "Admin", Password: "secret123", Role: "admin",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "admin1", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "admin1", refreshed.User.Username)

	_, err = svc.Refresh(ctx, "not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "operator1", Name: "One", Password: "secret123", Role: "operator",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "operator1", Name: "Two", Password: "secret456", Role: "operator",
	})
	assert.Error(t, err)
}
