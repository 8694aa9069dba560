package user

import (
	"context"
	"testing"

	"marketplace-backend/domain"
	"marketplace-backend/entities"
	"marketplace-backend/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	byID    map[string]*entities.User
	byEmail map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]*entities.User),
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.byID[user.ID.String()] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	f.byID[user.ID.String()] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepository) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func newTestUserService(repo UserRepository) UserService {
	return NewUserService(repo, jwt.NewJWTServiceWithSecret("test-secret-key-for-unit-tests"))
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestUserService(repo)
	ctx := context.Background()

	registered, err := service.Register(ctx, domain.RegisterRequest{
		Name:     "Ola Nordmann",
		Email:    "ola@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.ID)

	// The stored password must be hashed, never the raw input.
	stored := repo.byEmail["ola@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter2hunter2", stored.Password)

	login, err := service.Login(ctx, domain.LoginRequest{
		Email:    "ola@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, domain.RoleUser, login.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestUserService(repo)
	ctx := context.Background()

	_, err := service.Register(ctx, domain.RegisterRequest{
		Name:     "Ola Nordmann",
		Email:    "ola@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = service.Register(ctx, domain.RegisterRequest{
		Name:     "Kari Nordmann",
		Email:    "ola@example.com",
		Password: "another-password",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestUserService(repo)
	ctx := context.Background()

	_, err := service.Register(ctx, domain.RegisterRequest{
		Name:     "Ola Nordmann",
		Email:    "ola@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, domain.LoginRequest{
		Email:    "ola@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestUserService(repo)

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestGetPublicProfile_OmitsEmail(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestUserService(repo)
	ctx := context.Background()

	registered, err := service.Register(ctx, domain.RegisterRequest{
		Name:     "Ola Nordmann",
		Email:    "ola@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	profile, err := service.GetPublicProfile(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ola Nordmann", profile.Name)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestUserService(repo)
	ctx := context.Background()

	registered, err := service.Register(ctx, domain.RegisterRequest{
		Name:     "Ola Nordmann",
		Email:    "ola@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	err = service.UpdateUser(ctx, domain.UpdateUserRequest{Bio: "Selling old skis"}, registered.ID)
	require.NoError(t, err)

	me, err := service.Me(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ola Nordmann", me.Name)
	assert.Equal(t, "Selling old skis", me.Bio)
}
