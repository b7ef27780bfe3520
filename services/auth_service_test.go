package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
)

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailTaken
		}
		if u.Username == user.Username {
			return repositories.ErrUserUsernameTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "coach",
		Email:    "Coach@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "coach", user.Username)
	assert.Equal(t, "coach@example.com", user.Email)
	assert.Equal(t, models.RoleViewer, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, LoginInput{Username: "coach", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "coach",
		Email:    "coach@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "coach", Email: "a@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "coach", Email: "b@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrAuthUsernameTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "coach", Email: "a@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginInput{Username: "coach", Password: "wrong-horse"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginInput{Username: "nobody", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}
