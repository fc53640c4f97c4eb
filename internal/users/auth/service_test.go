// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodiahq/melodia/internal/platform/apperr"
	"github.com/melodiahq/melodia/internal/platform/sec"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users map[string]*User // keyed by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*User{}}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	if u, ok := r.users[userID]; ok {
		u.PasswordHash = newHash
	}
	return nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, userID string) error {
	if u, ok := r.users[userID]; ok {
		u.IsVerified = true
	}
	return nil
}

// fakeSessionRepo is an in-memory SessionRepository.
type fakeSessionRepo struct {
	sessions map[string]*Session // keyed by ID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	for _, s := range r.sessions {
		if s.TokenHash == tokenHash && !s.IsRevoked && s.ExpiresAt.After(time.Now()) {
			return s, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (r *fakeSessionRepo) Revoke(_ context.Context, sessionID string) error {
	if s, ok := r.sessions[sessionID]; ok {
		s.IsRevoked = true
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAll(_ context.Context, userID string) error {
	for _, s := range r.sessions {
		if s.UserID == userID {
			s.IsRevoked = true
		}
	}
	return nil
}

func (r *fakeSessionRepo) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	for _, s := range r.sessions {
		if s.UserID == userID && s.ID != currentSessionID {
			s.IsRevoked = true
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) error { return nil }

// fakeTokenStore is an in-memory TokenStore.
type fakeTokenStore struct {
	tokens map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]string{}}
}

func (s *fakeTokenStore) Set(_ context.Context, token, userID string, _ time.Duration) error {
	s.tokens[token] = userID
	return nil
}

func (s *fakeTokenStore) Get(_ context.Context, token string) (string, error) {
	if userID, ok := s.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Token")
}

func (s *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

// staticTokenProvider returns a fixed string instead of a signed JWT.
type staticTokenProvider struct{}

func (staticTokenProvider) GenerateAccessToken(_, _, _ string, _ time.Duration) (string, error) {
	return "access-token", nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	return NewService(users, sessions, newFakeTokenStore(), newFakeTokenStore(), staticTokenProvider{}), users, sessions
}

func TestRegister_CreatesMemberAccount(t *testing.T) {
	service, users, _ := newTestService()

	user, err := service.Register(context.Background(), RegisterInput{
		Username:    "riverbend",
		Email:       "river@example.com",
		Password:    "correct-horse",
		DisplayName: "River Bend",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleMember, user.Role)
	assert.False(t, user.IsVerified)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "correct-horse", users.users[user.ID].PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "first", Email: "dup@example.com", Password: "password1",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{
		Username: "second", Email: "dup@example.com", Password: "password2",
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "riverbend", Email: "river@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), LoginInput{
		Login: "river@example.com", Password: "wrong-horse",
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestLogin_ThenRefreshRotatesToken(t *testing.T) {
	service, _, sessions := newTestService()

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "riverbend", Email: "river@example.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	login, err := service.Login(context.Background(), LoginInput{
		Login: "riverbend", Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.RefreshToken)

	refreshed, err := service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The rotated-out token must be unusable.
	_, err = service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	require.Error(t, err)

	// Exactly one live session should remain.
	live := 0
	for _, s := range sessions.sessions {
		if !s.IsRevoked {
			live++
		}
	}
	assert.Equal(t, 1, live)
}

func TestLogout_IsIdempotent(t *testing.T) {
	service, _, _ := newTestService()

	require.NoError(t, service.Logout(context.Background(), "unknown-token"))
}
