package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKeys(t *testing.T) {
	assert.Equal(t, "session:abc:user", UserKey("session", "abc"))
	assert.Equal(t, "session:abc:token", TokenKey("session", "abc"))
}

func TestMemorySessionStore_RoundTrip(t *testing.T) {
	store := NewMemorySessionStore("jb", time.Hour)
	user := &domain.User{ID: "1", Email: "seeker@test.com", Role: domain.RoleJobSeeker, FullName: "John Doe"}

	require.NoError(t, store.Save(context.Background(), "tok", user))

	got, err := store.Load(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Role, got.Role)

	_, err = store.Load(context.Background(), "other")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemorySessionStore("", time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), "tok", &domain.User{ID: "1", Email: "a@b.c"}))

	now = now.Add(59 * time.Second)
	_, err := store.Load(context.Background(), "tok")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Load(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDecodeSession(t *testing.T) {
	tests := []struct {
		name     string
		rawUser  string
		rawToken string
		wantErr  bool
	}{
		{name: "valid", rawUser: `{"id":"1","email":"a@b.c","user_type":"job_seeker"}`, rawToken: "tok"},
		{name: "token key missing", rawUser: `{"id":"1","email":"a@b.c"}`, rawToken: "", wantErr: true},
		{name: "token mismatch", rawUser: `{"id":"1","email":"a@b.c"}`, rawToken: "other", wantErr: true},
		{name: "malformed json", rawUser: `{"id":`, rawToken: "tok", wantErr: true},
		{name: "missing id", rawUser: `{"email":"a@b.c"}`, rawToken: "tok", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := decodeSession("tok", tt.rawUser, tt.rawToken)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCorruptSession)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "1", u.ID)
		})
	}
}
