package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- fakes ---

type fakeUserRepo struct {
	byID    map[uuid.UUID]User
	byEmail map[string]uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]User{}, byEmail: map[string]uuid.UUID{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	id, ok := f.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	u, ok := f.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, u.Email)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Generate(ctx context.Context, u User) (string, error) {
	return "token-for-" + u.ID.String(), nil
}

// --- tests ---

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	t.Parallel()
	svc := NewAuthService(newFakeUserRepo(), fakeTokens{})

	res, err := svc.Register(context.Background(), "Ann", "A@X.com", "secret1", RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.User.Email, "email must be case-normalized")
	assert.Equal(t, RoleUser, res.User.Role)
	assert.NotEmpty(t, res.Token)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("secret1")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeTokens{})

	_, err := svc.Register(context.Background(), "Ann", "a@x.com", "secret1", RoleUser)
	require.NoError(t, err)

	// Differently cased email still collides and must not add a record.
	_, err = svc.Register(context.Background(), "Ann2", "A@X.COM", "secret2", RoleUser)
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, repo.byID, 1)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeTokens{})
	registered, err := svc.Register(context.Background(), "Ann", "a@x.com", "secret1", RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "correct credentials", email: "a@x.com", password: "secret1"},
		{name: "case-insensitive email", email: "A@X.com", password: "secret1"},
		{name: "wrong password", email: "a@x.com", password: "wrongpw", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "b@x.com", password: "secret1", wantErr: ErrInvalidCredentials},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), tc.email, tc.password)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.User.ID, res.User.ID)
			assert.NotEmpty(t, res.Token)
		})
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	t.Parallel()
	svc := NewAuthService(newFakeUserRepo(), fakeTokens{})
	_, err := svc.Register(context.Background(), "Ann", "a@x.com", "secret1", RoleUser)
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), "nobody@x.com", "secret1")
	_, errWrongPw := svc.Login(context.Background(), "a@x.com", "badpass")
	// Indistinguishable failures prevent account enumeration.
	assert.Equal(t, errUnknown, errWrongPw)
}

func TestProfile_DeletedUser(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeTokens{})
	res, err := svc.Register(context.Background(), "Ann", "a@x.com", "secret1", RoleUser)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), res.User.ID))
	_, err = svc.Profile(context.Background(), res.User.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestParseRole(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{in: "", want: RoleUser, wantOK: true},
		{in: "USER", want: RoleUser, wantOK: true},
		{in: "ADMIN", want: RoleAdmin, wantOK: true},
		{in: "admin", wantOK: false},
		{in: "ROOT", wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseRole(tc.in)
		assert.Equal(t, tc.wantOK, ok, "input %q", tc.in)
		if tc.wantOK {
			assert.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
