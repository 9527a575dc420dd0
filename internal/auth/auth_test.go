package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var demo = Principal{ID: 1, Username: "admin"}

func TestNewTokenManagerEmptySecret(t *testing.T) {
	_, err := NewTokenManager("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	token, err := tm.Issue(demo)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	p, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, demo, p)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	issued := time.Now()
	tm.now = func() time.Time { return issued }
	token, err := tm.Issue(demo)
	require.NoError(t, err)

	// Just inside the window still verifies.
	tm.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = tm.Verify(token)
	assert.NoError(t, err)

	// Past the one-hour window it does not.
	tm.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	tm1, err := NewTokenManager("secret-one")
	require.NoError(t, err)
	tm2, err := NewTokenManager("secret-two")
	require.NoError(t, err)

	token, err := tm1.Issue(demo)
	require.NoError(t, err)

	_, err = tm2.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	tm, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := tm.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestStaticVerifier(t *testing.T) {
	v := StaticVerifier{Principal: demo, Password: "admin123"}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "admin", "admin123", false},
		{"wrong password", "admin", "nope", true},
		{"wrong username", "root", "admin123", true},
		{"both wrong", "root", "nope", true},
		{"empty fields", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := v.Verify(tt.username, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, demo, p)
		})
	}
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	v := BcryptVerifier{Principal: demo, PasswordHash: string(hash)}

	p, err := v.Verify("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, demo, p)

	_, err = v.Verify("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = v.Verify("someone", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
