package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmptySecret        = errors.New("jwt secret is empty")
)

// Principal is an authenticated identity.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Verifier checks a credential pair and returns the matching principal.
// Implementations must return ErrInvalidCredentials on any mismatch without
// distinguishing unknown user from wrong password.
type Verifier interface {
	Verify(username, password string) (Principal, error)
}

// StaticVerifier matches a single configured principal by plain equality.
type StaticVerifier struct {
	Principal Principal
	Password  string
}

func (v StaticVerifier) Verify(username, password string) (Principal, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Principal.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password))
	if userOK&passOK != 1 {
		return Principal{}, ErrInvalidCredentials
	}
	return v.Principal, nil
}

// BcryptVerifier matches a single configured principal against a bcrypt
// password hash.
type BcryptVerifier struct {
	Principal    Principal
	PasswordHash string
}

func (v BcryptVerifier) Verify(username, password string) (Principal, error) {
	if username != v.Principal.Username {
		return Principal{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password)) != nil {
		return Principal{}, ErrInvalidCredentials
	}
	return v.Principal, nil
}

// Claims is the token payload: the principal plus standard timing claims.
type Claims struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager refuses an empty secret so the server never signs tokens
// anyone can forge.
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    time.Hour,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the principal, valid for one hour.
func (tm *TokenManager) Issue(p Principal) (string, error) {
	now := tm.now()
	claims := Claims{
		ID:       p.ID,
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(tm.secret)
}

// Verify checks signature and expiry and returns the embedded principal.
func (tm *TokenManager) Verify(tokenStr string) (Principal, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(tm.now))
	if err != nil || !tok.Valid {
		return Principal{}, ErrInvalidToken
	}
	return Principal{ID: claims.ID, Username: claims.Username}, nil
}
