package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/assignment-manager/api-go/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoginRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret")
	require.NoError(t, err)

	verifier := auth.StaticVerifier{
		Principal: auth.Principal{ID: 1, Username: "admin"},
		Password:  "admin123",
	}
	h := NewAuth(verifier, tm)
	r := gin.New()
	r.POST("/login", h.Login)
	return r, tm
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	r, tm := newLoginRouter(t)

	w := do(r, http.MethodPost, "/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out["token"])

	p, err := tm.Verify(out["token"])
	require.NoError(t, err)
	assert.Equal(t, auth.Principal{ID: 1, Username: "admin"}, p)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newLoginRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"username":"admin","password":"wrong"}`},
		{"wrong username", `{"username":"root","password":"admin123"}`},
		{"missing fields", `{}`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/login", tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid credentials")
		})
	}
}
