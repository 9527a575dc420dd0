package handlers

import (
	"log"
	"net/http"

	"github.com/assignment-manager/api-go/internal/auth"
	"github.com/gin-gonic/gin"
)

type Auth struct {
	verifier auth.Verifier
	tokens   *auth.TokenManager
}

func NewAuth(v auth.Verifier, tm *auth.TokenManager) *Auth {
	return &Auth{verifier: v, tokens: tm}
}

// Login checks the credential pair and returns a one-hour bearer token.
// Any mismatch, including missing fields, is a single 401 — the response
// never hints whether the username or the password was wrong.
func (h *Auth) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	_ = c.ShouldBindJSON(&in)

	p, err := h.verifier.Verify(in.Username, in.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(p)
	if err != nil {
		log.Printf("signing token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
