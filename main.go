package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/assignment-manager/api-go/internal/auth"
	"github.com/assignment-manager/api-go/internal/config"
	"github.com/assignment-manager/api-go/internal/db"
	"github.com/assignment-manager/api-go/internal/handlers"
	"github.com/assignment-manager/api-go/internal/middleware"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("config: JWT_SECRET must be set: %v", err)
	}

	d, err := db.Open(cfg.DSN(), cfg.MaxOpenConns)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer d.Close()

	if err := db.EnsureSchema(d); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	principal := auth.Principal{ID: 1, Username: cfg.DemoUsername}
	var verifier auth.Verifier = auth.StaticVerifier{Principal: principal, Password: cfg.DemoPassword}
	if cfg.DemoPasswordHash != "" {
		verifier = auth.BcryptVerifier{Principal: principal, PasswordHash: cfg.DemoPasswordHash}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	authH := handlers.NewAuth(verifier, tokens)
	asgH := handlers.NewAssignments(d, cfg.RequestTimeout)

	// Public
	r.POST("/login", authH.Login)
	r.GET("/assignments", asgH.List)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// All mutating operations require a bearer token.
	guarded := r.Group("/")
	guarded.Use(middleware.RequireAuth(tokens))
	{
		guarded.POST("/assignments", asgH.Create)
		guarded.PUT("/assignments/:id", asgH.Update)
		guarded.DELETE("/assignments/:id", asgH.Delete)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
