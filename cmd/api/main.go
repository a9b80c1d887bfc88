package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/m-bikko/freedom-hackathon/docs" // swagger docs

	"github.com/m-bikko/freedom-hackathon/internal/cache"
	"github.com/m-bikko/freedom-hackathon/internal/config"
	"github.com/m-bikko/freedom-hackathon/internal/db"
	"github.com/m-bikko/freedom-hackathon/internal/handler"
	"github.com/m-bikko/freedom-hackathon/internal/repository"
	"github.com/m-bikko/freedom-hackathon/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Freedom Ticketon Recommender API
// @version 1.0
// @description API para correr el pipeline de recomendación de eventos (batch sobre dos CSV)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Printf("[mongo] error creando índices: %v", err)
	}
	cancel()

	// carpetas de trabajo
	for _, dir := range []string{cfg.UploadDir, cfg.ResultDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("[main] no se pudo crear %s: %v", dir, err)
		}
	}

	// repos
	userRepo := repository.NewUserRepository()
	runRepo := repository.NewRunRepository()

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	// cola de corridas con pool de workers acotado
	jobSvc := service.NewJobService(cfg, runRepo)
	// limpieza periódica de archivos viejos
	service.StartCleanup(cfg)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	jobH := handler.NewJobHandler(cfg, jobSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", jobH.Create)
			r.Get("/{id}", jobH.Status)
			r.Get("/{id}/ws", jobH.ProgressWS)
			r.Get("/{id}/result", jobH.Download)
			r.Post("/{id}/cancel", jobH.Cancel)
		})

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())
			r.Get("/admin/runs", jobH.ListRuns)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
