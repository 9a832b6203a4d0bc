package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/livefit/livefit-api/internal/config"
	"github.com/livefit/livefit-api/internal/domain/auth"
	"github.com/livefit/livefit-api/internal/domain/booking"
	"github.com/livefit/livefit-api/internal/domain/coach"
	"github.com/livefit/livefit-api/internal/domain/course"
	"github.com/livefit/livefit-api/internal/domain/credit"
	"github.com/livefit/livefit-api/internal/domain/revenue"
	"github.com/livefit/livefit-api/internal/domain/skill"
	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/middleware"
	"github.com/livefit/livefit-api/internal/pkg/database"
	"github.com/livefit/livefit-api/internal/pkg/imaging"
	"github.com/livefit/livefit-api/internal/pkg/jwt"
	"github.com/livefit/livefit-api/internal/pkg/logger"
	pkgresponse "github.com/livefit/livefit-api/internal/pkg/response"
	"github.com/livefit/livefit-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting LiveFit API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)
	if redis == nil {
		log.Warn().Msg("REDIS_URL not set: refresh tokens and rate limiting disabled")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	fileStorage, err := newStorage(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create storage")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	bookingStore := booking.NewPostgresStore(db)
	revenueStore := revenue.NewPostgresStore(db)
	skillRepo := skill.NewRepository(db)
	courseRepo := course.NewRepository(db)
	coachRepo := coach.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService, auth.NewRedisTokenStore(redis))
	userService := user.NewService(userRepo)
	creditService := credit.NewService(creditRepo)
	bookingService := booking.NewService(bookingStore)
	revenueService := revenue.NewService(revenueStore)
	skillService := skill.NewService(skillRepo)
	courseService := course.NewService(courseRepo)
	coachService := coach.NewService(coachRepo, fileStorage, imaging.NewProcessor(imaging.DefaultConfig()))

	h := &handlers{
		auth:    auth.NewHandler(authService),
		user:    user.NewHandler(userService),
		credit:  credit.NewHandler(creditService),
		booking: booking.NewHandler(bookingService),
		revenue: revenue.NewHandler(revenueService),
		skill:   skill.NewHandler(skillService),
		course:  course.NewHandler(courseService),
		coach:   coach.NewHandler(coachService),
	}

	authMiddleware := middleware.Auth(jwtService, &roleLookup{repo: userRepo})
	limiter := middleware.NewRateLimiter(redis)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))
	if cfg.RateLimitPerMinute > 0 {
		r.Use(limiter.Limit("api", cfg.RateLimitPerMinute, time.Minute))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context(), db); err != nil {
			logger.FromContext(r.Context()).Error().Err(err).Msg("health check: database unreachable")
			pkgresponse.Unavailable(w, "Database unreachable")
			return
		}
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	if cfg.S3Bucket == "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.LocalUploads))))
	}

	authLimit := func(next http.Handler) http.Handler { return next }
	if cfg.AuthRateLimitPerMinute > 0 {
		authLimit = limiter.Limit("auth", cfg.AuthRateLimitPerMinute, time.Minute)
	}
	mountRoutes(r, h, authMiddleware, authLimit)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

type handlers struct {
	auth    *auth.Handler
	user    *user.Handler
	credit  *credit.Handler
	booking *booking.Handler
	revenue *revenue.Handler
	skill   *skill.Handler
	course  *course.Handler
	coach   *coach.Handler
}

// mountRoutes registers every API route. authLimit guards the credential endpoints.
func mountRoutes(r chi.Router, h *handlers, authMiddleware, authLimit func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		r.With(authLimit).Post("/signup", h.auth.Signup)
		r.With(authLimit).Post("/login", h.auth.Login)
		r.Post("/refresh", h.auth.Refresh)
		r.Post("/logout", h.auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/profile", h.user.GetProfile)
			r.Put("/profile", h.user.UpdateProfile)
			r.Put("/password", h.user.ChangePassword)
			r.Get("/courses", h.booking.Summary)
			r.Get("/credit-package", h.credit.ListPurchases)
		})
	})

	r.Mount("/api/credit-package", h.credit.Routes(authMiddleware))

	r.Route("/api/coaches", func(r chi.Router) {
		r.Mount("/skill", h.skill.Routes(authMiddleware))
		r.Get("/", h.coach.List)
		r.Get("/{coachId}", h.coach.Get)
		r.Get("/{coachId}/courses", h.course.ListByCoach)
	})

	r.Route("/api/courses", func(r chi.Router) {
		r.Get("/", h.course.List)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/{courseId}", h.booking.Book)
			r.Delete("/{courseId}", h.booking.Cancel)
		})
	})

	r.Route("/api/admin/coaches", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.coach.GetOwn)
		r.Put("/", h.coach.UpdateOwn)
		r.Post("/image", h.coach.UploadImage)
		r.Get("/revenue", h.revenue.Monthly)
		r.Mount("/courses", h.course.CoachRoutes())
		r.Post("/{userId}", h.coach.Promote)
	})
}

// newStorage returns S3 storage when a bucket is configured, local disk otherwise
func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.S3Bucket == "" {
		local, err := storage.NewLocalStorage(cfg.LocalUploads, strings.TrimRight(cfg.BackendURL, "/")+"/uploads")
		if err != nil {
			return nil, err
		}
		log.Warn().Str("dir", cfg.LocalUploads).Msg("S3_BUCKET not set, storing uploads on local disk")
		return local, nil
	}

	s3, err := storage.NewS3Storage(ctx, storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return nil, err
	}
	return s3, nil
}

// roleLookup adapts user.Repository to middleware.RoleLookup
type roleLookup struct {
	repo user.Repository
}

func (l *roleLookup) CurrentRole(ctx context.Context, id uuid.UUID) (string, error) {
	role, err := l.repo.GetRole(ctx, id)
	if errors.Is(err, user.ErrUserNotFound) {
		return "", middleware.ErrUnknownUser
	}
	if err != nil {
		return "", err
	}
	return string(role), nil
}
