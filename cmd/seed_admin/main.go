package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/livefit/livefit-api/internal/config"
	"github.com/livefit/livefit-api/internal/domain/user"
	"github.com/livefit/livefit-api/internal/pkg/database"
	"github.com/livefit/livefit-api/internal/pkg/logger"
	"github.com/livefit/livefit-api/internal/pkg/password"
	"github.com/livefit/livefit-api/internal/pkg/validator"
)

var errNotAdmin = errors.New("account exists with a non-admin role")

// Usage: seed_admin -email admin@example.com -name Admin
// The password is read from ADMIN_PASSWORD.
func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "Admin", "admin display name")
	flag.Parse()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := seedAdmin(ctx, user.NewRepository(db), *email, *name, os.Getenv("ADMIN_PASSWORD"))
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("Failed to seed admin")
	}
	if created {
		log.Info().Str("email", *email).Msg("Admin account created")
	} else {
		log.Info().Str("email", *email).Msg("Admin account already present, password verified")
	}
}

// seedAdmin creates an ADMIN account, or checks an existing one. It reports
// whether a new account was created.
func seedAdmin(ctx context.Context, repo user.Repository, email, name, pwd string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validator.ValidateVar(email, "required,email"); err != nil {
		return false, fmt.Errorf("invalid email %q", email)
	}
	if !validator.IsStrongPassword(pwd) {
		return false, errors.New("ADMIN_PASSWORD must be 8-16 characters with upper, lower case and a digit")
	}

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if existing.Role != user.RoleAdmin {
			return false, fmt.Errorf("%w: %s", errNotAdmin, existing.Role)
		}
		if !password.Verify(pwd, existing.PasswordHash) {
			return false, errors.New("password does not match the stored hash")
		}
		return false, nil
	}

	hash, err := password.Hash(pwd)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	err = repo.Create(ctx, &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
