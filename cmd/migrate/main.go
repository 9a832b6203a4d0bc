package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"github.com/livefit/livefit-api/internal/config"
	"github.com/livefit/livefit-api/internal/pkg/logger"
)

// Usage: migrate [-dir migrations] [up|down|version]
func main() {
	dir := flag.String("dir", "migrations", "directory holding *.up.sql and *.down.sql files")
	flag.Parse()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	path, err := findMigrations(*dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("Migrations directory not found")
	}

	m, err := migrate.New("file://"+filepath.ToSlash(path), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise migrations")
	}
	defer m.Close()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal().Err(verr).Msg("Failed to read version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current migration version")
		return
	default:
		log.Fatal().Str("command", cmd).Msg("Unknown command, expected up, down or version")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("command", cmd).Msg("Migration failed")
	}
	log.Info().Str("command", cmd).Msg("Migration successful")
}

// findMigrations resolves dir against the working directory and its parents
func findMigrations(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return dir, statDir(dir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for current := cwd; ; current = filepath.Dir(current) {
		candidate := filepath.Join(current, dir)
		if statDir(candidate) == nil {
			return candidate, nil
		}
		if filepath.Dir(current) == current {
			break
		}
	}
	return "", os.ErrNotExist
}

func statDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return os.ErrNotExist
	}
	return nil
}
