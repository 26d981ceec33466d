package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds application configuration
type Config struct {
	DataDir string
	Backend string
	DBPath  string
	Plain   bool
}

// LoadConfig reads an optional .env file, then the environment, falling
// back to defaults under ~/.local/share/babytick.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	dataDir := envOr("BABYTICK_DATA_DIR", filepath.Join(os.Getenv("HOME"), ".local", "share", "babytick"))
	plain, _ := strconv.ParseBool(envOr("BABYTICK_PLAIN", "false"))

	return &Config{
		DataDir: dataDir,
		Backend: envOr("BABYTICK_BACKEND", BackendFile),
		DBPath:  os.Getenv("BABYTICK_DB_PATH"),
		Plain:   plain,
	}
}

// databasePath defaults the SQLite file to live inside the data directory.
func (c *Config) databasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, "babytick.db")
}

// OpenStore opens the backend named by the config.
func (c *Config) OpenStore() (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(c.Backend) {
	case BackendFile, "":
		store, err = NewFileStore(c.DataDir)
	case BackendSQLite, "sqlite3":
		store, err = NewSQLiteStore(c.databasePath())
	default:
		return nil, fmt.Errorf("unsupported backend: %s", c.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
