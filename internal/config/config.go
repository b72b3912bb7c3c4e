// Package config loads runtime settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkale/dishpoll/internal/models"
)

// Config holds everything the server needs at startup.
type Config struct {
	// Port is the HTTP listen port (PORT, default 8080).
	Port int

	// DBPath is the SQLite database location (DB_PATH, default ./data/dishpoll.db).
	DBPath string

	// CatalogURL overrides the upstream dish feed (CATALOG_URL, empty = default feed).
	CatalogURL string

	// JWTSecret signs session tokens (JWT_SECRET). When unset a random
	// secret is generated, which invalidates sessions on restart.
	JWTSecret string

	// TokenTTL is how long session tokens stay valid (TOKEN_TTL, default 24h).
	TokenTTL time.Duration

	// Roster is the fixed list of known voters. Loaded from ROSTER_PATH
	// when set, otherwise the built-in demo roster is used.
	Roster []models.User
}

// UserIDs returns the roster's IDs in roster order, for ballot enumeration.
func (c Config) UserIDs() []string {
	ids := make([]string, len(c.Roster))
	for i, user := range c.Roster {
		ids[i] = user.ID
	}
	return ids
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		DBPath:     getEnv("DB_PATH", "./data/dishpoll.db"),
		CatalogURL: os.Getenv("CATALOG_URL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       8080,
		TokenTTL:   24 * time.Hour,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL %q: %w", ttlStr, err)
		}
		cfg.TokenTTL = ttl
	}

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		cfg.JWTSecret = secret
	}

	if rosterPath := os.Getenv("ROSTER_PATH"); rosterPath != "" {
		roster, err := loadRoster(rosterPath)
		if err != nil {
			return Config{}, err
		}
		cfg.Roster = roster
	} else {
		roster, err := demoRoster()
		if err != nil {
			return Config{}, err
		}
		cfg.Roster = roster
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// rosterEntry is the on-disk roster format: password hashes only, never
// plaintext passwords.
type rosterEntry struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// loadRoster reads the voter roster from a JSON file shaped as
// [{"id":"1","username":"john_doe","passwordHash":"$2a$..."}, ...].
func loadRoster(path string) ([]models.User, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var entries []rosterEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("roster file %s contains no users", path)
	}

	roster := make([]models.User, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.ID == "" || e.Username == "" || e.PasswordHash == "" {
			return nil, fmt.Errorf("roster entry %d is missing id, username or passwordHash", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("roster contains duplicate user ID %s", e.ID)
		}
		seen[e.ID] = true
		roster[i] = models.User{ID: e.ID, Username: e.Username, PasswordHash: e.PasswordHash}
	}
	return roster, nil
}

// demoRoster builds the built-in five-voter roster. Passwords are hashed
// at startup so no hash material is baked into the binary.
func demoRoster() ([]models.User, error) {
	demo := []struct {
		id, username, password string
	}{
		{"1", "john_doe", "password123"},
		{"2", "jane_smith", "password456"},
		{"3", "bob_wilson", "password789"},
		{"4", "alice_jones", "password101"},
		{"5", "charlie_brown", "password202"},
	}

	roster := make([]models.User, len(demo))
	for i, d := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash demo password: %w", err)
		}
		roster[i] = models.User{ID: d.id, Username: d.username, PasswordHash: string(hash)}
	}
	return roster, nil
}
