// Package config holds the settings shared by every command: where the
// ledger lives, which year the historical ledger starts in, and the
// hand-maintained table of external ids.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pable/go-poker-ledger/internal/identity"
)

const DefaultBaseYear = 2024

// Config is resolved once per process: defaults, then environment, then flags.
type Config struct {
	DBPath   string
	BaseYear int
	KnownIDs identity.KnownIDs

	// SeedNicknames maps a ledger player name to the nickname the player is
	// expected to use in uploads.
	SeedNicknames map[string]string
}

// DefaultKnownIDs is the group's own external id table.
func DefaultKnownIDs() identity.KnownIDs {
	return identity.KnownIDs{
		"Gx6CTDK1-V": "Garrett",
		"yA8s_xTBKa": "Sampath",
		"3eq6PWL0fX": "Abhi",
		"LxxSO_Q8Xm": "Shik",
		"dLUVSEvjqU": "Ano",
	}
}

// DefaultSeedNicknames lists players who upload under a stable nickname.
func DefaultSeedNicknames() map[string]string {
	return map[string]string{
		"Nary": "Nary",
		"Hoot": "Hoot",
	}
}

// DefaultDBPath is ~/.pokerledger/ledger.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".pokerledger", "ledger.db")
}

// Load reads POKERLEDGER_DB, POKERLEDGER_BASE_YEAR and POKERLEDGER_KNOWN_IDS
// over the defaults.
func Load() (Config, error) {
	cfg := Config{
		DBPath:        getEnv("POKERLEDGER_DB", DefaultDBPath()),
		BaseYear:      getEnvInt("POKERLEDGER_BASE_YEAR", DefaultBaseYear),
		KnownIDs:      DefaultKnownIDs(),
		SeedNicknames: DefaultSeedNicknames(),
	}
	if path := os.Getenv("POKERLEDGER_KNOWN_IDS"); path != "" {
		known, err := LoadKnownIDs(path)
		if err != nil {
			return cfg, err
		}
		cfg.KnownIDs = known
	}
	return cfg, nil
}

// LoadKnownIDs reads a JSON object of external id -> player name.
func LoadKnownIDs(path string) (identity.KnownIDs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read known ids: %w", err)
	}
	var known identity.KnownIDs
	if err := json.Unmarshal(data, &known); err != nil {
		return nil, fmt.Errorf("parse known ids %s: %w", path, err)
	}
	return known, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
