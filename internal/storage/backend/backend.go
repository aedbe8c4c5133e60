// Package backend picks and opens the storage.Provider for a database target.
package backend

import (
	"errors"
	"fmt"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/keyring"
	"github.com/estudai/estudai/internal/logger"
	"github.com/estudai/estudai/internal/realtime"
	"github.com/estudai/estudai/internal/storage"
	"github.com/estudai/estudai/internal/storage/postgres"
	"github.com/estudai/estudai/internal/storage/sqlite"
	"github.com/estudai/estudai/internal/utils"
)

// Migrator is implemented by stores that can apply schema migrations.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

// Target is a resolved database location.
type Target struct {
	Value string
	// FromKeyring is set when Value came from the OS keyring, where a
	// connection string may carry its password.
	FromKeyring bool
}

func (t Target) IsPostgres() bool {
	return postgres.IsTarget(t.Value)
}

// Resolve returns configured unless it is the default SQLite path and a
// connection string is stored in the keyring.
func Resolve(configured string) Target {
	if configured != "" && configured != constants.DefaultConfigPath {
		return Target{Value: configured}
	}
	connStr, err := keyring.GetConnectionString()
	if err == nil && connStr != "" {
		return Target{Value: connStr, FromKeyring: true}
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup skipped", "error", err)
	}
	return Target{Value: constants.DefaultConfigPath}
}

// Open builds the store for t without connecting. Passwords embedded in a
// connection string are refused unless it came from the keyring.
func Open(t Target, hub realtime.Hub) (storage.Provider, error) {
	if t.IsPostgres() {
		if ok, err := postgres.ValidateConnString(t.Value); !ok {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) && t.FromKeyring {
				return postgres.New(t.Value, hub), nil
			}
			return nil, err
		}
		return postgres.New(t.Value, hub), nil
	}
	return sqlite.NewStore(utils.ExpandHome(t.Value), hub), nil
}

// NewHub returns a Redis hub when addr is set and an in-process hub otherwise.
func NewHub(redisAddr string) (realtime.Hub, error) {
	if redisAddr == "" {
		return realtime.NewMemoryHub(), nil
	}
	client, err := realtime.NewRedisClient(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("realtime: %w", err)
	}
	logger.Info("Realtime events relayed through redis", "addr", redisAddr)
	return realtime.NewRedisHub(client), nil
}
