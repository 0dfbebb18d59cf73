// Package config reads runtime settings from the environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	DefaultDataFile  = "datos/cuenta.dat"
	DefaultExportDir = "exportaciones_banco"
	DefaultLogLevel  = "info"
)

// Config holds every setting of the program.
type Config struct {
	DataFile    string
	ExportDir   string
	LogLevel    string
	LedgerTable string
	RedisAddr   string
	RedisPass   string
	AccountKey  string
	QueueURL    string
}

// MirrorEnabled reports whether snapshots should be copied to DynamoDB.
func (c Config) MirrorEnabled() bool { return c.LedgerTable != "" }

// CacheEnabled reports whether snapshots should be copied to Redis.
func (c Config) CacheEnabled() bool { return c.RedisAddr != "" }

// NotificationsEnabled reports whether movements should be published to SQS.
func (c Config) NotificationsEnabled() bool { return c.QueueURL != "" }

// DataDir returns the directory holding the state file.
func (c Config) DataDir() string { return filepath.Dir(c.DataFile) }

// Load reads the given .env files (default ".env") when present and then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	return Config{
		DataFile:    getenv("BANK_DATA_FILE", DefaultDataFile),
		ExportDir:   getenv("BANK_EXPORT_DIR", DefaultExportDir),
		LogLevel:    getenv("LOG_LEVEL", DefaultLogLevel),
		LedgerTable: os.Getenv("DYNAMODB_LEDGER_TABLE_NAME"),
		RedisAddr:   os.Getenv("BANK_REDIS_ADDR"),
		RedisPass:   os.Getenv("BANK_REDIS_PASSWORD"),
		AccountKey:  os.Getenv("BANK_ACCOUNT_KEY"),
		QueueURL:    os.Getenv("SQS_QUEUE_URL"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
