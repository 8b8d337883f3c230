package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	DatabaseURI        string
	SupabaseURL        string
	SupabaseServiceKey string
	StorageBucket      string
	JWTSecret          string
	AdminEmail         string
	AdminPassword      string
	Environment        string
	ShutdownTimeout    time.Duration
	MaxUploadSize      int64
	SweepOnStart       bool
	PasswordCost       int
}

const (
	defaultRunAddress      = ":5000"
	defaultStorageBucket   = "smartxerox-files"
	defaultJWTSecret       = "change-me-in-production"
	defaultEnvironment     = "development"
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxUploadSize   = 10 << 20
	defaultPasswordCost    = 10
)

// EnvironmentProduction switches gin to release mode and raises the log level.
const EnvironmentProduction = "production"

// Production reports whether the service runs in production mode.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Environment, EnvironmentProduction)
}

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		SupabaseURL:        getString(lookup, "SUPABASE_URL", ""),
		SupabaseServiceKey: getString(lookup, "SUPABASE_SERVICE_KEY", ""),
		StorageBucket:      getString(lookup, "STORAGE_BUCKET", defaultStorageBucket),
		JWTSecret:          getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AdminEmail:         getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:      getString(lookup, "ADMIN_PASSWORD", ""),
		Environment:        getString(lookup, "ENVIRONMENT", defaultEnvironment),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxUploadSize:      getInt64(lookup, "MAX_UPLOAD_SIZE", defaultMaxUploadSize),
		SweepOnStart:       getBool(lookup, "SWEEP_ON_START", false),
		PasswordCost:       int(getInt64(lookup, "BCRYPT_COST", defaultPasswordCost)),
	}

	fs := flag.NewFlagSet("smartxerox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SupabaseURL, "supabase-url", cfg.SupabaseURL, "Supabase project URL")
	fs.StringVar(&cfg.StorageBucket, "bucket", cfg.StorageBucket, "Storage bucket for order files")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.Environment, "env", cfg.Environment, "Runtime environment")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.Int64Var(&cfg.MaxUploadSize, "max-upload", cfg.MaxUploadSize, "Maximum upload size in bytes")
	fs.IntVar(&cfg.PasswordCost, "bcrypt-cost", cfg.PasswordCost, "bcrypt cost for student passwords")
	fs.BoolVar(&cfg.SweepOnStart, "sweep-on-start", cfg.SweepOnStart, "Run the expiry sweep once at startup")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	secrets := []struct {
		env  string
		dest *string
	}{
		{"JWT_SECRET_FILE", &cfg.JWTSecret},
		{"SUPABASE_SERVICE_KEY_FILE", &cfg.SupabaseServiceKey},
		{"ADMIN_PASSWORD_FILE", &cfg.AdminPassword},
	}
	for _, s := range secrets {
		if err := readSecretFile(lookup, s.env, s.dest); err != nil {
			return nil, err
		}
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = defaultMaxUploadSize
	}

	if cfg.PasswordCost <= 0 {
		cfg.PasswordCost = defaultPasswordCost
	}

	if cfg.StorageBucket == "" {
		cfg.StorageBucket = defaultStorageBucket
	}

	cfg.SupabaseURL = strings.TrimRight(cfg.SupabaseURL, "/")

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.SupabaseURL == "" {
		return nil, fmt.Errorf("supabase URL must be provided")
	}

	if cfg.SupabaseServiceKey == "" {
		return nil, fmt.Errorf("supabase service key must be provided")
	}

	return cfg, nil
}

func readSecretFile(lookup envLookup, key string, dest *string) error {
	path, ok := lookup(key)
	if !ok || path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", strings.ToLower(key), err)
	}
	*dest = strings.TrimSpace(string(content))
	return nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
