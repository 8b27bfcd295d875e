package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	AllowedOrigins []string
	Parallelism    int
	InitSchema     bool
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, origins string

	fs := flag.NewFlagSet("pollbook", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&origins, "origins", "", "Comma separated CORS origins")

	// Query tuning
	fs.IntVar(&cfg.Parallelism, "parallel", 0, "Concurrent per-election enrichments")
	fs.BoolVar(&cfg.InitSchema, "init-schema", false, "Create archive tables if missing")
	fs.StringVar(&envFile, "env-file", "", "Load environment from file (default .env if present)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Load .env before falling back to the environment
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if origins == "" {
		origins = os.Getenv("ALLOWED_ORIGINS")
	}
	if origins == "" {
		origins = "*"
	}
	cfg.AllowedOrigins = strings.Split(origins, ",")

	if cfg.Parallelism == 0 {
		if s := os.Getenv("ENRICH_PARALLELISM"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid ENRICH_PARALLELISM env variable")
			}
			cfg.Parallelism = n
		} else {
			cfg.Parallelism = 4
		}
	}
	if cfg.Parallelism < 1 {
		return Config{}, errors.New("parallelism must be at least 1")
	}

	if !cfg.InitSchema {
		cfg.InitSchema, _ = strconv.ParseBool(os.Getenv("INIT_SCHEMA"))
	}

	return cfg, nil
}
