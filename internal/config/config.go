// Package config содержит логику чтения конфигурации клиента antrian.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultAPIURL   = "http://localhost:3000/api"
	defaultTimeout  = 10 * time.Second
	defaultLogLevel = "warn"
)

// Config содержит параметры конфигурации клиента.
type Config struct {
	APIURL    string        `env:"ANTRIAN_API_URL"`
	TokenFile string        `env:"ANTRIAN_TOKEN_FILE"`
	Timeout   time.Duration `env:"ANTRIAN_TIMEOUT"`
	LogLevel  string        `env:"ANTRIAN_LOG_LEVEL"`

	// Args содержит команду и её аргументы после глобальных флагов.
	Args []string
}

// Parse считывает конфигурацию из .env, флагов командной строки и переменных окружения.
func Parse() (*Config, error) {
	return ParseArgs(os.Args[1:], os.Stderr)
}

// ParseArgs разбирает глобальные флаги из args. Переменные окружения имеют
// приоритет над флагами.
func ParseArgs(args []string, output io.Writer) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envAPIURL := cfg.APIURL
	envTokenFile := cfg.TokenFile
	envTimeout := cfg.Timeout
	envLogLevel := cfg.LogLevel

	flags := flag.NewFlagSet("antrian", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&cfg.APIURL, "u", defaultAPIURL, "base URL of the remote API")
	flags.StringVar(&cfg.TokenFile, "t", defaultTokenFile(), "file that keeps the session token")
	flags.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "timeout of a single API request")
	flags.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	cfg.Args = flags.Args()

	if envAPIURL != "" {
		cfg.APIURL = envAPIURL
	}
	if envTokenFile != "" {
		cfg.TokenFile = envTokenFile
	}
	if envTimeout != 0 {
		cfg.Timeout = envTimeout
	}
	if envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return cfg, nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".antrian-token"
	}
	return filepath.Join(dir, "antrian", "token")
}
