// Package web wires configuration and startup for the web frontend command.
package web

import (
	"context"
	"flag"
	"fmt"

	"github.com/mergington/activities-web/internal/platform/config"
	"github.com/mergington/activities-web/internal/platform/otel"
	"github.com/mergington/activities-web/internal/web"
)

const serviceName = "activities-web"

// Config holds the web command configuration.
type Config struct {
	HTTPAddr   string `env:"ACTIVITIES_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	APIBaseURL string `env:"ACTIVITIES_WEB_API_BASE_URL" envDefault:"http://localhost:8000"`
	DiagDBPath string `env:"ACTIVITIES_WEB_DIAG_DB"`
}

// ParseConfig resolves configuration from a .env file, the environment, and
// flags, in rising precedence.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if err := config.LoadDotenv(); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "activities API base URL")
	fs.StringVar(&cfg.DiagDBPath, "diag-db", cfg.DiagDBPath, "diagnostics SQLite path (empty disables the store)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the web frontend server and blocks until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	server, err := web.New(web.Config{
		HTTPAddr:          cfg.HTTPAddr,
		APIBaseURL:        cfg.APIBaseURL,
		DiagnosticsDBPath: cfg.DiagDBPath,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer func() { _ = server.Close() }()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
