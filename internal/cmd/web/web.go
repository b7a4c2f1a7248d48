// Package web boots the chapter site server.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
	"github.com/ppc-youthlead/chapter-web/internal/platform/config"
	"github.com/ppc-youthlead/chapter-web/internal/platform/otel"
	"github.com/ppc-youthlead/chapter-web/internal/web"
)

// Config holds the web command configuration. Flags override environment
// variables.
type Config struct {
	HTTPAddr string `env:"CHAPTER_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	Backend  backend.Config
}

// ParseConfig parses environment variables and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.Backend.URL, "backend-url", cfg.Backend.URL, "backend base URL")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the chapter site server and blocks until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "web")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	client := backend.New(cfg.Backend)
	server := web.NewServer(web.Config{HTTPAddr: cfg.HTTPAddr}, client)
	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
