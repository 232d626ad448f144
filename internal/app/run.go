package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/Flarenzy/preghierine/internal/domain"
	apihttp "github.com/Flarenzy/preghierine/internal/http"
	"github.com/Flarenzy/preghierine/internal/netrange"
	"github.com/Flarenzy/preghierine/internal/phrases"
	"github.com/Flarenzy/preghierine/internal/policy"
	"github.com/Flarenzy/preghierine/internal/transport"
)

type Config struct {
	Port           string
	PhrasesFile    string
	MinPrefixBits  int
	BlockedSubnets []netip.Prefix
	SendTimeout    time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadConfig reads the environment, after merging a .env file from the
// working directory when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        getenv("PORT"),
		PhrasesFile: getenv("PHRASES_FILE"),
		LogLevel:    getenv("LOG_LEVEL"),
		LogFormat:   getenv("LOG_FORMAT"),
	}
	if cfg.Port == "" {
		cfg.Port = "5000"
	}
	if cfg.PhrasesFile == "" {
		cfg.PhrasesFile = "preghierine.txt"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	var err error
	if cfg.MinPrefixBits, err = envInt(getenv, "MIN_PREFIX_BITS", domain.DefaultMinPrefixBits); err != nil {
		return Config{}, err
	}
	// Above 32 every IPv4 request would clamp past the address length.
	if cfg.MinPrefixBits < 0 || cfg.MinPrefixBits > 32 {
		return Config{}, fmt.Errorf("MIN_PREFIX_BITS must be between 0 and 32, got %d", cfg.MinPrefixBits)
	}

	subnets := policy.DefaultBlockedSubnets
	if v, ok := lookup(getenv, "BLOCKED_SUBNETS"); ok {
		subnets = strings.Split(v, ",")
	}
	if cfg.BlockedSubnets, err = policy.ParsePrefixes(subnets); err != nil {
		return Config{}, fmt.Errorf("BLOCKED_SUBNETS: %w", err)
	}

	if cfg.SendTimeout, err = envDuration(getenv, "SEND_TIMEOUT", transport.DefaultTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ReadTimeout, err = envDuration(getenv, "READ_TIMEOUT", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = envDuration(getenv, "WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func lookup(getenv func(string) string, key string) (string, bool) {
	v := strings.TrimSpace(getenv(key))
	return v, v != ""
}

func envInt(getenv func(string) string, key string, def int) (int, error) {
	v, ok := lookup(getenv, key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v, ok := lookup(getenv, key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func newLogger(w io.Writer, cfg Config) (*slog.Logger, error) {
	level, err := charmlog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	var formatter charmlog.Formatter
	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		formatter = charmlog.TextFormatter
	case "json":
		formatter = charmlog.JSONFormatter
	case "logfmt":
		formatter = charmlog.LogfmtFormatter
	default:
		return nil, fmt.Errorf("LOG_FORMAT: unknown format %q", cfg.LogFormat)
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	return slog.New(handler), nil
}

type phraseHealth struct {
	provider domain.PhraseProvider
}

func (h phraseHealth) Ping(ctx context.Context) error {
	_, err := h.provider.Load(ctx)
	return err
}

func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}
	return Serve(ctx, cfg, listener)
}

// Serve wires the service and serves HTTP on listener until ctx is done.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger, err := newLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}

	gate, err := policy.NewGate(cfg.BlockedSubnets)
	if err != nil {
		return err
	}

	provider := phrases.NewFileProvider(cfg.PhrasesFile)
	service := domain.NewLoggingDispatchService(logger, domain.NewDispatchService(
		domain.DispatchConfig{MinPrefixBits: cfg.MinPrefixBits},
		gate,
		provider,
		transport.NewUDP(cfg.SendTimeout),
		netrange.DefaultRand(),
	))

	api := apihttp.NewAPI(logger, phraseHealth{provider: provider}, service)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", listener.Addr().String(), "phrases", provider.Path(), "min_prefix_bits", cfg.MinPrefixBits)
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
