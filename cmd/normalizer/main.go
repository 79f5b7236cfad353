package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/p-n-ai/quizbank/internal/normalizer"
	"github.com/p-n-ai/quizbank/internal/platform/cache"
	"github.com/p-n-ai/quizbank/internal/platform/config"
	"github.com/p-n-ai/quizbank/internal/platform/database"
	"github.com/p-n-ai/quizbank/internal/question"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(os.Stderr, cfg.Log))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	var opts []normalizer.Option

	if cfg.Database.URL != "" {
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		store, err := question.NewPostgresStore(ctx, pool)
		if err != nil {
			return err
		}
		opts = append(opts, normalizer.WithStore(store))
	}

	if cfg.Cache.URL != "" {
		client, err := cache.Connect(ctx, cfg.Cache)
		if err != nil {
			return err
		}
		defer client.Close()
		opts = append(opts, normalizer.WithCache(client))
	}

	res, err := normalizer.New(cfg, opts...).Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("run complete",
		"mode", cfg.Mode,
		"combined", res.CombinedPath,
		"questions", res.Report.Total,
		"categories", len(res.Report.Categories),
		"issues", len(res.Report.Issues),
	)
	return nil
}

// newLogger builds the slog logger selected by the log config.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(lc.Level)}
	if strings.EqualFold(lc.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
