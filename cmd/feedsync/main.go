package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"clubfeed/internal/config"
	"clubfeed/internal/domain"
	"clubfeed/internal/scheduler"
	"clubfeed/internal/service"
	"clubfeed/internal/source/clubapi"
	"clubfeed/internal/storage/memory"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	// Initialize API client, store and feed service
	client := clubapi.New(clubapi.Config{
		BaseURL:        cfg.API.BaseURL,
		Token:          cfg.API.Token,
		Timeout:        cfg.API.Timeout,
		MaxAttempts:    cfg.API.Retry.MaxAttempts,
		InitialBackoff: cfg.API.Retry.InitialBackoff,
		MaxBackoff:     cfg.API.Retry.MaxBackoff,
	}, logger)

	store := memory.New()
	feed := service.NewFeedService(client, client, store, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	identity, err := feed.Bootstrap(ctx)
	if err != nil {
		logger.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}

	logger.Info("signed in",
		"user", identity.Name,
		"unread", store.UnreadCount(),
	)
	logBadges(logger, store)

	// Surface confirm/reconcile outcomes; recompute badges after each
	// successful refresh the way the navigation surfaces would.
	go func() {
		for ev := range feed.Events() {
			if ev.Err != nil {
				logger.Warn("feed sync degraded", "op", ev.Op, "item_id", ev.ItemID, "error", ev.Err)
				continue
			}
			if ev.Op == service.OpRefresh {
				logBadges(logger, store)
			}
		}
	}()

	sched := scheduler.NewScheduler(feed, cfg.Refresh.Interval, cfg.Refresh.Timeout, logger)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	feed.Wait()
}

// logBadges mimics the two independent navigation consumers: a user-level
// menu and a club dashboard, each with its own category set and ranking.
func logBadges(logger *slog.Logger, store *memory.Store) {
	items := store.Snapshot()

	userRank := domain.SeverityRank{
		domain.CategoryEventInvite:   domain.SeverityUrgent,
		domain.CategoryMemberRequest: domain.SeverityWarning,
	}
	if badge := domain.ComputeBadge(
		domain.ScopeToClub(items, 0),
		[]domain.Category{domain.CategoryEventInvite, domain.CategoryMemberRequest},
		userRank,
	); badge != nil {
		logger.Info("user menu badge", "count", badge.Count, "severity", int(badge.Severity))
	}

	clubRank := domain.SeverityRank{
		domain.CategoryClubNews:      domain.SeverityInfo,
		domain.CategoryMatchReminder: domain.SeverityUrgent,
		domain.CategoryLeagueUpdate:  domain.SeverityWarning,
	}
	seen := make(map[int64]bool)
	for _, it := range items {
		if it.Club == nil || seen[it.Club.ID] {
			continue
		}
		seen[it.Club.ID] = true

		if badge := domain.ComputeBadge(
			domain.ScopeToClub(items, it.Club.ID),
			[]domain.Category{domain.CategoryClubNews, domain.CategoryMatchReminder, domain.CategoryLeagueUpdate},
			clubRank,
		); badge != nil {
			logger.Info("club dashboard badge",
				"club", it.Club.Name,
				"count", badge.Count,
				"severity", int(badge.Severity),
			)
		}
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
