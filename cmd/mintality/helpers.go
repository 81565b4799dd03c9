package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/mintality/mintality/internal/advice"
	"github.com/mintality/mintality/internal/config"
	"github.com/mintality/mintality/internal/feed"
	"github.com/mintality/mintality/internal/service"
	"github.com/mintality/mintality/internal/storage"
)

// initStorage opens and migrates the database configured in viper.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/mintality/mintality.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// feedConfig assembles the transaction source configuration from viper.
func feedConfig() feed.Config {
	return feed.Config{
		Source: viper.GetString("feed.source"),
		Plaid: feed.PlaidConfig{
			ClientID:    viper.GetString("plaid.client_id"),
			Secret:      viper.GetString("plaid.secret"),
			Environment: defaultString(viper.GetString("plaid.environment"), "sandbox"),
			AccessToken: viper.GetString("plaid.access_token"),
		},
		OFXPath:  config.ExpandPath(viper.GetString("feed.ofx_path")),
		DemoSeed: viper.GetInt64("feed.demo_seed"),
	}
}

// adviceClient builds the advice client, falling back to offline responses
// when Gemini is not configured.
func adviceClient(ctx context.Context) advice.Client {
	return advice.NewWithFallback(ctx, advice.GeminiConfig{
		APIKey: viper.GetString("gemini.api_key"),
		Model:  viper.GetString("gemini.model"),
	})
}

// parseDateRange resolves start/end flags, defaulting to the last N days.
func parseDateRange(startStr, endStr string, days int) (start, end time.Time, err error) {
	end = time.Now()
	if endStr != "" {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endStr, err)
		}
		// Include the whole end day.
		end = end.AddDate(0, 0, 1).Add(-time.Second)
	}

	if startStr != "" {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startStr, err)
		}
	} else {
		start = end.AddDate(0, 0, -days)
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return start, end, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
