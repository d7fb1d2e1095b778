// Package scout provides the RSS fallback provider: when no AI API key is
// configured, feeds are synthesized from a curated set of vendor RSS/Atom
// feeds instead of a grounded agent.
package scout

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"foundry-catchup/internal/domain/entity"
)

// FeedConfig maps each feed kind to the RSS/Atom feed URLs backing it.
type FeedConfig struct {
	News         []string `yaml:"news"`
	Improvements []string `yaml:"improvements"`
}

// defaultFeeds are the vendor changelogs and blogs used when no config file
// is provided.
var defaultFeeds = FeedConfig{
	News: []string{
		"https://blog.google/technology/ai/rss/",
		"https://openai.com/news/rss.xml",
	},
	Improvements: []string{
		"https://code.visualstudio.com/feed.xml",
		"https://github.blog/changelog/feed/",
	},
}

// LoadFeedConfig reads the feed list from the YAML file named by
// SCOUT_FEEDS_FILE. When the variable is unset the built-in defaults are
// used; an unreadable or malformed file is an error, not a silent fallback.
func LoadFeedConfig() (FeedConfig, error) {
	path := os.Getenv("SCOUT_FEEDS_FILE")
	if path == "" {
		slog.Info("using built-in scout feed list")
		return defaultFeeds, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FeedConfig{}, fmt.Errorf("read feed config %s: %w", path, err)
	}

	var cfg FeedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FeedConfig{}, fmt.Errorf("parse feed config %s: %w", path, err)
	}
	if len(cfg.News) == 0 && len(cfg.Improvements) == 0 {
		return FeedConfig{}, fmt.Errorf("feed config %s lists no feeds", path)
	}

	slog.Info("loaded scout feed list",
		slog.String("path", path),
		slog.Int("news", len(cfg.News)),
		slog.Int("improvements", len(cfg.Improvements)))
	return cfg, nil
}

// URLs returns the feed URLs for the given kind.
func (c FeedConfig) URLs(kind entity.FeedKind) []string {
	if kind == entity.FeedImprovements {
		return c.Improvements
	}
	return c.News
}
