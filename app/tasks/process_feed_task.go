package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/podverse/partytime/app/database"
	"github.com/podverse/partytime/app/feed"
	"github.com/podverse/partytime/app/parser"
)

type ProcessFeedTask struct {
	Task
	FeedConfig  *feed.Config
	httpClient  *http.Client
	parser      *feed.Parser
	feedRepo    database.FeedRepository
	episodeRepo database.EpisodeRepository
	userAgent   string
}

func NewProcessFeedTask(feedName string, feedConfig *feed.Config, httpClient *http.Client, feedParser *feed.Parser, feedRepo database.FeedRepository, episodeRepo database.EpisodeRepository, userAgent string) *ProcessFeedTask {
	return &ProcessFeedTask{
		Task:        NewTask(TaskTypeProcessFeed, feedName),
		FeedConfig:  feedConfig,
		httpClient:  httpClient,
		parser:      feedParser,
		feedRepo:    feedRepo,
		episodeRepo: episodeRepo,
		userAgent:   userAgent,
	}
}

func (t *ProcessFeedTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.FeedConfig.Settings.Enabled {
		slog.Debug("Feed disabled, skipping", "feed", t.FeedName)
		return nil
	}

	data, err := t.fetchFeed(ctx, t.FeedConfig.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	opts := &parser.Options{
		AllowMissingGuid: t.FeedConfig.Settings.AllowMissingGuid,
	}

	doc, err := t.parser.Run(data, opts)
	if err != nil {
		return fmt.Errorf("failed to parse feed: %w", err)
	}

	if err := t.storeDocument(doc); err != nil {
		return fmt.Errorf("failed to store feed document: %w", err)
	}

	if err := t.episodeRepo.ReplaceEpisodes(t.FeedName, doc, t.FeedConfig.Settings.MaxEpisodes); err != nil {
		return fmt.Errorf("failed to store episodes: %w", err)
	}

	slog.Info("Task completed",
		"type", "ProcessFeed",
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"items", len(doc.Items),
		"live_items", len(doc.LiveItems),
		"blocked", string(doc.Blocked))

	return nil
}

func (t *ProcessFeedTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(t.FeedConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (t *ProcessFeedTask) storeDocument(doc *parser.Feed) error {
	now := time.Now().UTC()
	nextFetch := now.Add(time.Duration(t.FeedConfig.Settings.RefreshInterval) * time.Second)

	if err := t.feedRepo.UpdateFeedDocument(t.FeedName, doc, nextFetch); err != nil {
		return fmt.Errorf("failed to update feed document and next fetch time: %w", err)
	}

	return nil
}
