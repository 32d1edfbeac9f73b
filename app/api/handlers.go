package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/podverse/partytime/app/database"
	"github.com/podverse/partytime/app/feed"
	"github.com/podverse/partytime/app/parser"
	"github.com/podverse/partytime/app/tasks"
)

func NewHandler(configCache *feed.ConfigCache, feedRepo database.FeedRepository,
	episodeRepo database.EpisodeRepository, feedParser *feed.Parser,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		feedRepo:    feedRepo,
		episodeRepo: episodeRepo,
		configCache: configCache,
		parser:      feedParser,
		scheduler:   scheduler,
	}
}

// GetFeed serves the stored parsed document of a configured feed.
func (h *Handler) GetFeed(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if _, err := h.configCache.GetConfig(name); err != nil {
		slog.Error("Feed configuration not found", "feed", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	feedRow, err := h.feedRepo.GetFeed(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed", "feed", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if feedRow == nil {
		slog.Error("Feed not found in database", "feed", name)
		c.Status(http.StatusNotFound)
		return
	}

	if len(feedRow.Document) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feed not fetched yet"})
		return
	}

	c.Header("X-Feed-Name", name)
	c.Header("X-Last-Updated", feedRow.UpdatedAt.Format(time.RFC3339))
	c.Data(http.StatusOK, "application/json; charset=utf-8", feedRow.Document)
}

// GetEpisodes serves the stored episode rows of a configured feed.
func (h *Handler) GetEpisodes(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	feedConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Feed configuration not found", "feed", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	limit := feedConfig.Settings.MaxEpisodes
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	episodes, err := h.episodeRepo.GetEpisodes(name, limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_episodes", "feed", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feed":     name,
		"episodes": episodes,
		"total":    len(episodes),
	})
}

// GetIngestPolicy reports whether a platform may ingest a feed, derived
// from the feed's block declarations.
func (h *Handler) GetIngestPolicy(c *gin.Context) {
	name := c.Param("name")
	platform := c.Query("platform")
	if name == "" || platform == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing feed name or platform parameter"})
		return
	}

	feedRow, err := h.feedRepo.GetFeed(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_feed", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if feedRow == nil || len(feedRow.Document) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed document not available"})
		return
	}

	var doc parser.Feed
	if err := json.Unmarshal(feedRow.Document, &doc); err != nil {
		slog.Error("Stored document decode error", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored document is corrupt"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feed":     name,
		"platform": platform,
		"safe":     parser.IsSafeToIngest(&doc, platform),
		"blocked":  parser.IsServiceBlocked(&doc, platform),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		health["feeds"] = feedCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"loaded_configurations": h.configCache.GetConfigCount(),
	}

	if feedCount, err := h.feedRepo.GetFeedCount(); err == nil {
		stats["feeds"] = feedCount
	}
	if episodeCount, err := h.episodeRepo.GetEpisodeCount(); err == nil {
		stats["episodes"] = episodeCount
	}

	c.JSON(http.StatusOK, stats)
}

// APIParse parses an RSS/Atom document posted in the request body and
// returns the parsed document JSON without storing anything.
func (h *Handler) APIParse(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty request body"})
		return
	}

	opts := &parser.Options{
		AllowMissingGuid: c.Query("allow_missing_guid") == "1",
	}

	doc, err := h.parser.Run(data, opts)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Failed to parse feed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *Handler) APIListFeeds(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	feeds := make([]map[string]interface{}, 0, len(configs))

	for _, feedConfig := range configs {
		feedInfo := map[string]interface{}{
			"name":             feedConfig.Name,
			"url":              feedConfig.URL,
			"title":            "",
			"enabled":          feedConfig.Settings.Enabled,
			"max_episodes":     feedConfig.Settings.MaxEpisodes,
			"refresh_interval": (time.Duration(feedConfig.Settings.RefreshInterval) * time.Second).String(),
		}

		if feedRow, err := h.feedRepo.GetFeed(feedConfig.Name); err == nil && feedRow != nil {
			feedInfo["title"] = feedRow.Title
			feedInfo["medium"] = feedRow.Medium
			feedInfo["blocked"] = feedRow.Blocked
			feedInfo["last_fetched_at"] = feedRow.LastFetchedAt
			feedInfo["next_fetch_at"] = feedRow.NextFetchAt
			feedInfo["updated_at"] = feedRow.UpdatedAt
		}

		feeds = append(feeds, feedInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"feeds": feeds,
		"total": len(feeds),
	})
}

// APIReloadFeed reloads a feed's configuration from disk and enqueues a
// fresh fetch.
func (h *Handler) APIReloadFeed(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing feed name parameter"})
		return
	}

	if _, err := h.configCache.GetConfig(name); err != nil {
		slog.Error("Feed configuration not found", "feed", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Feed configuration not found"})
		return
	}

	feedConfig, err := h.configCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading configuration", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reload configuration",
			"details": err.Error(),
		})
		return
	}

	syncFeedTask := tasks.NewSyncFeedConfigTask(name, feedConfig, h.feedRepo)
	if err := h.scheduler.EnqueueTask(syncFeedTask); err != nil {
		slog.Error("Error enqueueing sync task", "feed", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue sync task",
			"details": err.Error(),
		})
		return
	}

	response := gin.H{
		"success": true,
		"message": "Configuration reloaded and sync task enqueued",
		"feed": gin.H{
			"name": name,
			"url":  feedConfig.URL,
		},
		"task": gin.H{
			"id":   syncFeedTask.ID,
			"type": syncFeedTask.Type,
		},
	}

	c.JSON(http.StatusOK, response)
}
