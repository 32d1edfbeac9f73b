package api

import (
	"github.com/podverse/partytime/app/database"
	"github.com/podverse/partytime/app/feed"
	"github.com/podverse/partytime/app/tasks"
)

type Handler struct {
	feedRepo    database.FeedRepository
	episodeRepo database.EpisodeRepository
	configCache *feed.ConfigCache
	parser      *feed.Parser
	scheduler   tasks.TaskSchedulerInterface
}
