package database

import (
	"time"

	"github.com/podverse/partytime/app/parser"
)

type FeedRepository interface {
	GetFeed(feedName string) (*Feed, error)
	GetFeedCount() (int, error)
	ListFeeds() ([]Feed, error)

	UpsertFeed(feedName, feedURL string) error
	UpdateFeedDocument(feedName string, doc *parser.Feed, nextFetch time.Time) error
}

type EpisodeRepository interface {
	GetEpisodes(feedName string, limit int) ([]Episode, error)
	GetEpisodeCount() (int, error)

	ReplaceEpisodes(feedName string, doc *parser.Feed, maxEpisodes int) error
}
