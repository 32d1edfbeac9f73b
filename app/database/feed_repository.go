package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/podverse/partytime/app/parser"
)

// feedRepository handles database operations for feeds.
type feedRepository struct {
	db *DB
}

func NewFeedRepository(db *DB) FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) UpsertFeed(feedName, feedURL string) error {
	_, err := r.db.Exec(`
		INSERT INTO feeds (name, feed_url)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			feed_url = excluded.feed_url,
			updated_at = CURRENT_TIMESTAMP
	`, feedName, feedURL)
	if err != nil {
		return fmt.Errorf("failed to upsert feed: %w", err)
	}
	return nil
}

// UpdateFeedDocument stores the parsed document and the denormalized
// columns after a successful fetch.
func (r *feedRepository) UpdateFeedDocument(feedName string, doc *parser.Feed, nextFetch time.Time) error {
	document, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	result, err := r.db.Exec(`
		UPDATE feeds SET
			title = ?,
			link = ?,
			description = ?,
			language = ?,
			medium = ?,
			blocked = ?,
			document = ?,
			last_fetched_at = CURRENT_TIMESTAMP,
			next_fetch_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, doc.Title, doc.Link, doc.Description, doc.Language, string(doc.Medium),
		string(doc.Blocked), document, nextFetch.UTC(), feedName)
	if err != nil {
		return fmt.Errorf("failed to update feed document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("feed '%s' is not registered", feedName)
	}
	return nil
}

func (r *feedRepository) GetFeed(feedName string) (*Feed, error) {
	row := r.db.QueryRow(`
		SELECT id, name, feed_url, title, link, description, language, medium,
			blocked, document, last_fetched_at, next_fetch_at, created_at, updated_at
		FROM feeds
		WHERE name = ?
	`, feedName)

	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	return feed, nil
}

func (r *feedRepository) ListFeeds() ([]Feed, error) {
	rows, err := r.db.Query(`
		SELECT id, name, feed_url, title, link, description, language, medium,
			blocked, document, last_fetched_at, next_fetch_at, created_at, updated_at
		FROM feeds
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w", err)
	}
	defer rows.Close()

	var feeds []Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed: %w", err)
		}
		feeds = append(feeds, *feed)
	}
	return feeds, rows.Err()
}

func (r *feedRepository) GetFeedCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM feeds`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count feeds: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeed(row rowScanner) (*Feed, error) {
	var feed Feed
	var document sql.NullString
	var lastFetched, nextFetch sql.NullTime

	err := row.Scan(&feed.ID, &feed.Name, &feed.FeedURL, &feed.Title, &feed.Link,
		&feed.Description, &feed.Language, &feed.Medium, &feed.Blocked, &document,
		&lastFetched, &nextFetch, &feed.CreatedAt, &feed.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if document.Valid {
		feed.Document = []byte(document.String)
	}
	if lastFetched.Valid {
		feed.LastFetchedAt = &lastFetched.Time
	}
	if nextFetch.Valid {
		feed.NextFetchAt = &nextFetch.Time
	}
	return &feed, nil
}
