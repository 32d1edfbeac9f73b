package database

import (
	"database/sql"
	"fmt"

	"github.com/podverse/partytime/app/parser"
)

// episodeRepository handles database operations for episodes.
type episodeRepository struct {
	db *DB
}

func NewEpisodeRepository(db *DB) EpisodeRepository {
	return &episodeRepository{db: db}
}

func (r *episodeRepository) GetEpisodes(feedName string, limit int) ([]Episode, error) {
	rows, err := r.db.Query(`
		SELECT e.id, e.feed_id, e.guid, e.title, e.link, e.enclosure_url,
			e.enclosure_type, e.enclosure_length, e.duration, e.season,
			e.episode, e.published_at, e.created_at
		FROM episodes e
		JOIN feeds f ON f.id = e.feed_id
		WHERE f.name = ?
		ORDER BY e.published_at IS NULL, e.published_at DESC
		LIMIT ?
	`, feedName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var ep Episode
		var season sql.NullInt64
		var episode sql.NullFloat64
		var published sql.NullTime

		err := rows.Scan(&ep.ID, &ep.FeedID, &ep.GUID, &ep.Title, &ep.Link,
			&ep.EnclosureURL, &ep.EnclosureType, &ep.EnclosureLength,
			&ep.Duration, &season, &episode, &published, &ep.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}

		if season.Valid {
			v := int(season.Int64)
			ep.Season = &v
		}
		if episode.Valid {
			v := episode.Float64
			ep.Episode = &v
		}
		if published.Valid {
			ep.PublishedAt = &published.Time
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

func (r *episodeRepository) GetEpisodeCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM episodes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count episodes: %w", err)
	}
	return count, nil
}

// ReplaceEpisodes swaps a feed's stored episodes for the ones in the
// given document, capped at maxEpisodes newest first.
func (r *episodeRepository) ReplaceEpisodes(feedName string, doc *parser.Feed, maxEpisodes int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var feedID int64
	err = tx.QueryRow(`SELECT id FROM feeds WHERE name = ?`, feedName).Scan(&feedID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("feed '%s' is not registered", feedName)
	}
	if err != nil {
		return fmt.Errorf("failed to resolve feed: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM episodes WHERE feed_id = ?`, feedID); err != nil {
		return fmt.Errorf("failed to clear episodes: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO episodes (feed_id, guid, title, link, enclosure_url,
			enclosure_type, enclosure_length, duration, season, episode, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	items := doc.Items
	if maxEpisodes > 0 && len(items) > maxEpisodes {
		items = items[:maxEpisodes]
	}

	for _, item := range items {
		var season *int
		if item.Season != nil {
			season = &item.Season.Number
		}
		var episode *float64
		if item.EpisodeNumber != nil {
			episode = &item.EpisodeNumber.Number
		}
		var enclosureURL, enclosureType string
		var enclosureLength int64
		if item.Enclosure != nil {
			enclosureURL = item.Enclosure.URL
			enclosureType = item.Enclosure.Type
			enclosureLength = item.Enclosure.Length
		}

		_, err := stmt.Exec(feedID, item.GUID, item.Title, item.Link,
			enclosureURL, enclosureType, enclosureLength,
			item.Duration, season, episode, item.PubDate)
		if err != nil {
			return fmt.Errorf("failed to insert episode: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
