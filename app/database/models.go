package database

import (
	"time"
)

// Feed is a feed record in the database. Document holds the full parsed
// document as JSON; the scalar columns are denormalized for listing and
// policy queries.
type Feed struct {
	ID            int64
	Name          string // Configuration feed identifier derived from filename
	FeedURL       string
	Title         string
	Link          string
	Description   string
	Language      string
	Medium        string
	Blocked       string
	Document      []byte
	LastFetchedAt *time.Time
	NextFetchAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Episode is one stored episode row, replaced wholesale on each successful
// fetch of its feed.
type Episode struct {
	ID              int64
	FeedID          int64
	GUID            string
	Title           string
	Link            string
	EnclosureURL    string
	EnclosureType   string
	EnclosureLength int64
	Duration        int
	Season          *int
	Episode         *float64
	PublishedAt     *time.Time
	CreatedAt       time.Time
}
