package parser

import (
	"time"
)

// FeedType identifies the syndication format of the source document.
type FeedType int

const (
	FeedTypeRSS FeedType = iota
	FeedTypeAtom
)

// Options controls parsing behavior.
type Options struct {
	// AllowMissingGuid retains items that lack a resolvable identifier
	// instead of dropping them.
	AllowMissingGuid bool
}

// PhaseSupport maps a namespace phase number to the sorted feature names the
// document actually exercised. Observational only; it never affects parsing.
type PhaseSupport map[int][]string

// PhasePending groups tags from the pending phase of the namespace, ones not
// yet assigned a phase number upstream.
const PhasePending = 99

// Feed is the fully parsed feed-level document. It is a plain value: the
// orchestrator never mutates it after Parse returns.
type Feed struct {
	Type FeedType `json:"type"`

	// RSS 2.0 required
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`

	// Baseline optional
	Language      string     `json:"language,omitempty"`
	Copyright     string     `json:"copyright,omitempty"`
	Generator     string     `json:"generator,omitempty"`
	Author        string     `json:"author,omitempty"`
	Explicit      bool       `json:"explicit"`
	ItunesType    string     `json:"itunesType,omitempty"`
	ItunesImage   string     `json:"itunesImage,omitempty"`
	Categories    []string   `json:"categories,omitempty"`
	Owner         *Owner     `json:"owner,omitempty"`
	Image         *FeedImage `json:"image,omitempty"`
	PubDate       *time.Time `json:"pubDate,omitempty"`
	LastBuildDate *time.Time `json:"lastBuildDate,omitempty"`

	// Phase 1
	Locked  *Locked   `json:"locked,omitempty"`
	Funding []Funding `json:"funding,omitempty"`

	// Phase 2
	People   []Person  `json:"people,omitempty"`
	Location *Location `json:"location,omitempty"`
	Seasons  []Season  `json:"seasons,omitempty"`

	// Phase 3
	Trailers []Trailer `json:"trailers,omitempty"`
	License  *License  `json:"license,omitempty"`
	GUID     string    `json:"guid,omitempty"`

	// Phase 4
	Value     []ValueBlock `json:"value,omitempty"`
	Medium    Medium       `json:"medium,omitempty"`
	Images    []Image      `json:"images,omitempty"`
	LiveItems []LiveItem   `json:"liveItems,omitempty"`

	// Phase 5
	SocialInteract   []SocialInteract `json:"socialInteract,omitempty"`
	Blocked          BlockStatus      `json:"blocked"`
	BlockedPlatforms map[string]bool  `json:"blockedPlatforms,omitempty"`

	// Pending phase
	IDs             []ExternalID     `json:"ids,omitempty"`
	Social          []Social         `json:"social,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`

	Support PhaseSupport `json:"phaseSupport,omitempty"`

	Items             []Item     `json:"items"`
	NewestItemPubDate *time.Time `json:"newestItemPubDate,omitempty"`
	OldestItemPubDate *time.Time `json:"oldestItemPubDate,omitempty"`
	LastPubDate       *time.Time `json:"lastPubDate,omitempty"`

	// LastUpdate is the time this feed was parsed.
	LastUpdate time.Time `json:"lastUpdate"`
}

// Item is one episode within a Feed.
type Item struct {
	GUID        string     `json:"guid,omitempty"`
	Title       string     `json:"title,omitempty"`
	Link        string     `json:"link,omitempty"`
	Description string     `json:"description,omitempty"`
	Author      string     `json:"author,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Explicit    bool       `json:"explicit"`
	Duration    int        `json:"duration"`
	Enclosure   *Enclosure `json:"enclosure,omitempty"`
	PubDate     *time.Time `json:"pubDate,omitempty"`
	EpisodeType string     `json:"episodeType,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`

	// Phase 1
	Transcripts []Transcript `json:"transcripts,omitempty"`
	Chapters    *Chapters    `json:"chapters,omitempty"`
	Soundbites  []Soundbite  `json:"soundbites,omitempty"`

	// Phase 2
	People        []Person       `json:"people,omitempty"`
	Location      *Location      `json:"location,omitempty"`
	Season        *Season        `json:"season,omitempty"`
	EpisodeNumber *EpisodeNumber `json:"episodeNumber,omitempty"`

	// Phase 3
	License             *License             `json:"license,omitempty"`
	AlternateEnclosures []AlternateEnclosure `json:"alternateEnclosures,omitempty"`

	// Phase 4
	Value  []ValueBlock `json:"value,omitempty"`
	Images []Image      `json:"images,omitempty"`

	// Phase 5
	SocialInteract []SocialInteract `json:"socialInteract,omitempty"`

	// Pending phase
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Gateway         *Gateway         `json:"gateway,omitempty"`
}

// Owner is the iTunes feed owner contact.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FeedImage is the baseline RSS channel image.
type FeedImage struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Link   string `json:"link,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Enclosure is the playable media attachment of an item.
type Enclosure struct {
	URL    string `json:"url"`
	Length int64  `json:"length"`
	Type   string `json:"type"`
}

// Locked tells other platforms whether importing this feed is permitted.
type Locked struct {
	Locked bool   `json:"locked"`
	Owner  string `json:"owner,omitempty"`
}

// Funding is a donation/funding link with its recommended label.
type Funding struct {
	URL     string `json:"url"`
	Message string `json:"message,omitempty"`
}

// Transcript links a transcript or closed-caption file.
type Transcript struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	Language string `json:"language,omitempty"`
	Rel      string `json:"rel,omitempty"`
}

// Chapters links a chapters file for an episode.
type Chapters struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Soundbite marks a highlight clip inside an episode.
type Soundbite struct {
	StartTime float64 `json:"startTime"`
	Duration  float64 `json:"duration"`
	Title     string  `json:"title,omitempty"`
}

// Person is a host, co-host or guest of a feed or episode.
type Person struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Group string `json:"group"`
	Img   string `json:"img,omitempty"`
	Href  string `json:"href,omitempty"`
}

// Location describes what place a feed or episode is about.
type Location struct {
	Name string `json:"name"`
	Geo  string `json:"geo,omitempty"`
	OSM  string `json:"osm,omitempty"`
}

// Season is an episode's season declaration, optionally named.
type Season struct {
	Number int    `json:"number"`
	Name   string `json:"name,omitempty"`
}

// EpisodeNumber is an episode's number declaration, optionally with a display
// override.
type EpisodeNumber struct {
	Number  float64 `json:"number"`
	Display string  `json:"display,omitempty"`
}

// Trailer is a short audio or video preview of the feed.
type Trailer struct {
	URL     string    `json:"url"`
	PubDate time.Time `json:"pubDate"`
	Title   string    `json:"title,omitempty"`
	Length  int64     `json:"length,omitempty"`
	Type    string    `json:"type,omitempty"`
	Season  int       `json:"season,omitempty"`
}

// License identifies the content license, optionally with a URL for custom
// licenses.
type License struct {
	Identifier string `json:"identifier"`
	URL        string `json:"url,omitempty"`
}

// AlternateEnclosure is an alternative media source for an item.
type AlternateEnclosure struct {
	Type      string            `json:"type"`
	Length    int64             `json:"length,omitempty"`
	Bitrate   float64           `json:"bitrate,omitempty"`
	Height    int               `json:"height,omitempty"`
	Title     string            `json:"title,omitempty"`
	Rel       string            `json:"rel,omitempty"`
	Codecs    []string          `json:"codecs,omitempty"`
	Default   bool              `json:"default"`
	Sources   []EnclosureSource `json:"sources"`
	Integrity *Integrity        `json:"integrity,omitempty"`
}

// EnclosureSource is one URI an alternate enclosure is reachable at.
type EnclosureSource struct {
	URI         string `json:"uri"`
	ContentType string `json:"contentType,omitempty"`
}

// Integrity carries a checksum or signature for an alternate enclosure.
type Integrity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ValueBlock is a payment-split declaration. A scope may carry several blocks
// side by side, one per element encountered, in source order.
type ValueBlock struct {
	Type       string           `json:"type"`
	Method     string           `json:"method"`
	Suggested  string           `json:"suggested,omitempty"`
	Recipients []ValueRecipient `json:"recipients"`
	MetaBoost  *MetaBoost       `json:"metaBoost,omitempty"`
}

// ValueRecipient is one destination of a value block's payment split.
type ValueRecipient struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Address string  `json:"address"`
	Split   float64 `json:"split"`
	Fee     bool    `json:"fee"`
}

// MetaBoost points at a boost metadata endpoint for a value block.
type MetaBoost struct {
	Type    string `json:"type"`
	Schema  string `json:"schema"`
	Node    string `json:"node"`
	License string `json:"license,omitempty"`
}

// Medium tells applications what the feed content is, as opposed to what it
// is about.
type Medium string

const (
	MediumPodcast    Medium = "podcast"
	MediumMusic      Medium = "music"
	MediumVideo      Medium = "video"
	MediumFilm       Medium = "film"
	MediumAudiobook  Medium = "audiobook"
	MediumNewsletter Medium = "newsletter"
	MediumBlog       Medium = "blog"
)

// Image is one parsed srcset-style image descriptor. Width and Density are
// mutually exclusive; a malformed descriptor token degrades to URL only.
type Image struct {
	Raw     string  `json:"raw"`
	URL     string  `json:"url"`
	Width   int     `json:"width,omitempty"`
	Density float64 `json:"density,omitempty"`
}

// LiveStatus is the state of a live item.
type LiveStatus string

const (
	LiveStatusLive    LiveStatus = "live"
	LiveStatusPending LiveStatus = "pending"
	LiveStatusEnded   LiveStatus = "ended"
)

// LiveItem is a live broadcast entry nested inside a feed. Its children are
// parsed with the same engine as items, restricted to the rules that apply to
// the live scope.
type LiveItem struct {
	Status LiveStatus `json:"status"`
	Start  time.Time  `json:"start"`
	End    time.Time  `json:"end"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	GUID        string `json:"guid,omitempty"`
	Author      string `json:"author,omitempty"`

	People              []Person             `json:"people,omitempty"`
	Images              []Image              `json:"images,omitempty"`
	AlternateEnclosures []AlternateEnclosure `json:"alternateEnclosures,omitempty"`
	ContentLinks        []ContentLink        `json:"contentLinks,omitempty"`
	Value               []ValueBlock         `json:"value,omitempty"`

	// Chat is the legacy chat attribute, superseded by contentLink but still
	// parsed for compatibility.
	Chat string `json:"chat,omitempty"`
}

// ContentLink points listeners at a place to consume a live stream.
type ContentLink struct {
	Href string `json:"href"`
	Text string `json:"text,omitempty"`
}

// SocialInteract points at the root post for social comments on a feed or
// episode.
type SocialInteract struct {
	Platform   string     `json:"platform"`
	ID         string     `json:"id,omitempty"`
	URL        string     `json:"url"`
	ProfileURL string     `json:"profileUrl,omitempty"`
	PubDate    *time.Time `json:"pubDate,omitempty"` // deprecated upstream, still parsed
	Priority   *float64   `json:"priority,omitempty"`
}

// BlockStatus is the feed-wide default of the platform-blocking policy.
type BlockStatus string

const (
	BlockStatusYes = BlockStatus("yes")
	BlockStatusNo  = BlockStatus("no")
)

// ExternalID is a listing of the feed on another platform or directory.
type ExternalID struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	ID       string `json:"id,omitempty"`
}

// Social is a social media presence of the feed.
type Social struct {
	Platform string         `json:"platform"`
	URL      string         `json:"url"`
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Priority *float64       `json:"priority,omitempty"`
	SignUp   []SocialSignUp `json:"signUp,omitempty"`
}

// SocialSignUp is a sign-up entry point for a social platform.
type SocialSignUp struct {
	HomeURL   string   `json:"homeUrl"`
	SignUpURL string   `json:"signUpUrl"`
	Priority  *float64 `json:"priority,omitempty"`
}

// Recommendation links related content for a feed or episode.
type Recommendation struct {
	URL      string `json:"url"`
	Type     string `json:"type"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Gateway marks an episode as the suggested entry point of a feed.
type Gateway struct {
	Message string `json:"message"`
	Order   int    `json:"order,omitempty"`
}
