package parser

import (
	"testing"
	"time"
)

// buildRoot wraps a channel node into the rss/channel shape Parse expects.
func buildRoot(channel *Node) *Node {
	root := newNode("", nil)
	rss := addChild(root, "rss", newNode("", nil))
	addChild(rss, "channel", channel)
	return root
}

func baselineChannel() *Node {
	channel := newNode("", nil)
	addChild(channel, "title", newNode("Test Podcast", nil))
	addChild(channel, "link", newNode("https://example.com", nil))
	addChild(channel, "description", newNode("A test podcast", nil))
	return channel
}

func basicItem(guid string) *Node {
	item := newNode("", nil)
	addChild(item, "title", newNode("Episode "+guid, nil))
	addChild(item, "guid", newNode(guid, nil))
	return item
}

func TestParseBaseline(t *testing.T) {
	channel := baselineChannel()
	addChild(channel, "language", newNode("en-us", nil))
	addChild(channel, "explicit", newNode("yes", nil))
	addChild(channel, "category", newNode("Technology", nil))
	addChild(channel, "category", newNode("History", nil))
	owner := addChild(channel, "owner", newNode("", nil))
	addChild(owner, "name", newNode("Jane", nil))
	addChild(owner, "email", newNode("jane@example.com", nil))
	addChild(channel, "item", basicItem("ep-1"))

	doc := Parse(buildRoot(channel), FeedTypeRSS, nil)
	if doc == nil {
		t.Fatal("Expected document, got nil")
	}

	if doc.Title != "Test Podcast" {
		t.Errorf("Expected title 'Test Podcast', got '%s'", doc.Title)
	}
	if doc.Language != "en-us" {
		t.Errorf("Expected language 'en-us', got '%s'", doc.Language)
	}
	if !doc.Explicit {
		t.Error("Expected explicit true")
	}
	if len(doc.Categories) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(doc.Categories))
	}
	if doc.Owner == nil || doc.Owner.Email != "jane@example.com" {
		t.Errorf("Unexpected owner: %+v", doc.Owner)
	}
	if doc.Blocked != BlockStatusNo {
		t.Errorf("Expected default blocked 'no', got '%s'", doc.Blocked)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(doc.Items))
	}
	if doc.Items[0].GUID != "ep-1" {
		t.Errorf("Expected guid 'ep-1', got '%s'", doc.Items[0].GUID)
	}
	if doc.LastUpdate.IsZero() {
		t.Error("Expected LastUpdate stamped")
	}
}

func TestParseNoChannel(t *testing.T) {
	if doc := Parse(newNode("", nil), FeedTypeRSS, nil); doc != nil {
		t.Error("Expected nil for a tree without a channel container")
	}
	if doc := Parse(nil, FeedTypeRSS, nil); doc != nil {
		t.Error("Expected nil for a nil root")
	}
}

func TestParseMissingGuid(t *testing.T) {
	channel := baselineChannel()
	addChild(channel, "item", basicItem("ep-1"))

	// no guid, but link resolves as identifier
	withLink := newNode("", nil)
	addChild(withLink, "title", newNode("Linked", nil))
	addChild(withLink, "link", newNode("https://example.com/linked", nil))
	addChild(channel, "item", withLink)

	// neither guid nor link
	orphan := newNode("", nil)
	addChild(orphan, "title", newNode("Orphan", nil))
	addChild(channel, "item", orphan)

	doc := Parse(buildRoot(channel), FeedTypeRSS, nil)
	if len(doc.Items) != 2 {
		t.Fatalf("Expected orphan dropped by default, got %d items", len(doc.Items))
	}
	if doc.Items[1].GUID != "https://example.com/linked" {
		t.Errorf("Expected link promoted to guid, got '%s'", doc.Items[1].GUID)
	}

	doc = Parse(buildRoot(channel), FeedTypeRSS, &Options{AllowMissingGuid: true})
	if len(doc.Items) != 3 {
		t.Fatalf("Expected orphan kept with AllowMissingGuid, got %d items", len(doc.Items))
	}
}

func TestParseValueInheritanceSharesSlice(t *testing.T) {
	channel := baselineChannel()
	block := addChild(channel, "value", newNode("", map[string]string{
		"type": "lightning", "method": "keysend",
	}))
	addChild(block, "valueRecipient", newNode("", map[string]string{
		"name": "Host", "type": "node", "address": "addr", "split": "100",
	}))

	addChild(channel, "item", basicItem("inherits"))

	override := basicItem("overrides")
	ob := addChild(override, "value", newNode("", map[string]string{
		"type": "lightning", "method": "keysend",
	}))
	addChild(ob, "valueRecipient", newNode("", map[string]string{
		"name": "Guest", "type": "node", "address": "guest-addr", "split": "100",
	}))
	addChild(channel, "item", override)

	doc := Parse(buildRoot(channel), FeedTypeRSS, nil)
	if len(doc.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(doc.Items))
	}

	inherited := doc.Items[0].Value
	if len(inherited) != 1 {
		t.Fatalf("Expected inherited value block, got %d", len(inherited))
	}
	// Shared by reference: the item's slice is the feed's slice.
	if &inherited[0] != &doc.Value[0] {
		t.Error("Expected inheriting item to share the feed's value slice")
	}

	own := doc.Items[1].Value
	if len(own) != 1 {
		t.Fatalf("Expected own value block, got %d", len(own))
	}
	if &own[0] == &doc.Value[0] {
		t.Error("Expected overriding item to keep its own blocks")
	}
	if own[0].Recipients[0].Name != "Guest" {
		t.Errorf("Expected item's own recipient, got '%s'", own[0].Recipients[0].Name)
	}
}

func TestParseLiveItemValueInheritance(t *testing.T) {
	channel := baselineChannel()
	addChild(channel, "value", newNode("", map[string]string{
		"type": "lightning", "method": "keysend",
	}))
	addChild(channel, "liveItem", newNode("", map[string]string{
		"status": "pending", "start": "2024-06-01T10:00:00Z", "end": "2024-06-01T11:00:00Z",
	}))

	doc := Parse(buildRoot(channel), FeedTypeRSS, nil)
	if len(doc.LiveItems) != 1 {
		t.Fatalf("Expected 1 live item, got %d", len(doc.LiveItems))
	}
	if len(doc.LiveItems[0].Value) != 1 {
		t.Fatal("Expected live item to inherit the feed value block")
	}
	if &doc.LiveItems[0].Value[0] != &doc.Value[0] {
		t.Error("Expected live item to share the feed's value slice")
	}
}

func TestParseSeasonReconciliation(t *testing.T) {
	channel := baselineChannel()

	s2a := basicItem("a")
	addChild(s2a, "season", newNode("2", nil))
	channelAdd(channel, s2a)

	s1 := basicItem("b")
	addChild(s1, "season", newNode("1", map[string]string{"name": "Origins"}))
	channelAdd(channel, s1)

	s2b := basicItem("c")
	addChild(s2b, "season", newNode("2", map[string]string{"name": "The Return"}))
	channelAdd(channel, s2b)

	doc := Parse(buildRoot(channel), FeedTypeRSS, nil)
	if len(doc.Seasons) != 2 {
		t.Fatalf("Expected 2 reconciled seasons, got %d", len(doc.Seasons))
	}
	if doc.Seasons[0].Number != 1 || doc.Seasons[1].Number != 2 {
		t.Errorf("Expected seasons sorted by number, got %+v", doc.Seasons)
	}
	if doc.Seasons[0].Name != "Origins" {
		t.Errorf("Expected season 1 name 'Origins', got '%s'", doc.Seasons[0].Name)
	}
	if doc.Seasons[1].Name != "The Return" {
		t.Errorf("Expected first non-blank name for season 2, got '%s'", doc.Seasons[1].Name)
	}
}

func channelAdd(channel, item *Node) {
	addChild(channel, "item", item)
}

func TestParsePubDates(t *testing.T) {
	channel := baselineChannel()

	older := basicItem("older")
	addChild(older, "pubDate", newNode("Mon, 03 Jul 2023 10:00:00 GMT", nil))
	channelAdd(channel, older)

	newer := basicItem("newer")
	addChild(newer, "pubDate", newNode("Tue, 04 Jul 2023 10:00:00 GMT", nil))
	channelAdd(channel, newer)

	undated := basicItem("undated")
	channelAdd(channel, undated)

	doc := Parse(buildRoot(channel), FeedTypeRSS, nil)

	if doc.NewestItemPubDate == nil || doc.OldestItemPubDate == nil {
		t.Fatal("Expected newest and oldest item pub dates")
	}
	if !doc.NewestItemPubDate.After(*doc.OldestItemPubDate) {
		t.Error("Expected newest after oldest")
	}
	// Feed declared no pubDate: it adopts the newest item date.
	if doc.PubDate == nil || !doc.PubDate.Equal(*doc.NewestItemPubDate) {
		t.Error("Expected feed pubDate adopted from newest item")
	}
	if doc.LastPubDate == nil || !doc.LastPubDate.Equal(*doc.NewestItemPubDate) {
		t.Error("Expected LastPubDate to be the newest date")
	}
}

func TestParseFeedPubDateWins(t *testing.T) {
	channel := baselineChannel()
	addChild(channel, "pubDate", newNode("Wed, 05 Jul 2023 10:00:00 GMT", nil))

	item := basicItem("ep")
	addChild(item, "pubDate", newNode("Mon, 03 Jul 2023 10:00:00 GMT", nil))
	channelAdd(channel, item)

	doc := Parse(buildRoot(channel), FeedTypeRSS, nil)

	want := time.Date(2023, 7, 5, 10, 0, 0, 0, time.UTC)
	if doc.LastPubDate == nil || !doc.LastPubDate.Equal(want) {
		t.Errorf("Expected feed's later pubDate as LastPubDate, got %v", doc.LastPubDate)
	}
}

func TestParseSupportAcrossScopes(t *testing.T) {
	channel := baselineChannel()
	addChild(channel, "funding", newNode("Tips", map[string]string{"url": "https://example.com/tips"}))

	item := basicItem("ep")
	addChild(item, "transcript", newNode("", map[string]string{
		"url": "https://example.com/t.srt", "type": "application/srt",
	}))
	addChild(item, "season", newNode("1", nil))
	channelAdd(channel, item)

	doc := Parse(buildRoot(channel), FeedTypeRSS, nil)

	if len(doc.Support[1]) != 2 {
		t.Errorf("Expected phase 1 support [funding transcript], got %v", doc.Support[1])
	}
	if len(doc.Support[2]) != 1 || doc.Support[2][0] != "season" {
		t.Errorf("Expected phase 2 support [season], got %v", doc.Support[2])
	}
}

// Live-item phase observations stay local to the entry, not in the feed's
// support map.
func TestParseLiveScopeSupportStaysLocal(t *testing.T) {
	channel := baselineChannel()
	live := addChild(channel, "liveItem", newNode("", map[string]string{
		"status": "live", "start": "2024-06-01T10:00:00Z", "end": "2024-06-01T11:00:00Z",
	}))
	addChild(live, "person", newNode("Jane Doe", nil))

	doc := Parse(buildRoot(channel), FeedTypeRSS, nil)

	if len(doc.Support[2]) != 0 {
		t.Errorf("Expected no phase 2 support from live scope, got %v", doc.Support[2])
	}
	if len(doc.Support[4]) != 1 || doc.Support[4][0] != "liveItem" {
		t.Errorf("Expected phase 4 support [liveItem], got %v", doc.Support[4])
	}
}
