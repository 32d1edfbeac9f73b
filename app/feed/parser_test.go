package feed

import (
	"testing"

	"github.com/podverse/partytime/app/parser"
)

func TestRunRSS2(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0" xmlns:podcast="https://podcastindex.org/namespace/1.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Test Podcast</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <language>en-us</language>
    <itunes:explicit>yes</itunes:explicit>
    <podcast:locked owner="podcaster@example.com">yes</podcast:locked>
    <podcast:funding url="https://example.com/donate">Support us!</podcast:funding>
    <podcast:guid>917393e3-1b1e-5cef-ace4-edaa54e1f810</podcast:guid>
    <podcast:medium>podcast</podcast:medium>
    <podcast:value type="lightning" method="keysend" suggested="0.00000005000">
      <podcast:valueRecipient name="Host" type="node" address="addr-host" split="90" />
      <podcast:valueRecipient name="Service" type="node" address="addr-service" split="10" fee="true" />
    </podcast:value>
    <item>
      <title>Episode 1</title>
      <link>https://example.com/ep1</link>
      <description>First episode</description>
      <guid>ep-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
      <itunes:duration>30:00</itunes:duration>
      <enclosure url="https://example.com/ep1.mp3" length="24576000" type="audio/mpeg"/>
      <podcast:transcript url="https://example.com/ep1.srt" type="application/srt"/>
      <podcast:season name="Origins">1</podcast:season>
      <podcast:episode>1</podcast:episode>
      <podcast:soundbite startTime="73.0" duration="60.0">The best bit</podcast:soundbite>
    </item>
    <item>
      <title>Episode 2</title>
      <guid>ep-2</guid>
      <pubDate>Tue, 04 Jul 2023 10:00:00 GMT</pubDate>
      <podcast:value type="lightning" method="keysend">
        <podcast:valueRecipient name="Guest" type="node" address="addr-guest" split="100" />
      </podcast:value>
    </item>
  </channel>
</rss>`

	p := NewParser()
	doc, err := p.Run([]byte(rssData), nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if doc.Type != parser.FeedTypeRSS {
		t.Errorf("Expected RSS type, got %v", doc.Type)
	}
	if doc.Title != "Test Podcast" {
		t.Errorf("Expected title 'Test Podcast', got '%s'", doc.Title)
	}
	if doc.Language != "en-US" {
		t.Errorf("Expected normalized language 'en-US', got '%s'", doc.Language)
	}
	if !doc.Explicit {
		t.Error("Expected explicit feed")
	}
	if doc.Locked == nil || !doc.Locked.Locked || doc.Locked.Owner != "podcaster@example.com" {
		t.Errorf("Unexpected locked: %+v", doc.Locked)
	}
	if len(doc.Funding) != 1 || doc.Funding[0].Message != "Support us!" {
		t.Errorf("Unexpected funding: %+v", doc.Funding)
	}
	if doc.GUID != "917393e3-1b1e-5cef-ace4-edaa54e1f810" {
		t.Errorf("Unexpected feed guid '%s'", doc.GUID)
	}
	if doc.Medium != parser.MediumPodcast {
		t.Errorf("Expected medium 'podcast', got '%s'", doc.Medium)
	}

	if len(doc.Value) != 1 {
		t.Fatalf("Expected 1 feed value block, got %d", len(doc.Value))
	}
	if len(doc.Value[0].Recipients) != 2 {
		t.Fatalf("Expected 2 recipients, got %d", len(doc.Value[0].Recipients))
	}
	if !doc.Value[0].Recipients[1].Fee {
		t.Error("Expected second recipient to be a fee recipient")
	}

	if len(doc.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(doc.Items))
	}

	ep1 := doc.Items[0]
	if ep1.GUID != "ep-1" {
		t.Errorf("Expected guid 'ep-1', got '%s'", ep1.GUID)
	}
	if ep1.Duration != 1800 {
		t.Errorf("Expected duration 1800, got %d", ep1.Duration)
	}
	if ep1.Enclosure == nil || ep1.Enclosure.Length != 24576000 {
		t.Errorf("Unexpected enclosure: %+v", ep1.Enclosure)
	}
	if len(ep1.Transcripts) != 1 {
		t.Errorf("Expected 1 transcript, got %d", len(ep1.Transcripts))
	}
	if ep1.Season == nil || ep1.Season.Number != 1 || ep1.Season.Name != "Origins" {
		t.Errorf("Unexpected season: %+v", ep1.Season)
	}
	if len(ep1.Soundbites) != 1 || ep1.Soundbites[0].StartTime != 73.0 {
		t.Errorf("Unexpected soundbites: %+v", ep1.Soundbites)
	}

	// Episode 1 inherits the feed block, episode 2 keeps its own.
	if len(ep1.Value) != 1 || ep1.Value[0].Recipients[0].Name != "Host" {
		t.Errorf("Expected inherited value block, got %+v", ep1.Value)
	}
	ep2 := doc.Items[1]
	if len(ep2.Value) != 1 || ep2.Value[0].Recipients[0].Name != "Guest" {
		t.Errorf("Expected item's own value block, got %+v", ep2.Value)
	}

	if len(doc.Seasons) != 1 || doc.Seasons[0].Name != "Origins" {
		t.Errorf("Expected reconciled seasons, got %+v", doc.Seasons)
	}
	if doc.NewestItemPubDate == nil || doc.OldestItemPubDate == nil {
		t.Error("Expected item pub dates computed")
	}
}

func TestRunAtom(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2023-07-03T12:00:00Z</updated>
  <id>urn:uuid:1234567890</id>
  <entry>
    <title>Test Entry</title>
    <link href="https://example.com/entry1"/>
    <id>urn:uuid:entry-1</id>
    <updated>2023-07-03T10:00:00Z</updated>
    <content type="html">Test content</content>
  </entry>
</feed>`

	p := NewParser()
	doc, err := p.Run([]byte(atomData), nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if doc.Type != parser.FeedTypeAtom {
		t.Errorf("Expected Atom type, got %v", doc.Type)
	}
	if doc.Title != "Test Atom Feed" {
		t.Errorf("Expected title 'Test Atom Feed', got '%s'", doc.Title)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(doc.Items))
	}
	if doc.Items[0].GUID != "urn:uuid:entry-1" {
		t.Errorf("Expected entry id as guid, got '%s'", doc.Items[0].GUID)
	}
}

func TestRunLiveItem(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0" xmlns:podcast="https://podcastindex.org/namespace/1.0">
  <channel>
    <title>Live Show</title>
    <link>https://example.com</link>
    <description>Live stuff</description>
    <podcast:liveItem status="LIVE" start="2024-06-01T10:00:00Z" end="2024-06-01T11:00:00Z">
      <title>Friday Stream</title>
      <podcast:person>Jane Doe</podcast:person>
      <podcast:contentLink href="https://example.com/listen">Listen here</podcast:contentLink>
    </podcast:liveItem>
    <podcast:liveItem status="over" start="2024-06-02T10:00:00Z" end="2024-06-02T11:00:00Z">
      <title>Broken Stream</title>
    </podcast:liveItem>
  </channel>
</rss>`

	p := NewParser()
	doc, err := p.Run([]byte(rssData), nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(doc.LiveItems) != 1 {
		t.Fatalf("Expected 1 live item (bad status dropped), got %d", len(doc.LiveItems))
	}
	li := doc.LiveItems[0]
	if li.Status != parser.LiveStatusLive {
		t.Errorf("Expected status 'live', got '%s'", li.Status)
	}
	if li.Title != "Friday Stream" {
		t.Errorf("Expected title 'Friday Stream', got '%s'", li.Title)
	}
	if len(li.People) != 1 || li.People[0].Name != "Jane Doe" {
		t.Errorf("Unexpected people: %+v", li.People)
	}
	if len(li.ContentLinks) != 1 || li.ContentLinks[0].Href != "https://example.com/listen" {
		t.Errorf("Unexpected content links: %+v", li.ContentLinks)
	}
}

func TestRunAllowMissingGuid(t *testing.T) {
	rssData := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Guidless</title>
    <link>https://example.com</link>
    <description>Items without identifiers</description>
    <item>
      <title>Orphan 1</title>
    </item>
    <item>
      <title>Identified</title>
      <guid>ep-1</guid>
    </item>
  </channel>
</rss>`

	p := NewParser()

	doc, err := p.Run([]byte(rssData), nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(doc.Items) != 1 {
		t.Errorf("Expected orphan dropped by default, got %d items", len(doc.Items))
	}

	doc, err = p.Run([]byte(rssData), &parser.Options{AllowMissingGuid: true})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(doc.Items) != 2 {
		t.Errorf("Expected both items kept, got %d items", len(doc.Items))
	}
}

func TestRunInvalidInput(t *testing.T) {
	p := NewParser()
	if _, err := p.Run([]byte("this is not XML"), nil); err == nil {
		t.Error("Expected error for unparsable input")
	}
}
