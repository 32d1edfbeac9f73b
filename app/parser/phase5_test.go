package parser

import (
	"testing"
)

func TestSocialInteractAttributeFallbacks(t *testing.T) {
	channel := newNode("", nil)
	// modern attribute names
	addChild(channel, "socialInteract", newNode("", map[string]string{
		"platform": "activitypub", "uri": "https://pods.example/p/1", "podcastAccountId": "@show",
	}))
	// legacy attribute names, url in the element text
	addChild(channel, "socialInteract", newNode("https://legacy.example/p/2", map[string]string{
		"protocol": "twitter", "accountId": "@legacyshow", "accountUrl": "https://twitter.com/legacyshow",
	}))
	// no platform at all
	addChild(channel, "socialInteract", newNode("https://nowhere.example", nil))

	f := &Feed{}
	runFeedRules(channel, f, make(supportAcc))

	if len(f.SocialInteract) != 2 {
		t.Fatalf("Expected 2 interact entries, got %d", len(f.SocialInteract))
	}
	first := f.SocialInteract[0]
	if first.Platform != "activitypub" || first.URL != "https://pods.example/p/1" || first.ID != "@show" {
		t.Errorf("Unexpected first entry: %+v", first)
	}
	second := f.SocialInteract[1]
	if second.Platform != "twitter" {
		t.Errorf("Expected protocol fallback, got '%s'", second.Platform)
	}
	if second.URL != "https://legacy.example/p/2" {
		t.Errorf("Expected text fallback url, got '%s'", second.URL)
	}
	if second.ID != "@legacyshow" {
		t.Errorf("Expected accountId fallback, got '%s'", second.ID)
	}
	if second.ProfileURL != "https://twitter.com/legacyshow" {
		t.Errorf("Expected accountUrl carried, got '%s'", second.ProfileURL)
	}
}

func TestSocialInteractPriority(t *testing.T) {
	item := newNode("", nil)
	addChild(item, "socialInteract", newNode("", map[string]string{
		"platform": "activitypub", "uri": "https://pods.example/p/9", "priority": "1",
	}))
	addChild(item, "socialInteract", newNode("", map[string]string{
		"platform": "bluesky", "uri": "https://bsky.example/p/9",
	}))

	it := Item{}
	runItemRules(item, &it, ScopeItem, make(supportAcc))

	if len(it.SocialInteract) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(it.SocialInteract))
	}
	if it.SocialInteract[0].Priority == nil || *it.SocialInteract[0].Priority != 1 {
		t.Error("Expected priority 1 on first entry")
	}
	if it.SocialInteract[1].Priority != nil {
		t.Error("Expected absent priority to stay nil")
	}
}

func TestBlockRuleDefaultAndOverrides(t *testing.T) {
	channel := newNode("", nil)
	addChild(channel, "block", newNode("yes", nil))
	addChild(channel, "block", newNode("no", map[string]string{"id": "google"}))
	addChild(channel, "block", newNode("yes", map[string]string{"id": "amazon"}))

	f := &Feed{}
	runFeedRules(channel, f, make(supportAcc))

	if f.Blocked != BlockStatusYes {
		t.Errorf("Expected feed-wide blocked 'yes', got '%s'", f.Blocked)
	}
	if blocked, ok := f.BlockedPlatforms["google"]; !ok || blocked {
		t.Error("Expected google override 'no'")
	}
	if blocked, ok := f.BlockedPlatforms["amazon"]; !ok || !blocked {
		t.Error("Expected amazon override 'yes'")
	}
}

func TestBlockRuleLaterOverrideWins(t *testing.T) {
	channel := newNode("", nil)
	addChild(channel, "block", newNode("yes", map[string]string{"id": "spotify"}))
	addChild(channel, "block", newNode("no", map[string]string{"id": "spotify"}))

	f := &Feed{}
	runFeedRules(channel, f, make(supportAcc))

	if blocked := f.BlockedPlatforms["spotify"]; blocked {
		t.Error("Expected later 'no' override to win")
	}
}

func TestBlockRuleIgnoresJunkText(t *testing.T) {
	channel := newNode("", nil)
	addChild(channel, "block", newNode("maybe", nil))

	f := &Feed{}
	sup := make(supportAcc)
	runFeedRules(channel, f, sup)

	if f.Blocked != "" {
		t.Errorf("Expected no default set by junk text, got '%s'", f.Blocked)
	}
	if len(sup) != 0 {
		t.Error("Expected no support for junk-only block elements")
	}
}

// IsSafeToIngest and IsServiceBlocked must disagree for every platform and
// every block configuration.
func TestIngestPolicyNegation(t *testing.T) {
	feeds := []*Feed{
		{Blocked: BlockStatusNo},
		{Blocked: BlockStatusYes},
		{Blocked: BlockStatusYes, BlockedPlatforms: map[string]bool{"google": false, "amazon": true}},
		{Blocked: BlockStatusNo, BlockedPlatforms: map[string]bool{"spotify": true}},
	}
	platforms := []string{"google", "amazon", "spotify", "unlisted"}

	for i, f := range feeds {
		for _, p := range platforms {
			safe := IsSafeToIngest(f, p)
			blocked := IsServiceBlocked(f, p)
			if safe == blocked {
				t.Errorf("Feed %d platform %s: safe=%v and blocked=%v must be negations", i, p, safe, blocked)
			}
		}
	}
}

func TestIngestPolicyOverrideBeatsDefault(t *testing.T) {
	f := &Feed{
		Blocked:          BlockStatusYes,
		BlockedPlatforms: map[string]bool{"google": false},
	}

	if !IsSafeToIngest(f, "google") {
		t.Error("Expected explicit google 'no' override to permit ingestion")
	}
	if IsSafeToIngest(f, "amazon") {
		t.Error("Expected feed-wide 'yes' default to block amazon")
	}
}
