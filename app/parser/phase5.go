package parser

import (
	"regexp"
)

// Attribute fallbacks follow the published tag history: platform was once
// protocol, accountId was once podcastAccountId, and the root post url may
// live in the uri attribute or the element text.
func socialPlatform(n *Node) string {
	if v := n.Attr("platform"); v != "" {
		return v
	}
	return n.Attr("protocol")
}

func socialAccount(n *Node) string {
	if v := n.Attr("podcastAccountId"); v != "" {
		return v
	}
	return n.Attr("accountId")
}

func socialURL(n *Node) string {
	if v := n.Attr("uri"); v != "" {
		return v
	}
	return n.TextContent()
}

// isValidSocialInteractNode requires a platform and a resolvable root url;
// everything else is optional enrichment.
func isValidSocialInteractNode(n *Node) bool {
	return socialPlatform(n) != "" && socialURL(n) != ""
}

// reduceSocialInteractNodes builds the interact list shared by the feed and
// item variants, dropping invalid nodes individually.
func reduceSocialInteractNodes(nodes []*Node) []SocialInteract {
	var out []SocialInteract
	for _, n := range nodes {
		if !isValidSocialInteractNode(n) {
			continue
		}
		si := SocialInteract{
			Platform:   socialPlatform(n),
			ID:         socialAccount(n),
			URL:        socialURL(n),
			ProfileURL: n.Attr("accountUrl"),
		}
		if priority, ok := attrFloat(n, "priority"); ok {
			si.Priority = &priority
		}
		if pubDate, ok := parseDate(n.Attr("pubDate")); ok {
			si.PubDate = &pubDate
		}
		out = append(out, si)
	}
	return out
}

func someSocialInteractValid(nodes []*Node) bool {
	for _, n := range nodes {
		if isValidSocialInteractNode(n) {
			return true
		}
	}
	return false
}

var socialInteractFeedRule = feedRule{
	phase: 5,
	name:  "socialInteract",
	tag:   "socialInteract",
	support: func(nodes []*Node, scope Scope) bool {
		return scope == ScopeFeed && someSocialInteractValid(nodes)
	},
	apply: func(nodes []*Node, f *Feed) {
		f.SocialInteract = append(f.SocialInteract, reduceSocialInteractNodes(nodes)...)
	},
}

var socialInteractItemRule = itemRule{
	phase: 5,
	name:  "socialInteract",
	tag:   "socialInteract",
	support: func(nodes []*Node, scope Scope) bool {
		return scope == ScopeItem && someSocialInteractValid(nodes)
	},
	apply: func(nodes []*Node, it *Item) {
		it.SocialInteract = append(it.SocialInteract, reduceSocialInteractNodes(nodes)...)
	},
}

var blockTextRe = regexp.MustCompile(`(?i)(yes|no)`)

// blockRule folds every <podcast:block> left to right. An element without an
// id sets the feed-wide default; an element with an id sets an explicit
// per-platform override, a later element for the same id overwriting an
// earlier one.
var blockRule = feedRule{
	phase: 5,
	name:  "block",
	tag:   "block",
	transform: func(nodes []*Node) []*Node {
		var out []*Node
		for _, n := range nodes {
			if blockTextRe.MatchString(n.TextContent()) {
				out = append(out, n)
			}
		}
		return out
	},
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, f *Feed) {
		for _, n := range nodes {
			id := n.Attr("id")
			if id != "" {
				if f.BlockedPlatforms == nil {
					f.BlockedPlatforms = make(map[string]bool)
				}
				f.BlockedPlatforms[id] = parseYesNo(n.TextContent())
				continue
			}
			if parseYesNo(n.TextContent()) {
				f.Blocked = BlockStatusYes
			} else {
				f.Blocked = BlockStatusNo
			}
		}
	},
}

// IsSafeToIngest reports whether the given platform may ingest the feed. An
// explicit per-platform override wins; the feed-wide default applies only
// when no override exists.
func IsSafeToIngest(f *Feed, platform string) bool {
	if blocked, ok := f.BlockedPlatforms[platform]; ok {
		return !blocked
	}
	return f.Blocked == BlockStatusNo
}

// IsServiceBlocked is the logical negation of IsSafeToIngest by
// construction.
func IsServiceBlocked(f *Feed, platform string) bool {
	if blocked, ok := f.BlockedPlatforms[platform]; ok {
		return blocked
	}
	return f.Blocked == BlockStatusYes
}
