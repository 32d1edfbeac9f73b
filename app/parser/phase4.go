package parser

import (
	"strings"
)

// isValidValueNode reports whether a value element carries the required
// payment rail attributes.
func isValidValueNode(n *Node) bool {
	return n.Attr("type") != "" && n.Attr("method") != ""
}

func someValueValid(nodes []*Node, _ Scope) bool {
	for _, n := range nodes {
		if isValidValueNode(n) {
			return true
		}
	}
	return false
}

// parseValueBlocks extracts every well-formed value block at a scope, in
// source order. Multiple blocks side by side are a supported case (distinct
// payment rails); they are never deduplicated. A block with zero valid
// recipients is still emitted.
func parseValueBlocks(nodes []*Node) []ValueBlock {
	var blocks []ValueBlock
	for _, n := range nodes {
		if !isValidValueNode(n) {
			continue
		}
		block := ValueBlock{
			Type:       n.Attr("type"),
			Method:     n.Attr("method"),
			Suggested:  n.Attr("suggested"),
			Recipients: []ValueRecipient{},
		}
		for _, rn := range childNodes(n, "valueRecipient") {
			if r, ok := recipientFromNode(rn); ok {
				block.Recipients = append(block.Recipients, r)
			}
		}
		block.MetaBoost = metaBoostFromNode(firstChild(n, "metaBoost"))
		blocks = append(blocks, block)
	}
	return blocks
}

// recipientFromNode validates one valueRecipient. Name, type, address and
// split must all be present; anything less drops the recipient whole, never
// partially recorded.
func recipientFromNode(n *Node) (ValueRecipient, bool) {
	split, ok := attrFloat(n, "split")
	if !ok || n.Attr("name") == "" || n.Attr("type") == "" || n.Attr("address") == "" {
		return ValueRecipient{}, false
	}
	return ValueRecipient{
		Name:    n.Attr("name"),
		Type:    n.Attr("type"),
		Address: n.Attr("address"),
		Split:   split,
		Fee:     attrBool(n, "fee"),
	}, true
}

// metaBoostFromNode returns nil unless type, schema and non-blank node text
// are all provided; a metaBoost is all-or-nothing.
func metaBoostFromNode(n *Node) *MetaBoost {
	if n == nil {
		return nil
	}
	if n.Attr("type") == "" || n.Attr("schema") == "" || n.TextContent() == "" {
		return nil
	}
	return &MetaBoost{
		Type:    n.Attr("type"),
		Schema:  n.Attr("schema"),
		Node:    n.TextContent(),
		License: n.Attr("license"),
	}
}

var valueFeedRule = feedRule{
	phase:   4,
	name:    "value",
	tag:     "value",
	support: someValueValid,
	apply: func(nodes []*Node, f *Feed) {
		f.Value = append(f.Value, parseValueBlocks(nodes)...)
	},
}

var valueItemRule = itemRule{
	phase:   4,
	name:    "value",
	tag:     "value",
	support: someValueValid,
	apply: func(nodes []*Node, it *Item) {
		it.Value = append(it.Value, parseValueBlocks(nodes)...)
	},
}

var knownMediums = map[Medium]bool{
	MediumPodcast:    true,
	MediumMusic:      true,
	MediumVideo:      true,
	MediumFilm:       true,
	MediumAudiobook:  true,
	MediumNewsletter: true,
	MediumBlog:       true,
}

// mediumRule parses <podcast:medium>. Values outside the known vocabulary
// are ignored rather than erroring.
var mediumRule = feedRule{
	phase: 4,
	name:  "medium",
	tag:   "medium",
	transform: func(nodes []*Node) []*Node {
		for _, n := range nodes {
			if knownMediums[Medium(strings.ToLower(n.TextContent()))] {
				return []*Node{n}
			}
		}
		return nil
	},
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, f *Feed) {
		f.Medium = Medium(strings.ToLower(nodes[0].TextContent()))
	},
}

func someImagesValid(nodes []*Node, _ Scope) bool {
	for _, n := range nodes {
		if n.Attr("srcset") != "" {
			return true
		}
	}
	return false
}

// parseImageNodes flattens every srcset declaration at a scope into one
// ordered descriptor list.
func parseImageNodes(nodes []*Node) []Image {
	var images []Image
	for _, n := range nodes {
		srcset := n.Attr("srcset")
		if srcset == "" {
			continue
		}
		images = append(images, parseSrcset(srcset)...)
	}
	return images
}

var imagesFeedRule = feedRule{
	phase:   4,
	name:    "images",
	tag:     "images",
	support: someImagesValid,
	apply: func(nodes []*Node, f *Feed) {
		f.Images = append(f.Images, parseImageNodes(nodes)...)
	},
}

var imagesItemRule = itemRule{
	phase:   4,
	name:    "images",
	tag:     "images",
	live:    true,
	support: someImagesValid,
	apply: func(nodes []*Node, it *Item) {
		it.Images = append(it.Images, parseImageNodes(nodes)...)
	},
}

// liveStatusFromText matches the live status vocabulary case-insensitively.
func liveStatusFromText(text string) (LiveStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "live":
		return LiveStatusLive, true
	case "pending":
		return LiveStatusPending, true
	case "ended":
		return LiveStatusEnded, true
	}
	return "", false
}

// liveItemShell validates the required status/start/end attributes. A live
// item failing any of the three is dropped entirely; unrecognized status
// text counts as a failure.
func liveItemShell(n *Node) (LiveItem, bool) {
	status, ok := liveStatusFromText(n.Attr("status"))
	if !ok {
		return LiveItem{}, false
	}
	start, ok := parseDate(n.Attr("start"))
	if !ok {
		return LiveItem{}, false
	}
	end, ok := parseDate(n.Attr("end"))
	if !ok {
		return LiveItem{}, false
	}
	return LiveItem{Status: status, Start: start, End: end}, true
}

// liveItemFromNode parses one live broadcast entry. On a valid shell the
// item-scope engine runs over the children restricted to the live whitelist,
// then value blocks and the legacy chat attribute are extracted separately.
func liveItemFromNode(n *Node) (LiveItem, bool) {
	li, ok := liveItemShell(n)
	if !ok {
		return LiveItem{}, false
	}

	// Nested scope: live-item phase observations stay local to the entry.
	var scratch Item
	runItemRules(n, &scratch, ScopeLive, make(supportAcc))
	li.People = scratch.People
	li.Images = scratch.Images
	li.AlternateEnclosures = scratch.AlternateEnclosures

	li.Title = firstChildText(n, "title")
	li.Description = firstChildText(n, "description")
	li.GUID = firstChildText(n, "guid")
	li.Author = firstChildText(n, "author")

	for _, cl := range childNodes(n, "contentLink") {
		href := cl.Attr("href")
		if href == "" {
			continue
		}
		li.ContentLinks = append(li.ContentLinks, ContentLink{
			Href: href,
			Text: cl.TextContent(),
		})
	}

	li.Value = parseValueBlocks(childNodes(n, "value"))
	li.Chat = n.Attr("chat")

	return li, true
}

var liveItemRule = feedRule{
	phase: 4,
	name:  "liveItem",
	tag:   "liveItem",
	support: func(nodes []*Node, _ Scope) bool {
		for _, n := range nodes {
			if _, ok := liveItemShell(n); ok {
				return true
			}
		}
		return false
	},
	apply: func(nodes []*Node, f *Feed) {
		for _, n := range nodes {
			if li, ok := liveItemFromNode(n); ok {
				f.LiveItems = append(f.LiveItems, li)
			}
		}
	},
}
