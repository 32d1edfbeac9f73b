package parser

import (
	"strconv"
	"strings"
)

// Baseline RSS/iTunes fields are simple 1:1 node mappings, kept separate
// from the phased rule engine. The node tree's baseline vocabulary is
// defined by the converter in app/feed; tests may synthesize it directly.

func handleFeedBaseline(channel *Node, typ FeedType) *Feed {
	f := &Feed{
		Type:        typ,
		Title:       firstChildText(channel, "title"),
		Link:        firstChildText(channel, "link"),
		Description: firstChildText(channel, "description"),
		Language:    firstChildText(channel, "language"),
		Copyright:   firstChildText(channel, "copyright"),
		Generator:   firstChildText(channel, "generator"),
		Author:      firstChildText(channel, "author"),
		ItunesType:  firstChildText(channel, "itunesType"),
		ItunesImage: firstChildText(channel, "itunesImage"),
		Explicit:    isExplicit(firstChildText(channel, "explicit")),
	}

	for _, c := range childNodes(channel, "category") {
		if text := c.TextContent(); text != "" {
			f.Categories = append(f.Categories, text)
		}
	}

	if pubDate, ok := parseDate(firstChildText(channel, "pubDate")); ok {
		f.PubDate = &pubDate
	}
	if lastBuild, ok := parseDate(firstChildText(channel, "lastBuildDate")); ok {
		f.LastBuildDate = &lastBuild
	}

	if owner := firstChild(channel, "owner"); owner != nil {
		name := firstChildText(owner, "name")
		email := firstChildText(owner, "email")
		if name != "" || email != "" {
			f.Owner = &Owner{Name: name, Email: email}
		}
	}

	if image := firstChild(channel, "image"); image != nil {
		if url := firstChildText(image, "url"); url != "" {
			fi := &FeedImage{
				URL:   url,
				Title: firstChildText(image, "title"),
				Link:  firstChildText(image, "link"),
			}
			if w, err := strconv.Atoi(firstChildText(image, "width")); err == nil {
				fi.Width = w
			}
			if h, err := strconv.Atoi(firstChildText(image, "height")); err == nil {
				fi.Height = h
			}
			f.Image = fi
		}
	}

	return f
}

func handleItemBaseline(node *Node) Item {
	it := Item{
		Title:       firstChildText(node, "title"),
		Link:        firstChildText(node, "link"),
		Description: firstChildText(node, "description"),
		Author:      firstChildText(node, "author"),
		Summary:     firstChildText(node, "summary"),
		ImageURL:    firstChildText(node, "itunesImage"),
		EpisodeType: firstChildText(node, "episodeType"),
		Explicit:    isExplicit(firstChildText(node, "explicit")),
		Duration:    parseDuration(firstChildText(node, "duration")),
	}

	it.GUID = firstChildText(node, "guid")
	if it.GUID == "" {
		it.GUID = it.Link
	}

	if pubDate, ok := parseDate(firstChildText(node, "pubDate")); ok {
		it.PubDate = &pubDate
	}

	if enc := firstChild(node, "enclosure"); enc != nil {
		if url := enc.Attr("url"); url != "" {
			e := &Enclosure{URL: url, Type: enc.Attr("type")}
			if length, err := strconv.ParseInt(enc.Attr("length"), 10, 64); err == nil {
				e.Length = length
			}
			it.Enclosure = e
		}
	}

	if keywords := firstChildText(node, "keywords"); keywords != "" {
		for _, kw := range strings.Split(keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				it.Keywords = append(it.Keywords, kw)
			}
		}
	}

	return it
}

func isExplicit(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "true", "explicit":
		return true
	}
	return false
}

// parseDuration reads an iTunes duration: plain seconds, MM:SS or HH:MM:SS.
// Unparseable text yields zero.
func parseDuration(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	parts := strings.Split(text, ":")
	if len(parts) > 3 {
		return 0
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}
