package parser

import (
	"strconv"
	"strings"
)

// trailerRule parses <podcast:trailer>. A trailer needs a url and a parseable
// pubdate; everything else is enrichment.
var trailerRule = feedRule{
	phase: 3,
	name:  "trailer",
	tag:   "trailer",
	support: func(nodes []*Node, _ Scope) bool {
		for _, n := range nodes {
			if _, ok := trailerFromNode(n); ok {
				return true
			}
		}
		return false
	},
	apply: func(nodes []*Node, f *Feed) {
		for _, n := range nodes {
			if t, ok := trailerFromNode(n); ok {
				f.Trailers = append(f.Trailers, t)
			}
		}
	},
}

func trailerFromNode(n *Node) (Trailer, bool) {
	url := n.Attr("url")
	pubDate, ok := parseDate(n.Attr("pubdate"))
	if url == "" || !ok {
		return Trailer{}, false
	}
	t := Trailer{
		URL:     url,
		PubDate: pubDate,
		Title:   n.TextContent(),
		Type:    n.Attr("type"),
	}
	if length, err := strconv.ParseInt(n.Attr("length"), 10, 64); err == nil {
		t.Length = length
	}
	if season, ok := attrInt(n, "season"); ok {
		t.Season = season
	}
	return t, true
}

func licenseFromNode(n *Node) (License, bool) {
	identifier := n.TextContent()
	if identifier == "" {
		return License{}, false
	}
	return License{
		Identifier: identifier,
		URL:        n.Attr("url"),
	}, true
}

var licenseFeedRule = feedRule{
	phase: 3,
	name:  "license",
	tag:   "license",
	transform: func(nodes []*Node) []*Node {
		return firstWithText(nodes)
	},
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, f *Feed) {
		if l, ok := licenseFromNode(nodes[0]); ok {
			f.License = &l
		}
	},
}

var licenseItemRule = itemRule{
	phase: 3,
	name:  "license",
	tag:   "license",
	live:  true,
	transform: func(nodes []*Node) []*Node {
		return firstWithText(nodes)
	},
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, it *Item) {
		if l, ok := licenseFromNode(nodes[0]); ok {
			it.License = &l
		}
	},
}

var guidFeedRule = feedRule{
	phase: 3,
	name:  "guid",
	tag:   "guid",
	transform: func(nodes []*Node) []*Node {
		return firstWithText(nodes)
	},
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, f *Feed) {
		f.GUID = nodes[0].TextContent()
	},
}

// alternateEnclosureRule parses <podcast:alternateEnclosure> with its nested
// source and integrity children. An enclosure needs a type and at least one
// source with a uri; invalid sources are dropped individually.
var alternateEnclosureRule = itemRule{
	phase: 3,
	name:  "alternateEnclosure",
	tag:   "alternateEnclosure",
	live:  true,
	support: func(nodes []*Node, _ Scope) bool {
		for _, n := range nodes {
			if _, ok := alternateEnclosureFromNode(n); ok {
				return true
			}
		}
		return false
	},
	apply: func(nodes []*Node, it *Item) {
		for _, n := range nodes {
			if enc, ok := alternateEnclosureFromNode(n); ok {
				it.AlternateEnclosures = append(it.AlternateEnclosures, enc)
			}
		}
	},
}

func alternateEnclosureFromNode(n *Node) (AlternateEnclosure, bool) {
	encType := n.Attr("type")
	if encType == "" {
		return AlternateEnclosure{}, false
	}

	var sources []EnclosureSource
	for _, src := range childNodes(n, "source") {
		uri := src.Attr("uri")
		if uri == "" {
			continue
		}
		sources = append(sources, EnclosureSource{
			URI:         uri,
			ContentType: src.Attr("contentType"),
		})
	}
	if len(sources) == 0 {
		return AlternateEnclosure{}, false
	}

	enc := AlternateEnclosure{
		Type:    encType,
		Title:   n.Attr("title"),
		Rel:     n.Attr("rel"),
		Default: attrBool(n, "default"),
		Sources: sources,
	}
	if length, err := strconv.ParseInt(n.Attr("length"), 10, 64); err == nil {
		enc.Length = length
	}
	if bitrate, ok := attrFloat(n, "bitrate"); ok {
		enc.Bitrate = bitrate
	}
	if height, ok := attrInt(n, "height"); ok {
		enc.Height = height
	}
	if codecs := strings.TrimSpace(n.Attr("codecs")); codecs != "" {
		enc.Codecs = strings.Fields(codecs)
	}
	if integrity := firstChild(n, "integrity"); integrity != nil {
		if integrity.Attr("type") != "" && integrity.Attr("value") != "" {
			enc.Integrity = &Integrity{
				Type:  integrity.Attr("type"),
				Value: integrity.Attr("value"),
			}
		}
	}
	return enc, true
}
