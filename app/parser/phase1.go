package parser

import (
	"regexp"
)

var yesNoRe = regexp.MustCompile(`(?i)^(yes|no)$`)

// lockedRule parses <podcast:locked>, the feed-import permission flag.
var lockedRule = feedRule{
	phase: 1,
	name:  "locked",
	tag:   "locked",
	transform: func(nodes []*Node) []*Node {
		return firstWithText(nodes)
	},
	support: func(nodes []*Node, _ Scope) bool {
		return yesNoRe.MatchString(nodes[0].TextContent())
	},
	apply: func(nodes []*Node, f *Feed) {
		n := nodes[0]
		if !yesNoRe.MatchString(n.TextContent()) {
			return
		}
		f.Locked = &Locked{
			Locked: parseYesNo(n.TextContent()),
			Owner:  n.Attr("owner"),
		}
	},
}

var fundingFeedRule = feedRule{
	phase: 1,
	name:  "funding",
	tag:   "funding",
	support: func(nodes []*Node, _ Scope) bool {
		for _, n := range nodes {
			if n.Attr("url") != "" {
				return true
			}
		}
		return false
	},
	apply: func(nodes []*Node, f *Feed) {
		for _, n := range nodes {
			url := n.Attr("url")
			if url == "" {
				continue
			}
			f.Funding = append(f.Funding, Funding{
				URL:     url,
				Message: n.TextContent(),
			})
		}
	},
}

func isValidTranscriptNode(n *Node) bool {
	return n.Attr("url") != "" && n.Attr("type") != ""
}

var transcriptRule = itemRule{
	phase: 1,
	name:  "transcript",
	tag:   "transcript",
	support: func(nodes []*Node, _ Scope) bool {
		for _, n := range nodes {
			if isValidTranscriptNode(n) {
				return true
			}
		}
		return false
	},
	apply: func(nodes []*Node, it *Item) {
		for _, n := range nodes {
			if !isValidTranscriptNode(n) {
				continue
			}
			it.Transcripts = append(it.Transcripts, Transcript{
				URL:      n.Attr("url"),
				Type:     n.Attr("type"),
				Language: n.Attr("language"),
				Rel:      n.Attr("rel"),
			})
		}
	},
}

// chaptersRule keeps the first well-formed chapters declaration; the
// namespace allows only one per item.
var chaptersRule = itemRule{
	phase: 1,
	name:  "chapters",
	tag:   "chapters",
	transform: func(nodes []*Node) []*Node {
		for _, n := range nodes {
			if n.Attr("url") != "" && n.Attr("type") != "" {
				return []*Node{n}
			}
		}
		return nil
	},
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, it *Item) {
		it.Chapters = &Chapters{
			URL:  nodes[0].Attr("url"),
			Type: nodes[0].Attr("type"),
		}
	},
}

func soundbiteTimes(n *Node) (start, duration float64, ok bool) {
	start, sok := attrFloat(n, "startTime")
	duration, dok := attrFloat(n, "duration")
	return start, duration, sok && dok
}

var soundbiteRule = itemRule{
	phase: 1,
	name:  "soundbite",
	tag:   "soundbite",
	support: func(nodes []*Node, _ Scope) bool {
		for _, n := range nodes {
			if _, _, ok := soundbiteTimes(n); ok {
				return true
			}
		}
		return false
	},
	apply: func(nodes []*Node, it *Item) {
		for _, n := range nodes {
			start, duration, ok := soundbiteTimes(n)
			if !ok {
				continue
			}
			it.Soundbites = append(it.Soundbites, Soundbite{
				StartTime: start,
				Duration:  duration,
				Title:     n.TextContent(),
			})
		}
	},
}
