package parser

import (
	"strconv"
	"strings"
)

const (
	defaultPersonRole  = "host"
	defaultPersonGroup = "cast"
)

func personFromNode(n *Node) (Person, bool) {
	name := n.TextContent()
	if name == "" {
		return Person{}, false
	}
	p := Person{
		Name:  name,
		Role:  strings.ToLower(strings.TrimSpace(n.Attr("role"))),
		Group: strings.ToLower(strings.TrimSpace(n.Attr("group"))),
		Img:   n.Attr("img"),
		Href:  n.Attr("href"),
	}
	if p.Role == "" {
		p.Role = defaultPersonRole
	}
	if p.Group == "" {
		p.Group = defaultPersonGroup
	}
	return p, true
}

func somePersonValid(nodes []*Node, _ Scope) bool {
	for _, n := range nodes {
		if _, ok := personFromNode(n); ok {
			return true
		}
	}
	return false
}

func reducePersonNodes(nodes []*Node) []Person {
	var people []Person
	for _, n := range nodes {
		if p, ok := personFromNode(n); ok {
			people = append(people, p)
		}
	}
	return people
}

var personFeedRule = feedRule{
	phase:   2,
	name:    "person",
	tag:     "person",
	support: somePersonValid,
	apply: func(nodes []*Node, f *Feed) {
		f.People = append(f.People, reducePersonNodes(nodes)...)
	},
}

var personItemRule = itemRule{
	phase:   2,
	name:    "person",
	tag:     "person",
	live:    true,
	support: somePersonValid,
	apply: func(nodes []*Node, it *Item) {
		it.People = append(it.People, reducePersonNodes(nodes)...)
	},
}

func locationFromNode(n *Node) (Location, bool) {
	name := n.TextContent()
	if name == "" {
		return Location{}, false
	}
	return Location{
		Name: name,
		Geo:  n.Attr("geo"),
		OSM:  n.Attr("osm"),
	}, true
}

var locationFeedRule = feedRule{
	phase: 2,
	name:  "location",
	tag:   "location",
	transform: func(nodes []*Node) []*Node {
		return firstWithText(nodes)
	},
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, f *Feed) {
		if loc, ok := locationFromNode(nodes[0]); ok {
			f.Location = &loc
		}
	},
}

var locationItemRule = itemRule{
	phase: 2,
	name:  "location",
	tag:   "location",
	live:  true,
	transform: func(nodes []*Node) []*Node {
		return firstWithText(nodes)
	},
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, it *Item) {
		if loc, ok := locationFromNode(nodes[0]); ok {
			it.Location = &loc
		}
	},
}

// seasonRule parses <podcast:season>: an integer season number with an
// optional display name attribute.
var seasonRule = itemRule{
	phase: 2,
	name:  "season",
	tag:   "season",
	transform: func(nodes []*Node) []*Node {
		return firstWithText(nodes)
	},
	support: func(nodes []*Node, _ Scope) bool {
		_, err := strconv.Atoi(nodes[0].TextContent())
		return err == nil
	},
	apply: func(nodes []*Node, it *Item) {
		number, err := strconv.Atoi(nodes[0].TextContent())
		if err != nil {
			return
		}
		it.Season = &Season{
			Number: number,
			Name:   nodes[0].Attr("name"),
		}
	},
}

var episodeRule = itemRule{
	phase: 2,
	name:  "episode",
	tag:   "episode",
	transform: func(nodes []*Node) []*Node {
		return firstWithText(nodes)
	},
	support: func(nodes []*Node, _ Scope) bool {
		_, err := strconv.ParseFloat(nodes[0].TextContent(), 64)
		return err == nil
	},
	apply: func(nodes []*Node, it *Item) {
		number, err := strconv.ParseFloat(nodes[0].TextContent(), 64)
		if err != nil {
			return
		}
		it.EpisodeNumber = &EpisodeNumber{
			Number:  number,
			Display: nodes[0].Attr("display"),
		}
	},
}
