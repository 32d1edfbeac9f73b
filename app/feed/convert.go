package feed

import (
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/podverse/partytime/app/parser"
)

// podcastPrefix is the canonical namespace prefix podcast feeds declare; it
// is the key gofeed files the extension trees under.
const podcastPrefix = "podcast"

// convertFeed lowers a gofeed document into the generic node tree the core
// engine consumes: an rss→channel shape whose channel children are the raw
// podcast-namespace extension trees plus synthesized baseline elements and
// item nodes. Atom documents are normalized into the same shape. Children
// keys are local element names throughout.
func convertFeed(src *gofeed.Feed) *parser.Node {
	channel := newNode()

	addTextChild(channel, "title", src.Title)
	addTextChild(channel, "link", src.Link)
	addTextChild(channel, "description", src.Description)
	addTextChild(channel, "language", src.Language)
	addTextChild(channel, "copyright", src.Copyright)
	addTextChild(channel, "generator", src.Generator)
	addTextChild(channel, "pubDate", src.Published)
	addTextChild(channel, "lastBuildDate", src.Updated)
	for _, c := range src.Categories {
		addTextChild(channel, "category", c)
	}

	author := src.Author
	if src.ITunesExt != nil {
		if src.ITunesExt.Author != "" {
			author = &gofeed.Person{Name: src.ITunesExt.Author}
		}
		addTextChild(channel, "explicit", src.ITunesExt.Explicit)
		addTextChild(channel, "itunesType", src.ITunesExt.Type)
		addTextChild(channel, "itunesImage", src.ITunesExt.Image)
		if src.ITunesExt.Owner != nil {
			owner := newNode()
			addTextChild(owner, "name", src.ITunesExt.Owner.Name)
			addTextChild(owner, "email", src.ITunesExt.Owner.Email)
			addChild(channel, "owner", owner)
		}
	}
	if author != nil {
		addTextChild(channel, "author", author.Name)
	}

	if src.Image != nil {
		image := newNode()
		addTextChild(image, "url", src.Image.URL)
		addTextChild(image, "title", src.Image.Title)
		addChild(channel, "image", image)
	}

	addExtensions(channel, src.Extensions)

	for _, item := range src.Items {
		addChild(channel, "item", convertItem(item))
	}

	rss := newNode()
	addChild(rss, "channel", channel)
	root := newNode()
	addChild(root, "rss", rss)
	return root
}

func convertItem(src *gofeed.Item) *parser.Node {
	node := newNode()

	addTextChild(node, "title", src.Title)
	addTextChild(node, "link", src.Link)
	addTextChild(node, "description", src.Description)
	addTextChild(node, "guid", src.GUID)
	addTextChild(node, "pubDate", src.Published)

	author := src.Author
	if src.ITunesExt != nil {
		if src.ITunesExt.Author != "" {
			author = &gofeed.Person{Name: src.ITunesExt.Author}
		}
		addTextChild(node, "summary", src.ITunesExt.Summary)
		addTextChild(node, "itunesImage", src.ITunesExt.Image)
		addTextChild(node, "explicit", src.ITunesExt.Explicit)
		addTextChild(node, "episodeType", src.ITunesExt.EpisodeType)
		addTextChild(node, "duration", src.ITunesExt.Duration)
		addTextChild(node, "keywords", src.ITunesExt.Keywords)
	}
	if author != nil {
		addTextChild(node, "author", author.Name)
	}
	if src.ITunesExt == nil || src.ITunesExt.Image == "" {
		if src.Image != nil {
			addTextChild(node, "itunesImage", src.Image.URL)
		}
	}

	// RSS 2.0 allows a single enclosure per item.
	if len(src.Enclosures) > 0 && src.Enclosures[0] != nil {
		enc := src.Enclosures[0]
		addChild(node, "enclosure", &parser.Node{
			Attrs: map[string]string{
				"url":    enc.URL,
				"length": enc.Length,
				"type":   enc.Type,
			},
		})
	}

	addExtensions(node, src.Extensions)

	return node
}

// addExtensions grafts the podcast-namespace extension trees onto a node.
func addExtensions(node *parser.Node, exts ext.Extensions) {
	for tag, list := range exts[podcastPrefix] {
		for _, e := range list {
			addChild(node, tag, convertExtension(e))
		}
	}
}

func convertExtension(e ext.Extension) *parser.Node {
	node := &parser.Node{Text: e.Value}
	if len(e.Attrs) > 0 {
		node.Attrs = make(map[string]string, len(e.Attrs))
		for k, v := range e.Attrs {
			node.Attrs[k] = v
		}
	}
	for tag, children := range e.Children {
		for _, child := range children {
			addChild(node, tag, convertExtension(child))
		}
	}
	return node
}

func newNode() *parser.Node {
	return &parser.Node{Children: make(map[string][]*parser.Node)}
}

func addChild(parent *parser.Node, tag string, child *parser.Node) {
	if parent.Children == nil {
		parent.Children = make(map[string][]*parser.Node)
	}
	parent.Children[tag] = append(parent.Children[tag], child)
}

func addTextChild(parent *parser.Node, tag, text string) {
	if text == "" {
		return
	}
	addChild(parent, tag, &parser.Node{Text: text})
}
