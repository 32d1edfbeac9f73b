package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
	"golang.org/x/text/language"

	"github.com/podverse/partytime/app/parser"
)

// Parser is the production front-end of the core engine: gofeed tokenizes
// the document and extracts baseline fields, the converter lowers the result
// into the generic node tree, and parser.Parse runs the phased extraction.
type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses raw RSS/Atom bytes into a complete document. Structural
// failures (unparsable XML, no channel container) surface as an error;
// narrower problems degrade per element inside the core.
func (p *Parser) Run(data []byte, opts *parser.Options) (*parser.Feed, error) {
	feedType := gofeed.DetectFeedType(bytes.NewReader(data))

	src, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	typ := parser.FeedTypeRSS
	if feedType == gofeed.FeedTypeAtom {
		typ = parser.FeedTypeAtom
	}

	doc := parser.Parse(convertFeed(src), typ, opts)
	if doc == nil {
		return nil, fmt.Errorf("feed has no channel container")
	}

	// Normalize the declared language to a canonical BCP 47 tag;
	// unparseable declarations are kept verbatim.
	if doc.Language != "" {
		if tag, err := language.Parse(doc.Language); err == nil {
			doc.Language = tag.String()
		}
	}

	return doc, nil
}
