package parser

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrMissingAttribute is returned by RequiredAttr when the attribute is absent.
var ErrMissingAttribute = errors.New("missing required attribute")

// Node is one element of the tokenized feed tree. Children keys are local
// (unprefixed) element names; the tree handed to Parse contains only
// podcast-namespace extension elements, baseline elements and item nodes, so
// local names do not collide.
type Node struct {
	Attrs    map[string]string
	Text     string
	Children map[string][]*Node
}

// Attr returns the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

// RequiredAttr returns the named attribute or ErrMissingAttribute.
func (n *Node) RequiredAttr(name string) (string, error) {
	if n == nil || n.Attrs == nil {
		return "", ErrMissingAttribute
	}
	v, ok := n.Attrs[name]
	if !ok {
		return "", ErrMissingAttribute
	}
	return v, nil
}

// TextContent returns the trimmed text content of the node, "" if none.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}

// childNodes returns all children with the given tag, never nil.
func childNodes(n *Node, tag string) []*Node {
	if n == nil || n.Children == nil {
		return nil
	}
	return n.Children[tag]
}

// firstChild returns the first child with the given tag, nil if none.
func firstChild(n *Node, tag string) *Node {
	nodes := childNodes(n, tag)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// firstChildText returns the text of the first child with the given tag.
func firstChildText(n *Node, tag string) string {
	return firstChild(n, tag).TextContent()
}

// firstWithText returns the first node with non-blank text content.
func firstWithText(nodes []*Node) []*Node {
	for _, n := range nodes {
		if n.TextContent() != "" {
			return []*Node{n}
		}
	}
	return nil
}

// parseDate parses a timestamp leniently. It fails soft: unparseable text
// yields a zero time and false rather than an error.
func parseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func attrInt(n *Node, name string) (int, bool) {
	v := strings.TrimSpace(n.Attr(name))
	if v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func attrFloat(n *Node, name string) (float64, bool) {
	v := strings.TrimSpace(n.Attr(name))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func attrBool(n *Node, name string) bool {
	return strings.EqualFold(strings.TrimSpace(n.Attr(name)), "true")
}

func parseYesNo(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), "yes")
}
