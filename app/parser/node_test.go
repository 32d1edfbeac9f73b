package parser

import (
	"errors"
	"testing"
)

// newNode builds a test tree node. Children are attached with addChild.
func newNode(text string, attrs map[string]string) *Node {
	return &Node{Text: text, Attrs: attrs}
}

func addChild(parent *Node, tag string, child *Node) *Node {
	if parent.Children == nil {
		parent.Children = make(map[string][]*Node)
	}
	parent.Children[tag] = append(parent.Children[tag], child)
	return child
}

func TestAttr(t *testing.T) {
	n := newNode("", map[string]string{"url": "https://example.com"})

	if got := n.Attr("url"); got != "https://example.com" {
		t.Errorf("Expected 'https://example.com', got '%s'", got)
	}
	if got := n.Attr("missing"); got != "" {
		t.Errorf("Expected empty string for absent attribute, got '%s'", got)
	}

	var nilNode *Node
	if got := nilNode.Attr("url"); got != "" {
		t.Errorf("Expected empty string on nil node, got '%s'", got)
	}
}

func TestRequiredAttr(t *testing.T) {
	n := newNode("", map[string]string{"type": "audio/mpeg"})

	v, err := n.RequiredAttr("type")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if v != "audio/mpeg" {
		t.Errorf("Expected 'audio/mpeg', got '%s'", v)
	}

	if _, err := n.RequiredAttr("url"); !errors.Is(err, ErrMissingAttribute) {
		t.Errorf("Expected ErrMissingAttribute, got: %v", err)
	}

	empty := newNode("", nil)
	if _, err := empty.RequiredAttr("url"); !errors.Is(err, ErrMissingAttribute) {
		t.Errorf("Expected ErrMissingAttribute on node without attrs, got: %v", err)
	}
}

func TestTextContent(t *testing.T) {
	n := newNode("  hello world \n", nil)
	if got := n.TextContent(); got != "hello world" {
		t.Errorf("Expected trimmed 'hello world', got '%s'", got)
	}

	var nilNode *Node
	if got := nilNode.TextContent(); got != "" {
		t.Errorf("Expected empty string on nil node, got '%s'", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, ok := parseDate("Mon, 03 Jul 2023 10:00:00 GMT"); !ok {
		t.Error("Expected RFC1123 date to parse")
	}
	if _, ok := parseDate("2023-07-03T10:00:00Z"); !ok {
		t.Error("Expected RFC3339 date to parse")
	}
	if _, ok := parseDate("not a date"); ok {
		t.Error("Expected unparseable text to fail soft")
	}
	if _, ok := parseDate(""); ok {
		t.Error("Expected empty text to fail soft")
	}
}

func TestFirstWithText(t *testing.T) {
	nodes := []*Node{
		newNode("   ", nil),
		newNode("second", nil),
		newNode("third", nil),
	}
	got := firstWithText(nodes)
	if len(got) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(got))
	}
	if got[0].TextContent() != "second" {
		t.Errorf("Expected first non-blank node 'second', got '%s'", got[0].TextContent())
	}

	if got := firstWithText([]*Node{newNode("", nil)}); got != nil {
		t.Errorf("Expected nil for all-blank nodes, got %v", got)
	}
}

func TestParseYesNo(t *testing.T) {
	cases := map[string]bool{
		"yes": true, "Yes": true, " YES ": true,
		"no": false, "No": false, "": false, "maybe": false,
	}
	for text, want := range cases {
		if got := parseYesNo(text); got != want {
			t.Errorf("parseYesNo(%q): expected %v, got %v", text, want, got)
		}
	}
}

func TestParseDuration(t *testing.T) {
	cases := map[string]int{
		"90":       90,
		"02:30":    150,
		"1:02:30":  3750,
		"":         0,
		"abc":      0,
		"1:2:3:4":  0,
		" 45 ":     45,
		"00:00:59": 59,
	}
	for text, want := range cases {
		if got := parseDuration(text); got != want {
			t.Errorf("parseDuration(%q): expected %d, got %d", text, want, got)
		}
	}
}

func TestIsExplicit(t *testing.T) {
	for _, text := range []string{"yes", "true", "explicit", "Yes", "TRUE"} {
		if !isExplicit(text) {
			t.Errorf("Expected %q to be explicit", text)
		}
	}
	for _, text := range []string{"no", "false", "clean", ""} {
		if isExplicit(text) {
			t.Errorf("Expected %q to not be explicit", text)
		}
	}
}
