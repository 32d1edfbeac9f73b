package parser

import (
	"sort"
)

// Scope is the structural level a rule is being evaluated at.
type Scope int

const (
	ScopeFeed Scope = iota
	ScopeItem
	ScopeLive
)

// feedRule is one declarative extraction rule for the feed scope.
//
// tag is the local element name matched against the channel's children.
// transform reshapes the matched nodes (filter, pick first valid); nil keeps
// them as-is. support decides whether the feature counts as exercised for
// phase bookkeeping, independent of whether extraction yields anything.
// apply writes the rule's partial result straight into the accumulating Feed:
// slice fields are appended, scalar fields assigned. Rules never read each
// other's output.
type feedRule struct {
	phase     int
	name      string
	tag       string
	transform func(nodes []*Node) []*Node
	support   func(nodes []*Node, scope Scope) bool
	apply     func(nodes []*Node, f *Feed)
}

// itemRule is the item-scope counterpart of feedRule. Rules with live set
// also run inside the nested live-item scope.
type itemRule struct {
	phase     int
	name      string
	tag       string
	live      bool
	transform func(nodes []*Node) []*Node
	support   func(nodes []*Node, scope Scope) bool
	apply     func(nodes []*Node, it *Item)
}

// supportAcc accumulates {phase, feature} observations across every scope of
// a single parse.
type supportAcc map[int]map[string]bool

func (s supportAcc) mark(phase int, name string) {
	if s[phase] == nil {
		s[phase] = make(map[string]bool)
	}
	s[phase][name] = true
}

func (s supportAcc) flatten() PhaseSupport {
	if len(s) == 0 {
		return nil
	}
	out := make(PhaseSupport, len(s))
	for phase, names := range s {
		list := make([]string, 0, len(names))
		for name := range names {
			list = append(list, name)
		}
		sort.Strings(list)
		out[phase] = list
	}
	return out
}

// runFeedRules evaluates every feed-scope rule against the channel node,
// folding each rule's partial update into f. Unmatched tags are skipped
// without error; a malformed element only affects its own rule.
func runFeedRules(channel *Node, f *Feed, sup supportAcc) {
	for _, r := range feedRules {
		nodes := childNodes(channel, r.tag)
		if len(nodes) == 0 {
			continue
		}
		if r.transform != nil {
			nodes = r.transform(nodes)
		}
		if len(nodes) == 0 {
			continue
		}
		if r.support(nodes, ScopeFeed) {
			sup.mark(r.phase, r.name)
		}
		r.apply(nodes, f)
	}
}

// runItemRules is runFeedRules for the item and live-item scopes. In the live
// scope only whitelisted rules apply.
func runItemRules(node *Node, it *Item, scope Scope, sup supportAcc) {
	for _, r := range itemRules {
		if scope == ScopeLive && !r.live {
			continue
		}
		nodes := childNodes(node, r.tag)
		if len(nodes) == 0 {
			continue
		}
		if r.transform != nil {
			nodes = r.transform(nodes)
		}
		if len(nodes) == 0 {
			continue
		}
		if r.support(nodes, scope) {
			sup.mark(r.phase, r.name)
		}
		r.apply(nodes, it)
	}
}

// feedRules is the complete feed-scope registry in phase order. New phases
// extend this list; rules are independent and composable.
var feedRules = []feedRule{
	lockedRule,
	fundingFeedRule,
	personFeedRule,
	locationFeedRule,
	trailerRule,
	licenseFeedRule,
	guidFeedRule,
	valueFeedRule,
	mediumRule,
	imagesFeedRule,
	liveItemRule,
	socialInteractFeedRule,
	blockRule,
	idRule,
	socialRule,
	recommendationsFeedRule,
}

// itemRules is the complete item-scope registry in phase order.
var itemRules = []itemRule{
	transcriptRule,
	chaptersRule,
	soundbiteRule,
	personItemRule,
	locationItemRule,
	seasonRule,
	episodeRule,
	licenseItemRule,
	alternateEnclosureRule,
	valueItemRule,
	imagesItemRule,
	socialInteractItemRule,
	recommendationsItemRule,
	gatewayRule,
}
