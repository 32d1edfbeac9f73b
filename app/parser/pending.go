package parser

// Pending-phase tags: listed by the namespace but not yet assigned a phase
// number. Shapes here are the most likely to change upstream.

var idRule = feedRule{
	phase: PhasePending,
	name:  "id",
	tag:   "id",
	support: func(nodes []*Node, _ Scope) bool {
		for _, n := range nodes {
			if n.Attr("platform") != "" && n.Attr("url") != "" {
				return true
			}
		}
		return false
	},
	apply: func(nodes []*Node, f *Feed) {
		for _, n := range nodes {
			if n.Attr("platform") == "" || n.Attr("url") == "" {
				continue
			}
			f.IDs = append(f.IDs, ExternalID{
				Platform: n.Attr("platform"),
				URL:      n.Attr("url"),
				ID:       n.Attr("id"),
			})
		}
	},
}

func socialNodeURL(n *Node) string {
	if v := n.Attr("url"); v != "" {
		return v
	}
	return n.Attr("podcastAccountUrl")
}

var socialRule = feedRule{
	phase: PhasePending,
	name:  "social",
	tag:   "social",
	support: func(nodes []*Node, scope Scope) bool {
		if scope != ScopeFeed {
			return false
		}
		for _, n := range nodes {
			if n.Attr("platform") != "" && socialNodeURL(n) != "" {
				return true
			}
		}
		return false
	},
	apply: func(nodes []*Node, f *Feed) {
		for _, n := range nodes {
			url := socialNodeURL(n)
			if n.Attr("platform") == "" || url == "" {
				continue
			}
			s := Social{
				Platform: n.Attr("platform"),
				URL:      url,
				ID:       n.Attr("podcastAccountId"),
				Name:     n.TextContent(),
			}
			if priority, ok := attrFloat(n, "priority"); ok {
				s.Priority = &priority
			}
			for _, su := range childNodes(n, "socialSignUp") {
				if su.Attr("signUpUrl") == "" || su.Attr("homeUrl") == "" {
					continue
				}
				signUp := SocialSignUp{
					HomeURL:   su.Attr("homeUrl"),
					SignUpURL: su.Attr("signUpUrl"),
				}
				if priority, ok := attrFloat(su, "priority"); ok {
					signUp.Priority = &priority
				}
				s.SignUp = append(s.SignUp, signUp)
			}
			f.Social = append(f.Social, s)
		}
	},
}

func validRecommendationNodes(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Attr("url") != "" && n.Attr("type") != "" {
			out = append(out, n)
		}
	}
	return out
}

func reduceRecommendationNodes(nodes []*Node) []Recommendation {
	var out []Recommendation
	for _, n := range nodes {
		out = append(out, Recommendation{
			URL:      n.Attr("url"),
			Type:     n.Attr("type"),
			Language: n.Attr("language"),
			Text:     n.TextContent(),
		})
	}
	return out
}

var recommendationsFeedRule = feedRule{
	phase:     PhasePending,
	name:      "recommendations",
	tag:       "recommendations",
	transform: validRecommendationNodes,
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, f *Feed) {
		f.Recommendations = append(f.Recommendations, reduceRecommendationNodes(nodes)...)
	},
}

var recommendationsItemRule = itemRule{
	phase:     PhasePending,
	name:      "recommendations",
	tag:       "recommendations",
	live:      false,
	transform: validRecommendationNodes,
	support: func(nodes []*Node, _ Scope) bool {
		return len(nodes) > 0
	},
	apply: func(nodes []*Node, it *Item) {
		it.Recommendations = append(it.Recommendations, reduceRecommendationNodes(nodes)...)
	},
}

// gatewayRule keeps the first gateway element with a message.
var gatewayRule = itemRule{
	phase:     PhasePending,
	name:      "gateway",
	tag:       "gateway",
	transform: firstWithText,
	support: func(nodes []*Node, _ Scope) bool {
		return nodes[0].TextContent() != ""
	},
	apply: func(nodes []*Node, it *Item) {
		g := &Gateway{Message: nodes[0].TextContent()}
		if order, ok := attrInt(nodes[0], "order"); ok {
			g.Order = order
		}
		it.Gateway = g
	},
}
