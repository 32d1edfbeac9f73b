package parser

import (
	"sort"
	"time"
)

// Parse runs the phased extraction-and-merge engine over a tokenized feed
// tree and assembles the final document. It returns nil when the root has no
// recognizable channel container; every narrower failure is handled at the
// element or entry it occurred in, so one producer's malformed metadata never
// degrades the rest of the feed.
//
// Parse performs no I/O, keeps no state between calls and never mutates the
// returned Feed afterwards; concurrent calls on independent trees need no
// coordination.
func Parse(root *Node, typ FeedType, opts *Options) *Feed {
	if opts == nil {
		opts = &Options{}
	}

	channel := findChannel(root)
	if channel == nil {
		return nil
	}

	f := handleFeedBaseline(channel, typ)
	f.Blocked = BlockStatusNo
	f.Items = []Item{}

	sup := make(supportAcc)
	runFeedRules(channel, f, sup)

	for _, itemNode := range childNodes(channel, "item") {
		if !isValidItem(itemNode, opts) {
			continue
		}
		it := handleItemBaseline(itemNode)
		runItemRules(itemNode, &it, ScopeItem, sup)

		// Value block fallback: an item without its own blocks shares the
		// feed's slice. Shared by reference deliberately; the item is a
		// read-only view.
		if len(it.Value) == 0 && len(f.Value) > 0 {
			it.Value = f.Value
		}

		f.Items = append(f.Items, it)
	}

	for i := range f.LiveItems {
		if len(f.LiveItems[i].Value) == 0 && len(f.Value) > 0 {
			f.LiveItems[i].Value = f.Value
		}
	}

	reconcileSeasons(f)
	computeItemPubDates(f)
	resolveFeedPubDate(f)

	f.Support = sup.flatten()
	f.LastUpdate = time.Now()

	return f
}

// findChannel locates the channel container under the root. The converter
// normalizes Atom documents into the rss/channel shape before handing the
// tree over.
func findChannel(root *Node) *Node {
	if root == nil {
		return nil
	}
	if rss := firstChild(root, "rss"); rss != nil {
		return firstChild(rss, "channel")
	}
	return firstChild(root, "channel")
}

// isValidItem checks entry eligibility: an item needs a resolvable
// identifier (guid, or link as fallback) unless the caller explicitly
// permits missing identifiers.
func isValidItem(node *Node, opts *Options) bool {
	if opts.AllowMissingGuid {
		return true
	}
	return firstChildText(node, "guid") != "" || firstChildText(node, "link") != ""
}

// reconcileSeasons folds every item's season declaration into a feed-level
// list, deduplicated by number. When two items disagree on the name for the
// same number, the first non-blank name encountered wins.
func reconcileSeasons(f *Feed) {
	var seasons []Season
	index := make(map[int]int)
	for _, it := range f.Items {
		if it.Season == nil {
			continue
		}
		if i, ok := index[it.Season.Number]; ok {
			if seasons[i].Name == "" && it.Season.Name != "" {
				seasons[i].Name = it.Season.Name
			}
			continue
		}
		index[it.Season.Number] = len(seasons)
		seasons = append(seasons, *it.Season)
	}
	if len(seasons) == 0 {
		return
	}
	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].Number < seasons[j].Number
	})
	f.Seasons = seasons
}

// computeItemPubDates finds the newest and oldest publish dates across all
// items that carry one.
func computeItemPubDates(f *Feed) {
	var newest, oldest *time.Time
	for i := range f.Items {
		pd := f.Items[i].PubDate
		if pd == nil {
			continue
		}
		if newest == nil || pd.After(*newest) {
			newest = pd
		}
		if oldest == nil || pd.Before(*oldest) {
			oldest = pd
		}
	}
	f.NewestItemPubDate = newest
	f.OldestItemPubDate = oldest
}

// resolveFeedPubDate adopts the newest item date when the feed declares no
// publish date of its own, and records the larger of the two as the last
// published value.
func resolveFeedPubDate(f *Feed) {
	if f.NewestItemPubDate != nil && f.PubDate == nil {
		f.PubDate = f.NewestItemPubDate
	}
	switch {
	case f.NewestItemPubDate != nil && f.PubDate != nil:
		if f.NewestItemPubDate.After(*f.PubDate) {
			f.LastPubDate = f.NewestItemPubDate
		} else {
			f.LastPubDate = f.PubDate
		}
	case f.PubDate != nil:
		f.LastPubDate = f.PubDate
	}
}
