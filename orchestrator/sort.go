package orchestrator

import (
	"sort"
	"time"

	"lipu/types"
)

// epoch is the sort key of articles that carry no timestamp at all.
var epoch = time.Unix(0, 0).UTC()

// RecencyKey returns Created, else Updated, else the Unix epoch.
func RecencyKey(a types.Article) time.Time {
	switch {
	case a.Created != nil:
		return *a.Created
	case a.Updated != nil:
		return *a.Updated
	default:
		return epoch
	}
}

func dated(a types.Article) bool {
	return a.Created != nil || a.Updated != nil
}

// SortByRecency orders articles newest first, in place. Articles with no
// timestamp go after every dated one, even dates before the epoch. Articles
// with equal keys keep their relative order.
func SortByRecency(articles []types.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if dated(a) != dated(b) {
			return dated(a)
		}
		return RecencyKey(a).After(RecencyKey(b))
	})
}
