package orchestrator

import "lipu/types"

// Merge carries viewing progress forward from previous into fresh, matching on ID.
// Only Viewed is copied; every other field stays as freshly fetched. When an ID
// occurs more than once in previous, the first occurrence wins. A nil previous
// returns fresh unchanged.
func Merge(fresh, previous []types.Article) []types.Article {
	if previous == nil {
		return fresh
	}

	progress := make(map[string]types.Progress, len(previous))
	for _, p := range previous {
		if _, seen := progress[p.ID]; !seen {
			progress[p.ID] = p.Viewed
		}
	}

	merged := make([]types.Article, len(fresh))
	for i, a := range fresh {
		if viewed, ok := progress[a.ID]; ok {
			a.Viewed = viewed
		}
		merged[i] = a
	}
	return merged
}
