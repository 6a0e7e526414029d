package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const defaultSearchLimit = 5

// maxDistance is the largest edit distance still treated as a typo.
const maxDistance = 3

// Search finds animals whose name or food resembles q.
// Substring hits rank before typo hits; ties keep catalog order.
func Search(q string, limit int) []Animal {
	return search(animals, q, limit)
}

func search(list []Animal, q string, limit int) []Animal {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	type hit struct {
		idx  int
		dist int
	}
	var hits []hit
	for i, a := range list {
		best := -1
		for _, field := range []string{a.Name, a.Food} {
			f := strings.ToLower(field)
			d := levenshtein.ComputeDistance(q, f)
			if strings.Contains(f, q) {
				d = 0
			}
			if best < 0 || d < best {
				best = d
			}
		}
		if best <= maxDistance {
			hits = append(hits, hit{idx: i, dist: best})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Animal, 0, len(hits))
	for _, h := range hits {
		out = append(out, list[h.idx])
	}
	return out
}
