package fieldmap

import "log/slog"

// candidate is one canonical field in the per-call matching pool, with its
// normalization computed once at Mapper construction.
type candidate struct {
	Name string
	Norm string
	Kind FieldKind
}

// Matcher passes take owned pools and hand back reduced copies; nothing is
// mutated in place, so the three-pass pipeline stays composable and each
// pass can be tested on its own.

// matchExact assigns every extracted field whose normalized name equals a
// normalized canonical name, at score 1.0. A reverse index gives O(1)
// lookups after an O(n) build; when two canonical fields normalize to the
// same key the first one wins and the collision is counted.
func matchExact(fields []ExtractedField, pool []candidate) (matches []Match, restFields []ExtractedField, restPool []candidate) {
	index := make(map[string]int, len(pool))
	collisions := 0
	for i, c := range pool {
		if _, exists := index[c.Norm]; exists {
			collisions++
			continue
		}
		index[c.Norm] = i
	}
	if collisions > 0 {
		slog.Warn("canonical fields collide after normalization", "collisions", collisions)
	}

	taken := make(map[int]bool, len(fields))
	for _, f := range fields {
		i, ok := index[Normalize(f.Name)]
		if !ok || taken[i] {
			restFields = append(restFields, f)
			continue
		}
		taken[i] = true
		matches = append(matches, Match{
			Source: f.Name,
			Target: pool[i].Name,
			Score:  1.0,
			Type:   MatchExact,
		})
	}

	for i, c := range pool {
		if !taken[i] {
			restPool = append(restPool, c)
		}
	}
	return matches, restFields, restPool
}

// matchFuzzy assigns each remaining extracted field to its single
// highest-similarity canonical candidate, when the score clears minScore.
// Ties break to the first candidate in pool order, and a claimed target is
// removed before the next source is considered.
func matchFuzzy(fields []ExtractedField, pool []candidate, minScore float64) (matches []Match, restFields []ExtractedField, restPool []candidate) {
	restPool = pool
	for _, f := range fields {
		norm := Normalize(f.Name)
		best, bestScore := -1, 0.0
		for i, c := range restPool {
			if s := Ratio(norm, c.Norm); s > bestScore {
				best, bestScore = i, s
			}
		}
		if best < 0 || bestScore < minScore {
			restFields = append(restFields, f)
			continue
		}
		matches = append(matches, Match{
			Source: f.Name,
			Target: restPool[best].Name,
			Score:  bestScore,
			Type:   MatchFuzzy,
		})
		restPool = removeAt(restPool, best)
	}
	return matches, restFields, restPool
}

// removeAt returns a copy of pool without element i.
func removeAt(pool []candidate, i int) []candidate {
	out := make([]candidate, 0, len(pool)-1)
	out = append(out, pool[:i]...)
	return append(out, pool[i+1:]...)
}
