package fieldmap

import (
	"github.com/formsiq/fieldbridge/pkg/taxonomy"
)

// semanticProfile caches the taxonomy lookups for one name.
type semanticProfile struct {
	norm       string
	concepts   map[string]bool
	categories map[string]bool
	role       string
}

func profileOf(tax *taxonomy.Taxonomy, name string) semanticProfile {
	norm := Normalize(name)
	p := semanticProfile{
		norm:       norm,
		concepts:   make(map[string]bool),
		categories: make(map[string]bool),
		role:       tax.Role(norm),
	}
	for _, c := range tax.Concepts(norm) {
		p.concepts[c] = true
	}
	for _, c := range tax.Categories(norm) {
		p.categories[c] = true
	}
	return p
}

// matchSemantic bridges purely semantic renames that exact and fuzzy cannot:
// source and candidate must resolve to a shared synonym concept. The score
// is conceptWeight times the best phrase overlap of the extracted name
// within the shared concepts, plus categoryBonus when the two names also
// share a category or role, capped at 1.0. Conflicting applicant roles veto
// a pair outright: a co-borrower answer never fills a borrower field.
func matchSemantic(tax *taxonomy.Taxonomy, fields []ExtractedField, pool []candidate, opts Options) (matches []Match, restFields []ExtractedField, restPool []candidate) {
	profiles := make([]semanticProfile, len(pool))
	for i, c := range pool {
		profiles[i] = profileOf(tax, c.Name)
	}

	restPool = pool
	for _, f := range fields {
		ext := profileOf(tax, f.Name)
		if len(ext.concepts) == 0 {
			restFields = append(restFields, f)
			continue
		}

		best, bestScore := -1, 0.0
		for i := range restPool {
			score, ok := scorePair(tax, ext, profiles[i], opts)
			if ok && score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 || bestScore < opts.MinScore {
			restFields = append(restFields, f)
			continue
		}
		matches = append(matches, Match{
			Source: f.Name,
			Target: restPool[best].Name,
			Score:  bestScore,
			Type:   MatchSemantic,
		})
		restPool = removeAt(restPool, best)
		profiles = append(profiles[:best], profiles[best+1:]...)
	}
	return matches, restFields, restPool
}

func scorePair(tax *taxonomy.Taxonomy, ext, can semanticProfile, opts Options) (float64, bool) {
	if ext.role != "" && can.role != "" && ext.role != can.role {
		return 0, false
	}

	base := 0.0
	shared := false
	for concept := range ext.concepts {
		if !can.concepts[concept] {
			continue
		}
		shared = true
		for _, phrase := range tax.Phrases(concept) {
			if s := Ratio(ext.norm, phrase); s > base {
				base = s
			}
		}
	}
	if !shared {
		return 0, false
	}

	score := opts.ConceptWeight * base
	for cat := range ext.categories {
		if can.categories[cat] {
			score += opts.CategoryBonus
			break
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score, true
}
