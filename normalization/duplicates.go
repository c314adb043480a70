package normalization

import "sort"

// DuplicateGroup is a set of catalog names suspected to describe the same
// entity. Advisory output only; nothing is merged automatically.
type DuplicateGroup struct {
	Names      []string `json:"names"`
	Similarity float64  `json:"similarity"`
}

// DuplicateFinder groups catalog names whose stemmed token sets overlap
// beyond a threshold. It catches near-duplicates that the exact
// case/whitespace normalization used during import cannot
// ("Paracetamol Tabs" vs "Paracetamol Tablet").
type DuplicateFinder struct {
	stemmer   *EnglishStemmer
	threshold float64
}

// NewDuplicateFinder creates a finder with the given Jaccard threshold.
// Out-of-range thresholds fall back to 0.75.
func NewDuplicateFinder(threshold float64) *DuplicateFinder {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.75
	}
	return &DuplicateFinder{
		stemmer:   NewEnglishStemmer(),
		threshold: threshold,
	}
}

// FindSuspects returns groups of names with pairwise stemmed-token Jaccard
// similarity at or above the threshold. Each name appears in at most one
// group; groups are keyed off the first name that anchors them.
func (f *DuplicateFinder) FindSuspects(names []string) []DuplicateGroup {
	tokenSets := make([]map[string]struct{}, len(names))
	for i, name := range names {
		set := make(map[string]struct{})
		for _, token := range f.stemmer.StemTokens(name) {
			set[token] = struct{}{}
		}
		tokenSets[i] = set
	}

	assigned := make([]bool, len(names))
	var groups []DuplicateGroup

	for i := range names {
		if assigned[i] || len(tokenSets[i]) == 0 {
			continue
		}

		group := DuplicateGroup{Names: []string{names[i]}, Similarity: 1}
		minSim := 1.0

		for j := i + 1; j < len(names); j++ {
			if assigned[j] || len(tokenSets[j]) == 0 {
				continue
			}
			sim := jaccard(tokenSets[i], tokenSets[j])
			if sim >= f.threshold {
				group.Names = append(group.Names, names[j])
				assigned[j] = true
				if sim < minSim {
					minSim = sim
				}
			}
		}

		if len(group.Names) > 1 {
			assigned[i] = true
			group.Similarity = minSim
			sort.Strings(group.Names)
			groups = append(groups, group)
		}
	}

	return groups
}

// jaccard computes |a∩b| / |a∪b| for two token sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
