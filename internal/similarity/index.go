package similarity

import "sort"

// Jaccard returns |A ∩ B| / |A ∪ B| over the token sets of a and b, or 0
// if either set is empty.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Scored pairs a corpus item with its score.
type Scored[T any] struct {
	Item  T
	Score float64
}

// Index scores text using a fixed tokenization mode.
type Index struct {
	Mode Mode
}

// New returns an Index for mode.
func New(mode Mode) Index {
	return Index{Mode: mode}
}

// TopSimilar returns the k corpus items most similar to query, best first.
// Items scoring 0 are dropped and ties keep corpus order.
func TopSimilar[T any](idx Index, query string, corpus []T, text func(T) string, k int) []Scored[T] {
	if k <= 0 || len(corpus) == 0 {
		return nil
	}
	q := Tokenize(query, idx.Mode)
	if len(q) == 0 {
		return nil
	}

	scored := make([]Scored[T], 0, len(corpus))
	for _, item := range corpus {
		s := Jaccard(q, Tokenize(text(item), idx.Mode))
		if s > 0 {
			scored = append(scored, Scored[T]{Item: item, Score: s})
		}
	}
	// stable: equal scores keep corpus order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// Score returns the similarity of two texts under the index mode.
func (idx Index) Score(a, b string) float64 {
	return Jaccard(Tokenize(a, idx.Mode), Tokenize(b, idx.Mode))
}
