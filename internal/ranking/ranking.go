// Package ranking turns raw similarity candidates into a final
// ordered, thresholded, deduplicated result list.
package ranking

import "sort"

// Candidate is one scored chunk entering the ranking pipeline.
type Candidate struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// DocumentID identifies the chunk's parent document.
	DocumentID string

	// Score is the raw similarity score.
	Score float64

	// Seq is the chunk's index insertion sequence, used to break
	// score ties deterministically.
	Seq int
}

// Options control the ranking pipeline.
type Options struct {
	// TopK truncates the ranked list. Non-positive means no limit.
	TopK int

	// Threshold drops candidates scoring strictly below it when set.
	Threshold *float64

	// DedupByDocument keeps only the highest-scoring candidate of
	// each document.
	DedupByDocument bool
}

// Rank orders candidates by score descending with ties resolved to
// earlier insertion, then applies the threshold, the per-document
// dedup, and the TopK truncation. Scores pass through unchanged.
// The input slice is not modified.
func Rank(candidates []Candidate, opts Options) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	results := make([]Candidate, 0, len(ordered))
	var seen map[string]bool
	if opts.DedupByDocument {
		seen = make(map[string]bool)
	}

	for _, cand := range ordered {
		if opts.Threshold != nil && cand.Score < *opts.Threshold {
			continue
		}
		if opts.DedupByDocument {
			if seen[cand.DocumentID] {
				continue
			}
			seen[cand.DocumentID] = true
		}

		results = append(results, cand)
		if opts.TopK > 0 && len(results) == opts.TopK {
			break
		}
	}

	return results
}
