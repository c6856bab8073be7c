package engine

import (
	"math/rand"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

// maxMatchingOptions caps the option list shown per left item so the UI
// never exposes a large right-item column directly.
const maxMatchingOptions = 4

// SampleMatchingOptions precomputes, for every matching-type question, the
// bounded option list per left item: the correct right item plus wrong
// right items sampled uniformly without replacement, in shuffled order.
//
// The result is computed once per question-set load and frozen on the
// session; options must never reorder mid-attempt.
//
// When the correct right item cannot be resolved (dangling correctMatches
// reference) the option set degrades to wrong-item sampling without the
// correct answer. That question becomes unanswerable-correctly; preserved
// behavior, flagged in DESIGN.md.
func SampleMatchingOptions(questions []model.Question, rng *rand.Rand) map[string]map[string][]model.MatchItem {
	out := make(map[string]map[string][]model.MatchItem)

	for i := range questions {
		q := &questions[i]
		if q.Type() != model.QuestionTypeMatching || q.MatchingPairs == nil {
			continue
		}

		pairs := q.MatchingPairs
		perLeft := make(map[string][]model.MatchItem, len(pairs.LeftItems))

		for _, left := range pairs.LeftItems {
			perLeft[left.ID] = sampleOptionsForLeft(pairs, left.ID, rng)
		}
		out[q.ID] = perLeft
	}

	return out
}

func sampleOptionsForLeft(pairs *model.MatchingPairs, leftID string, rng *rand.Rand) []model.MatchItem {
	pool := pairs.RightItems

	// Small pools are shown whole, just shuffled.
	if len(pool) <= maxMatchingOptions {
		options := append([]model.MatchItem(nil), pool...)
		shuffle(options, rng)
		return options
	}

	correctID := pairs.CorrectMatches[leftID]
	var correct *model.MatchItem
	wrong := make([]model.MatchItem, 0, len(pool))
	for i := range pool {
		if pool[i].ID == correctID {
			item := pool[i]
			correct = &item
			continue
		}
		wrong = append(wrong, pool[i])
	}

	options := sampleWithoutReplacement(wrong, maxMatchingOptions-1, rng)
	if correct != nil {
		options = append(options, *correct)
	}
	shuffle(options, rng)
	return options
}

// sampleWithoutReplacement picks n items uniformly from pool.
func sampleWithoutReplacement(pool []model.MatchItem, n int, rng *rand.Rand) []model.MatchItem {
	if n >= len(pool) {
		return append([]model.MatchItem(nil), pool...)
	}
	idx := rng.Perm(len(pool))[:n]
	out := make([]model.MatchItem, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}

func shuffle(items []model.MatchItem, rng *rand.Rand) {
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
