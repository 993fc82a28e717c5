// Package scoring implements the keyword-overlap scoring shared by the FAQ
// knowledge base and the intent classifier.
package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/medic/supportbot/internal/textnorm"
)

// Weights tunes a scorer. The FAQ and intent scorers share the algorithm and
// differ only here.
type Weights struct {
	Pattern        int // any pattern matching the raw utterance
	Exact          int // normalized utterance equals the keyword
	LongSubstring  int // utterance contains a keyword of at least LongKeywordLen runes
	ShortSubstring int // utterance contains a shorter keyword
	LongKeywordLen int
	Canonical      int // utterance contains the canonical phrase
	Floor          int // best scores below Floor are no match
}

// Candidate is one scorable entry.
type Candidate struct {
	Keywords  []string
	Patterns  []*regexp.Regexp
	Canonical string
}

// Best returns the index of the highest scoring candidate and its score.
// Ties keep the earliest candidate. It returns -1 when the best score is
// below the floor or the utterance is blank.
func Best(raw string, candidates []Candidate, w Weights) (int, int) {
	t := textnorm.Normalize(raw)
	if t == "" {
		return -1, 0
	}
	best, bestScore := -1, 0
	for i, c := range candidates {
		sc := score(raw, t, c, w)
		if best == -1 || sc > bestScore {
			best, bestScore = i, sc
		}
	}
	if best == -1 || bestScore < w.Floor {
		return -1, bestScore
	}
	return best, bestScore
}

// score accumulates the score of raw (normalized as t) against c. Every rule
// contributes additively, there is no early exit.
func score(raw, t string, c Candidate, w Weights) int {
	total := 0
	for _, p := range c.Patterns {
		if p.MatchString(raw) {
			total += w.Pattern
			break
		}
	}
	for _, k := range c.Keywords {
		kk := textnorm.Normalize(k)
		if kk == "" {
			continue
		}
		switch {
		case t == kk:
			total += w.Exact
		case strings.Contains(t, kk):
			if utf8.RuneCountInString(kk) >= w.LongKeywordLen {
				total += w.LongSubstring
			} else {
				total += w.ShortSubstring
			}
		}
	}
	if w.Canonical > 0 && c.Canonical != "" {
		if q := textnorm.Normalize(c.Canonical); q != "" && strings.Contains(t, q) {
			total += w.Canonical
		}
	}
	return total
}
