// Package faq answers free-text questions from a static, scored knowledge base.
package faq

import (
	"regexp"

	"github.com/medic/supportbot/internal/scoring"
)

// Weights used by the knowledge base. Keywords of 7+ runes count as long;
// short keywords are discounted because they hit common words.
var Weights = scoring.Weights{
	Pattern:        4,
	Exact:          8,
	LongSubstring:  5,
	ShortSubstring: 2,
	LongKeywordLen: 7,
	Canonical:      3,
	Floor:          4,
}

type Entry struct {
	ID       string           `json:"id"`
	Question string           `json:"question"`
	Answer   string           `json:"answer"`
	Keywords []string         `json:"keywords"`
	Patterns []*regexp.Regexp `json:"-"`
}

// KnowledgeBase is read-only after construction and safe for concurrent use.
type KnowledgeBase struct {
	entries    []Entry
	candidates []scoring.Candidate
}

func New(entries []Entry) *KnowledgeBase {
	kb := &KnowledgeBase{
		entries:    entries,
		candidates: make([]scoring.Candidate, 0, len(entries)),
	}
	for _, e := range entries {
		kb.candidates = append(kb.candidates, scoring.Candidate{
			Keywords:  e.Keywords,
			Patterns:  e.Patterns,
			Canonical: e.Question,
		})
	}
	return kb
}

// Default returns the knowledge base over DefaultCatalog.
func Default() *KnowledgeBase {
	return New(DefaultCatalog)
}

// Match returns the best entry for utterance and its score. ok is false when
// no entry reaches the confidence floor.
func (kb *KnowledgeBase) Match(utterance string) (Entry, int, bool) {
	idx, sc := scoring.Best(utterance, kb.candidates, Weights)
	if idx < 0 {
		return Entry{}, sc, false
	}
	return kb.entries[idx], sc, true
}

// Answer returns the answer body of the best entry, if any.
func (kb *KnowledgeBase) Answer(utterance string) (string, bool) {
	e, _, ok := kb.Match(utterance)
	if !ok {
		return "", false
	}
	return e.Answer, true
}

func (kb *KnowledgeBase) Entries() []Entry {
	out := make([]Entry, len(kb.entries))
	copy(out, kb.entries)
	return out
}
