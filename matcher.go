package prefixdict

import (
	"github.com/cockroachdb/errors"
)

type matcherStats struct {
	Backend    string
	Keys       int
	UsedSlots  int
	TotalSlots int
}

func (s matcherStats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// atomMatcher is the internal backend abstraction for longest-atom lookup.
// Atoms are added while building; after Freeze the matcher is read-only.
type atomMatcher interface {
	Add(text string, id int)
	Freeze()
	LongestMatch(s string) (id int, length int)
	Stats() matcherStats
}

func newMatcher(backend string) (atomMatcher, error) {
	switch backend {
	case MatcherDAT, "":
		return newDATBackend(), nil
	case MatcherTrie:
		return newTrieBackend(), nil
	}
	return nil, errors.Newf("unknown matcher backend %q", backend)
}
