package prefixdict

import (
	"unicode/utf8"

	"github.com/derekparker/trie"
)

type trieEntry struct {
	id   int
	text string
}

// trieBackend indexes atoms in a rune trie. It has no separate frozen
// representation; Freeze only forbids further additions.
type trieBackend struct {
	frozen bool
	index  *trie.Trie
	keys   int
	runes  int
}

func newTrieBackend() *trieBackend {
	return &trieBackend{index: trie.New()}
}

func (tb *trieBackend) Add(text string, id int) {
	assert(!tb.frozen, "cannot add atoms to a frozen matcher")
	if _, found := tb.index.Find(text); !found {
		tb.keys++
		tb.runes += utf8.RuneCountInString(text)
	}
	tb.index.Add(text, trieEntry{id: id, text: text})
}

func (tb *trieBackend) Freeze() {
	tb.frozen = true
}

// LongestMatch extends the candidate key rune by rune as long as some atom
// still starts with it, remembering the last complete atom.
func (tb *trieBackend) LongestMatch(s string) (int, int) {
	id, length := 0, 0
	for end := 0; end < len(s); {
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
		key := s[:end]
		if !tb.index.HasKeysWithPrefix(key) {
			break
		}
		node, found := tb.index.Find(key)
		if !found {
			continue
		}
		// keys with invalid UTF-8 collapse to U+FFFD inside the trie
		if entry, ok := node.Meta().(trieEntry); ok && entry.text == key {
			id, length = entry.id, end
		}
	}
	return id, length
}

func (tb *trieBackend) Stats() matcherStats {
	return matcherStats{
		Backend:    MatcherTrie,
		Keys:       tb.keys,
		UsedSlots:  tb.runes,
		TotalSlots: tb.runes,
	}
}
