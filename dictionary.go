package prefixdict

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
)

// Dictionary is a compiled hierarchical prefix dictionary.
//
// A dictionary contains:
//   - the atom table: fragments shared by many prefixes, IDs 1..M
//   - the composition table: one composition per level-1 prefix, IDs 1..N.
//
// Both tables are built together by Compile and are immutable afterwards.
type Dictionary struct {
	atoms        *atomRegistry
	compositions []Composition
	prefixIDs    map[string]int
	urls         []RawURL
	config       *Config
	Identifier   string // Identifies the dictionary
}

// MatcherStats reports density metrics for the atom lookup index.
func (dict *Dictionary) MatcherStats() (backend string, keys, usedSlots, totalSlots int, fillRatio float64) {
	if dict == nil || dict.atoms == nil {
		return "", 0, 0, 0, 0
	}
	stats := dict.atoms.matcher.Stats()
	return stats.Backend, stats.Keys, stats.UsedSlots, stats.TotalSlots, stats.FillRatio()
}

// CompileList compiles a dictionary from an in-memory list of URL
// occurrences.
func CompileList(name string, urls []string, opts ...Option) (*Dictionary, error) {
	return Compile(name, NewSliceReader(urls), opts...)
}

// Compile runs the whole build: it counts the URL occurrences delivered by
// reader, splits them into level-1 prefixes, mines and registers atoms and
// decomposes every prefix into a composition.
//
// Composition IDs follow descending prefix frequency, atom IDs descending
// savings; both break ties by canonical collection order.
func Compile(name string, reader URLReader, opts ...Option) (dict *Dictionary, err error) {
	config := newConfig(opts)
	matcher, err := newMatcher(config.Matcher)
	if err != nil {
		return nil, err
	}
	urls, err := collectURLs(reader)
	if err != nil {
		return nil, errors.Wrap(err, "collecting resource URLs")
	}
	prefixes := SplitPrefixes(urls)
	tracer().Infof("%d unique URLs, %d level-1 prefixes", len(urls), len(prefixes))

	registry := newAtomRegistry(matcher)
	for _, candidate := range MineAtoms(prefixes, config) {
		registry.register(candidate)
	}
	registry.freeze()

	sort.SliceStable(prefixes, func(i, j int) bool {
		return prefixes[i].Frequency > prefixes[j].Frequency
	})
	dict = &Dictionary{
		atoms:        registry,
		compositions: make([]Composition, 0, len(prefixes)),
		prefixIDs:    make(map[string]int, len(prefixes)),
		urls:         urls,
		config:       config,
		Identifier:   fmt.Sprintf("prefixes: %s", name),
	}
	for i := range prefixes {
		id := i + 1
		comp := Composition{
			ID:        id,
			Prefix:    prefixes[i].Text,
			Frequency: prefixes[i].Frequency,
			Parts:     decompose(prefixes[i].Text, matcher),
		}
		if back := DecodeExpression(comp.Expression(), registry.text); back != comp.Prefix {
			return nil, errors.AssertionFailedf("composition %d does not round-trip: %q != %q",
				id, back, comp.Prefix)
		}
		dict.compositions = append(dict.compositions, comp)
		dict.prefixIDs[comp.Prefix] = id
	}
	backend, keys, used, total, fill := dict.MatcherStats()
	tracer().Infof("atom matcher stats backend=%s keys=%d used=%d total=%d fill=%.2f",
		backend, keys, used, total, fill)
	tracer().Infof("dictionary %q: %d atoms, %d compositions", name, len(registry.atoms), len(dict.compositions))
	return dict, nil
}

// Atoms returns the atom table ordered by ID.
func (dict *Dictionary) Atoms() []Atom {
	return append([]Atom(nil), dict.atoms.atoms...)
}

// Compositions returns the composition table ordered by ID.
func (dict *Dictionary) Compositions() []Composition {
	return append([]Composition(nil), dict.compositions...)
}

// Prefixes returns the level-1 prefix records ordered by composition ID.
func (dict *Dictionary) Prefixes() []PrefixRecord {
	records := make([]PrefixRecord, len(dict.compositions))
	for i, c := range dict.compositions {
		records[i] = PrefixRecord{Text: c.Prefix, Frequency: c.Frequency, CompositionID: c.ID}
	}
	return records
}

// URLs returns the distinct URLs the dictionary was built from, in canonical
// collection order.
func (dict *Dictionary) URLs() []RawURL {
	return append([]RawURL(nil), dict.urls...)
}

// CompositionID returns the ID assigned to a level-1 prefix.
func (dict *Dictionary) CompositionID(prefix string) (int, bool) {
	id, ok := dict.prefixIDs[prefix]
	return id, ok
}

// AtomText returns the text of atom id.
func (dict *Dictionary) AtomText(id int) (string, bool) {
	return dict.atoms.text(id)
}

// Decompose rewrites text as a sequence of atom references and literal runs
// using this dictionary's atoms. text need not be a registered prefix.
func (dict *Dictionary) Decompose(text string) []Part {
	return decompose(text, dict.atoms.matcher)
}

// Config returns the configuration the dictionary was compiled with.
func (dict *Dictionary) Config() Config {
	return *dict.config
}
