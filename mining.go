package prefixdict

import (
	"net/url"
	"sort"
	"strings"
)

// SourceKind tells which pattern family an atom was mined from.
type SourceKind int

const (
	ProtocolAtom SourceKind = iota
	DomainAtom
	PathAtom
)

func (k SourceKind) String() string {
	switch k {
	case ProtocolAtom:
		return "protocol"
	case DomainAtom:
		return "domain"
	case PathAtom:
		return "path"
	}
	return "unknown"
}

// Atom is a reusable fragment of prefix text. ID is 0 for mined candidates
// which have not been registered yet.
type Atom struct {
	ID        int
	Text      string
	Kind      SourceKind
	Frequency int
	Savings   int // estimated bytes saved, after table overhead
}

// tally counts candidate fragments and remembers the order in which they
// were first seen.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

// savings estimates the bytes saved by replacing count occurrences of a
// fragment of length n with a reference to one table row.
func savings(count, n, overhead int) int {
	return count*n - n - overhead
}

// MineAtoms discovers protocol, domain-template and path-segment candidates
// across prefixes and returns those with positive savings, sorted by savings
// in descending order. Ties keep family order (protocol, domain, path) and
// first-seen order within a family. Returned atoms carry no ID.
func MineAtoms(prefixes []PrefixRecord, config *Config) []Atom {
	if config == nil {
		config = DefaultConfig()
	}
	weight := func(p PrefixRecord) int {
		if config.Weighted {
			return p.Frequency
		}
		return 1
	}
	var candidates []Atom
	candidates = append(candidates, mineProtocols(prefixes, config, weight)...)
	candidates = append(candidates, mineDomains(prefixes, config, weight)...)
	candidates = append(candidates, minePaths(prefixes, config, weight)...)

	seen := make(map[string]bool, len(candidates))
	atoms := candidates[:0]
	for _, c := range candidates {
		if seen[c.Text] {
			continue
		}
		seen[c.Text] = true
		if c.Savings > 0 {
			atoms = append(atoms, c)
		}
	}
	sort.SliceStable(atoms, func(i, j int) bool {
		return atoms[i].Savings > atoms[j].Savings
	})
	return atoms
}

func mineProtocols(prefixes []PrefixRecord, config *Config, weight func(PrefixRecord) int) []Atom {
	var atoms []Atom
	for _, protocol := range config.Protocols {
		if protocol == "" {
			continue
		}
		count := 0
		for _, p := range prefixes {
			if strings.HasPrefix(p.Text, protocol) {
				count += weight(p)
			}
		}
		if count >= config.MinProtocolCount {
			atoms = append(atoms, Atom{
				Text:      protocol,
				Kind:      ProtocolAtom,
				Frequency: count,
				Savings:   savings(count, len(protocol), config.Overhead),
			})
		}
	}
	return atoms
}

func mineDomains(prefixes []PrefixRecord, config *Config, weight func(PrefixRecord) int) []Atom {
	domains := newTally()
	for _, p := range prefixes {
		host, ok := hostname(p.Text)
		if !ok {
			continue
		}
		labels := strings.Split(host, ".")
		if len(labels) < 2 {
			continue
		}
		stripped := strings.TrimRight(labels[0], "0123456789")
		if stripped != labels[0] && len(stripped) >= 2 {
			domains.add(stripped+"*."+strings.Join(labels[1:], "."), weight(p))
		}
		domains.add(host, weight(p))
	}
	return tallied(domains, DomainAtom, config.MinDomainCount, 1, config.Overhead)
}

func minePaths(prefixes []PrefixRecord, config *Config, weight func(PrefixRecord) int) []Atom {
	paths := newTally()
	for _, p := range prefixes {
		if _, ok := hostname(p.Text); !ok {
			continue
		}
		segments := pathSegments(p.Text)
		for i := 1; i <= min(config.MaxPathDepth, len(segments)); i++ {
			paths.add("/"+strings.Join(segments[:i], "/")+"/", weight(p))
		}
	}
	return tallied(paths, PathAtom, config.MinPathCount, config.MinPathLength, config.Overhead)
}

func tallied(t *tally, kind SourceKind, minCount, minLength, overhead int) []Atom {
	var atoms []Atom
	for _, text := range t.order {
		count := t.counts[text]
		if count < minCount || len(text) < minLength {
			continue
		}
		atoms = append(atoms, Atom{
			Text:      text,
			Kind:      kind,
			Frequency: count,
			Savings:   savings(count, len(text), overhead),
		})
	}
	return atoms
}

// hostname returns the host name of an absolute URL. Prefixes which do not
// parse as absolute URLs are reported as !ok.
func hostname(prefix string) (string, bool) {
	u, err := url.Parse(prefix)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	host := u.Hostname()
	return host, host != ""
}

// pathSegments returns the non-empty segments of the path of an absolute
// URL, exactly as they are spelled in the prefix text.
func pathSegments(prefix string) []string {
	i := strings.Index(prefix, "://")
	if i < 0 {
		return nil
	}
	rest := prefix[i+3:]
	j := strings.IndexByte(rest, '/')
	if j < 0 {
		return nil
	}
	path := rest[j:]
	if k := strings.IndexByte(path, '#'); k >= 0 {
		path = path[:k]
	}
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
