package prefixdict

import (
	"net/url"
	"sync"

	"github.com/cockroachdb/errors"
)

// Resolver rebuilds prefixes from an atom table and a composition table.
// Both tables must stem from the same Compile run; the Resolver cannot detect
// tables shipped out of sync and will then silently produce wrong prefixes.
//
// A Resolver is immutable apart from its cache and safe for concurrent use.
type Resolver struct {
	atoms       map[int]string
	expressions map[int]string
	filenames   FilenamePolicy
	cache       sync.Map // composition ID -> resolved prefix
}

// NewResolver creates a resolver over atom texts and composition
// expressions, both keyed by ID.
func NewResolver(atoms map[int]string, expressions map[int]string, policy FilenamePolicy) *Resolver {
	return &Resolver{
		atoms:       atoms,
		expressions: expressions,
		filenames:   policy,
	}
}

// Resolver returns a Resolver over this dictionary's tables, using the
// dictionary's filename policy.
func (dict *Dictionary) Resolver() *Resolver {
	atoms := make(map[int]string, len(dict.atoms.atoms))
	for _, a := range dict.atoms.atoms {
		atoms[a.ID] = a.Text
	}
	expressions := make(map[int]string, len(dict.compositions))
	for _, c := range dict.compositions {
		expressions[c.ID] = c.Expression()
	}
	return NewResolver(atoms, expressions, dict.config.Filenames)
}

// Len returns the number of compositions known to r.
func (r *Resolver) Len() int {
	return len(r.expressions)
}

// Resolve returns the prefix text of composition id. Atom references which
// cannot be resolved are kept as literal text.
func (r *Resolver) Resolve(id int) (string, bool) {
	if prefix, ok := r.cache.Load(id); ok {
		return prefix.(string), true
	}
	expr, ok := r.expressions[id]
	if !ok {
		return "", false
	}
	prefix := DecodeExpression(expr, r.atom)
	r.cache.Store(id, prefix)
	return prefix, true
}

func (r *Resolver) atom(id int) (string, bool) {
	text, ok := r.atoms[id]
	return text, ok
}

// URL materializes the absolute URL for a stored filename below composition
// id. Under DecodeOnMaterialize the filename is percent-decoded here, and
// nowhere else; undecodable filenames are used as stored.
func (r *Resolver) URL(id int, filename string) (string, bool) {
	prefix, ok := r.Resolve(id)
	if !ok {
		return "", false
	}
	if r.filenames == DecodeOnMaterialize {
		if decoded, err := url.PathUnescape(filename); err == nil {
			filename = decoded
		}
	}
	return prefix + filename, true
}

// Materialize turns a dataset entry back into a URL. Entries which are not
// references are returned unchanged.
func (r *Resolver) Materialize(entry string) (string, error) {
	ref, ok := ParseReference(entry)
	if !ok {
		return entry, nil
	}
	u, ok := r.URL(ref.CompositionID, ref.Filename)
	if !ok {
		return "", errors.Newf("unknown composition ID %d in %q", ref.CompositionID, entry)
	}
	return u, nil
}
