package prefixdict

// atomRegistry assigns dense IDs 1..M to atoms in registration order and
// indexes them for longest-match lookup.
type atomRegistry struct {
	atoms   []Atom
	matcher atomMatcher
}

func newAtomRegistry(matcher atomMatcher) *atomRegistry {
	return &atomRegistry{matcher: matcher}
}

// register assigns the next ID to a. Registering an empty atom would let the
// decomposer loop without consuming input, so it is a fatal error.
func (r *atomRegistry) register(a Atom) Atom {
	assert(a.Text != "", "cannot register an atom with empty text")
	a.ID = len(r.atoms) + 1
	r.atoms = append(r.atoms, a)
	r.matcher.Add(a.Text, a.ID)
	tracer().Debugf("atom %d: %q (%s, %d times, saves %d)", a.ID, a.Text, a.Kind, a.Frequency, a.Savings)
	return a
}

func (r *atomRegistry) freeze() {
	r.matcher.Freeze()
}

func (r *atomRegistry) text(id int) (string, bool) {
	if id < 1 || id > len(r.atoms) {
		return "", false
	}
	return r.atoms[id-1].Text, true
}
