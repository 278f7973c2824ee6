package dat

// ByteMap maps bytes to dense alphabet IDs (uint16).
//
// Only bytes occurring in some key get an ID, which keeps Sigma and therefore
// the spread of the double array small for URL-like keys.
type ByteMap struct {
	ids [256]uint16
	n   uint16
}

// Dense returns the dense alphabet ID for b.
// Returns 0 if absent.
func (m *ByteMap) Dense(b byte) uint16 {
	return m.ids[b]
}

// Ensure returns the dense ID for b, allocating the next free one if b has
// not been seen before.
func (m *ByteMap) Ensure(b byte) uint16 {
	if id := m.ids[b]; id != 0 {
		return id
	}
	m.n++
	m.ids[b] = m.n
	return m.n
}

// Len returns the number of mapped bytes.
func (m *ByteMap) Len() int { return int(m.n) }
