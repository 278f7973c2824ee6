package dat

// DAT is a frozen double-array trie over byte strings.
// - Nodes/states are indices into Base/Check (0 is unused; Root is typically 1).
// - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
// - c is a dense alphabet ID in [1..Sigma]. c==0 means "not in alphabet".
//
// Values:
//   - If Value[s] != 0, state s is terminal and Value[s] is the ID stored
//     for the key ending there.
//
// Mapping:
//   - Map maps input bytes to dense alphabet IDs. Bytes never seen while
//     building map to 0.
type DAT struct {
	// Root state index (commonly 1).
	Root uint32

	// Sigma is the size of the dense alphabet (maximum dense ID).
	Sigma uint16

	// Base and Check are the classic double-array.
	Base  []int32 // len == N
	Check []int32 // len == N

	// Value holds the stored ID for terminal states, 0 otherwise.
	Value []int32 // len == N

	Map ByteMap
}

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok). dense must be in [1..Sigma].
func (d *DAT) Transition(state uint32, dense uint16) (uint32, bool) {
	if int(state) >= len(d.Base) || int(state) >= len(d.Check) {
		return 0, false
	}
	t := int32(d.Base[state]) + int32(dense)
	if t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Accepts returns the value stored at state, or 0 if state is not terminal.
func (d *DAT) Accepts(state uint32) int {
	if int(state) >= len(d.Value) {
		return 0
	}
	return int(d.Value[state])
}

// Dense maps a byte to its dense alphabet ID.
// Returns 0 if the byte is not in the alphabet.
func (d *DAT) Dense(b byte) uint16 { return d.Map.Dense(b) }

// LongestMatch walks s from the root and returns the value and length of the
// longest key which is a prefix of s. It returns (0, 0) if there is none.
func (d *DAT) LongestMatch(s string) (value int, length int) {
	state := d.Root
	for i := 0; i < len(s); i++ {
		c := d.Dense(s[i])
		if c == 0 {
			break
		}
		next, ok := d.Transition(state, c)
		if !ok {
			break
		}
		state = next
		if v := d.Accepts(state); v != 0 {
			value, length = v, i+1
		}
	}
	return
}
