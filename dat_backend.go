package prefixdict

import (
	"fmt"
	"sort"

	"github.com/npillmayer/prefixdict/dat"
)

type datBuildNode struct {
	id       int // atom ID for terminal nodes
	state    uint32
	children map[uint16]*datBuildNode
}

type datBackend struct {
	frozen   bool
	root     *datBuildNode
	keys     int
	compiled *dat.DAT
}

func newDATBackend() *datBackend {
	return &datBackend{
		root: &datBuildNode{children: make(map[uint16]*datBuildNode)},
		compiled: &dat.DAT{
			Root: 1,
		},
	}
}

func (db *datBackend) Add(text string, id int) {
	assert(!db.frozen, "cannot add atoms to a frozen matcher")
	n := db.root
	for i := 0; i < len(text); i++ {
		c := db.compiled.Map.Ensure(text[i])
		child := n.children[c]
		if child == nil {
			child = &datBuildNode{children: make(map[uint16]*datBuildNode)}
			n.children[c] = child
		}
		n = child
	}
	if n.id == 0 {
		db.keys++
	}
	n.id = id
}

func (db *datBackend) Freeze() {
	if db.frozen {
		return
	}
	db.compiled.Sigma = uint16(db.compiled.Map.Len())
	db.compiled.Base = make([]int32, int(db.compiled.Root)+1)
	db.compiled.Check = make([]int32, int(db.compiled.Root)+1)
	db.compiled.Value = make([]int32, int(db.compiled.Root)+1)
	db.root.state = db.compiled.Root
	queue := []*datBuildNode{db.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		db.compiled.Value[n.state] = int32(n.id)
		if len(n.children) == 0 {
			continue
		}
		labels := sortedLabels(n.children)
		base := findDATBase(db.compiled.Check, labels)
		ensureDATIndex(db.compiled, base+int(labels[len(labels)-1]))
		db.compiled.Base[n.state] = int32(base)
		for _, label := range labels {
			t := base + int(label)
			child := n.children[label]
			child.state = uint32(t)
			db.compiled.Check[t] = int32(n.state)
			queue = append(queue, child)
		}
	}
	db.root = nil
	db.frozen = true
}

func (db *datBackend) LongestMatch(s string) (int, int) {
	if db.frozen {
		return db.compiled.LongestMatch(s)
	}
	id, length := 0, 0
	n := db.root
	for i := 0; i < len(s); i++ {
		c := db.compiled.Map.Dense(s[i])
		if c == 0 {
			break
		}
		if n = n.children[c]; n == nil {
			break
		}
		if n.id != 0 {
			id, length = n.id, i+1
		}
	}
	return id, length
}

func sortedLabels(children map[uint16]*datBuildNode) []uint16 {
	labels := make([]uint16, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

func findDATBase(check []int32, labels []uint16) int {
	for base := 1; ; base++ {
		ok := true
		for _, label := range labels {
			t := base + int(label)
			if t < len(check) && check[t] != 0 {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

func ensureDATIndex(d *dat.DAT, idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
	d.Value = append(d.Value, make([]int32, grow)...)
}

func (db *datBackend) String() string {
	return fmt.Sprintf("DAT(states=%d,sigma=%d,frozen=%v)", db.compiled.NStates(), db.compiled.Sigma, db.frozen)
}

func (db *datBackend) Stats() matcherStats {
	stats := matcherStats{
		Backend:    MatcherDAT,
		Keys:       db.keys,
		TotalSlots: db.compiled.NStates(),
	}
	if stats.TotalSlots == 0 {
		return stats
	}
	used := 0
	for i := range db.compiled.Check {
		if i == int(db.compiled.Root) || db.compiled.Check[i] != 0 {
			used++
		}
	}
	stats.UsedSlots = used
	return stats
}
