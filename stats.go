package prefixdict

// referenceOverhead estimates the bytes a stored reference adds on top of
// its filename, e.g. `123->` plus the field separator.
const referenceOverhead = 8

// Stats compares the dataset size before compression, with a level-1
// prefix table, and with the hierarchical dictionary.
type Stats struct {
	URLs              int // distinct URLs
	Occurrences       int
	Prefixes          int
	Atoms             int
	OriginalBytes     int
	Level1Bytes       int
	HierarchicalBytes int
}

// Saving returns the relative saving of size against base, in percent.
func Saving(base, size int) float64 {
	if base == 0 {
		return 0
	}
	return float64(base-size) / float64(base) * 100
}

// Stats estimates the byte sizes of the three encodings.
func (dict *Dictionary) Stats() Stats {
	stats := Stats{
		URLs:     len(dict.urls),
		Prefixes: len(dict.compositions),
		Atoms:    len(dict.atoms.atoms),
	}
	references := 0
	for _, u := range dict.urls {
		stats.Occurrences += u.Count
		stats.OriginalBytes += len(u.Text) * u.Count
		_, filename, _ := SplitURL(u.Text)
		references += (len(filename) + referenceOverhead) * u.Count
	}
	stats.Level1Bytes = references
	stats.HierarchicalBytes = references
	for _, c := range dict.compositions {
		stats.Level1Bytes += len(c.Prefix) + Overhead
		stats.HierarchicalBytes += len(c.Expression()) + Overhead
	}
	for _, a := range dict.atoms.atoms {
		stats.HierarchicalBytes += len(a.Text) + Overhead
	}
	return stats
}
