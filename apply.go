package prefixdict

import (
	"strconv"
	"strings"
)

// ReferenceSeparator separates composition ID and filename in a dataset
// entry.
const ReferenceSeparator = "->"

// Reference is a compressed resource-URL entry.
type Reference struct {
	CompositionID int
	Filename      string
}

func (ref Reference) String() string {
	return strconv.Itoa(ref.CompositionID) + ReferenceSeparator + ref.Filename
}

// ParseReference parses an entry of the form "<id>-><filename>".
func ParseReference(entry string) (Reference, bool) {
	i := strings.Index(entry, ReferenceSeparator)
	if i <= 0 {
		return Reference{}, false
	}
	id, err := strconv.Atoi(entry[:i])
	if err != nil || id <= 0 {
		return Reference{}, false
	}
	return Reference{CompositionID: id, Filename: entry[i+len(ReferenceSeparator):]}, true
}

// ApplyEntry rewrites one resource-URL entry to a reference. The query
// string is dropped and the filename is kept exactly as found. Entries whose
// prefix has no composition stay unchanged.
func (dict *Dictionary) ApplyEntry(entry string) string {
	clean := StripQuery(entry)
	if clean == "" {
		return entry
	}
	prefix, filename, ok := SplitURL(clean)
	if !ok {
		return entry
	}
	id, ok := dict.prefixIDs[prefix]
	if !ok {
		tracer().Debugf("no composition for prefix %q, keeping %q", prefix, entry)
		return entry
	}
	return Reference{CompositionID: id, Filename: filename}.String()
}

// ApplyField rewrites every entry of a multi-valued field whose entries are
// separated by sep, and joins them again with sep.
func (dict *Dictionary) ApplyField(field string, sep string) string {
	if field == "" {
		return field
	}
	entries := strings.Split(field, sep)
	for i, entry := range entries {
		entries[i] = dict.ApplyEntry(entry)
	}
	return strings.Join(entries, sep)
}
