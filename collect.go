package prefixdict

import (
	"io"
	"sort"
	"strings"
)

// RawURL is a distinct resource URL together with the number of times it
// occurs across the whole dataset.
type RawURL struct {
	Text  string
	Count int
}

// PrefixRecord is a level-1 prefix: the text of a URL up to and including
// its final '/'. Frequency sums the counts of all URLs sharing the prefix.
// CompositionID is 0 until the prefix has been placed into a dictionary.
type PrefixRecord struct {
	Text          string
	Frequency     int
	CompositionID int
}

// URLReader yields resource-URL occurrences one-by-one.
// It should return io.EOF when the stream is exhausted.
type URLReader interface {
	Next() (url string, err error)
}

// SliceReader is a URLReader over an in-memory list of URL occurrences.
type SliceReader struct {
	urls  []string
	index int
}

// NewSliceReader returns a URLReader yielding urls in order.
func NewSliceReader(urls []string) *SliceReader {
	return &SliceReader{urls: urls}
}

// Next returns the next URL occurrence or io.EOF.
func (r *SliceReader) Next() (string, error) {
	if r.index >= len(r.urls) {
		return "", io.EOF
	}
	url := r.urls[r.index]
	r.index++
	return url, nil
}

// StripQuery returns entry without surrounding whitespace and without
// everything from the first '?' on.
func StripQuery(entry string) string {
	if i := strings.IndexByte(entry, '?'); i >= 0 {
		entry = entry[:i]
	}
	return strings.TrimSpace(entry)
}

// SplitURL cuts url after its final '/'. ok is false if url has no '/'.
func SplitURL(url string) (prefix, filename string, ok bool) {
	i := strings.LastIndexByte(url, '/')
	if i < 0 {
		return "", url, false
	}
	return url[:i+1], url[i+1:], true
}

// CountURLs tallies URL occurrences. Query strings are stripped and empty
// entries are ignored. The result is in canonical collection order, i.e.
// sorted by URL text, independent of the order of urls.
func CountURLs(urls []string) []RawURL {
	raw, _ := collectURLs(NewSliceReader(urls))
	return raw
}

func collectURLs(reader URLReader) ([]RawURL, error) {
	counts := make(map[string]int)
	for {
		url, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		url = StripQuery(url)
		if url == "" {
			continue
		}
		counts[url]++
	}
	raw := make([]RawURL, 0, len(counts))
	for text, count := range counts {
		raw = append(raw, RawURL{Text: text, Count: count})
	}
	sort.Slice(raw, func(i, j int) bool {
		return raw[i].Text < raw[j].Text
	})
	return raw, nil
}

// SplitPrefixes aggregates the level-1 prefixes of raw. Records appear in the
// order their prefix is first seen in raw; URLs without a '/' are skipped.
func SplitPrefixes(raw []RawURL) []PrefixRecord {
	index := make(map[string]int)
	records := make([]PrefixRecord, 0, len(raw)/2+1)
	for _, u := range raw {
		prefix, _, ok := SplitURL(u.Text)
		if !ok {
			continue
		}
		if i, found := index[prefix]; found {
			records[i].Frequency += u.Count
			continue
		}
		index[prefix] = len(records)
		records = append(records, PrefixRecord{Text: prefix, Frequency: u.Count})
	}
	return records
}
