/*
Package dictfile reads and writes the persisted prefix dictionary.

The file holds the atom table followed by the composition table:

	#TYPE:(A: Atom)(none: Prefix),#ID,#CONTENT
	A,1,https://
	A,2,/audio/
	1,1>cdn.example.com2>
	2,1>img.example.com/thumbs/

Atom content is raw text. Composition content is an expression as written by
prefixdict.EncodeExpression. The legacy level-1 table

	#PREFIX_ID,#PREFIX
	1,https://cdn.example.com/audio/

is read as a dictionary without atoms.
*/
package dictfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/npillmayer/prefixdict"
)

// Header is the first line of a hierarchical dictionary file.
const Header = "#TYPE:(A: Atom)(none: Prefix),#ID,#CONTENT"

// EntryKind distinguishes atom lines from composition lines.
type EntryKind int

const (
	AtomEntry EntryKind = iota
	CompositionEntry
)

// Entry is one table row of a dictionary file.
type Entry struct {
	Kind    EntryKind
	ID      int
	Content string
}

// Reader streams entries from a dictionary file.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(reader io.Reader) *Reader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next entry.
// It returns io.EOF when exhausted.
func (r *Reader) Next() (Entry, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := decodeLine(line)
		if err != nil {
			return Entry{}, errors.Wrapf(err, "line %d", r.line)
		}
		return entry, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Entry{}, err
	}
	return Entry{}, io.EOF
}

func decodeLine(line string) (Entry, error) {
	entry := Entry{Kind: CompositionEntry}
	if strings.HasPrefix(line, "A,") {
		entry.Kind = AtomEntry
		line = line[2:]
	}
	id, content, ok := strings.Cut(line, ",")
	if !ok {
		return Entry{}, errors.Newf("missing content separator in %q", line)
	}
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return Entry{}, errors.Newf("invalid ID %q", id)
	}
	entry.ID = n
	entry.Content = content
	if entry.Kind == AtomEntry && content == "" {
		return Entry{}, errors.Newf("atom %d has empty text", n)
	}
	return entry, nil
}

// Load reads a dictionary file and returns a Resolver over its tables.
func Load(reader io.Reader, policy prefixdict.FilenamePolicy) (*prefixdict.Resolver, error) {
	atoms := make(map[int]string)
	expressions := make(map[int]string)
	r := NewReader(reader)
	for {
		entry, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table, name := expressions, "composition"
		if entry.Kind == AtomEntry {
			table, name = atoms, "atom"
		}
		if _, dup := table[entry.ID]; dup {
			return nil, errors.Newf("duplicate %s ID %d", name, entry.ID)
		}
		table[entry.ID] = entry.Content
	}
	return prefixdict.NewResolver(atoms, expressions, policy), nil
}

// Write writes the atom and composition tables of dict. Lines are separated
// by '\n', without a trailing newline. Atom text is stored raw, so an atom
// containing a line break cannot be written.
func Write(w io.Writer, dict *prefixdict.Dictionary) error {
	for _, a := range dict.Atoms() {
		if strings.ContainsAny(a.Text, "\r\n") {
			return errors.Newf("atom %d contains a line break: %q", a.ID, a.Text)
		}
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(Header)
	for _, a := range dict.Atoms() {
		bw.WriteString("\nA," + strconv.Itoa(a.ID) + "," + a.Text)
	}
	for _, c := range dict.Compositions() {
		bw.WriteString("\n" + strconv.Itoa(c.ID) + "," + c.Expression())
	}
	return bw.Flush()
}

// Compression formats for precompressed dictionary files.
const (
	Gzip = "gzip"
	Zstd = "zstd"
)

// Extension returns the file name suffix for a compression format.
func Extension(format string) string {
	switch format {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	}
	return ""
}

// WriteCompressed writes dict like Write, compressed with format.
func WriteCompressed(w io.Writer, dict *prefixdict.Dictionary, format string) error {
	var zw io.WriteCloser
	switch format {
	case Gzip:
		gw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return err
		}
		zw = gw
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return err
		}
		zw = enc
	default:
		return errors.Newf("unknown compression format %q", format)
	}
	if err := Write(zw, dict); err != nil {
		zw.Close()
		return errors.Wrapf(err, "writing %s dictionary", format)
	}
	return zw.Close()
}

// OpenCompressed wraps reader to decompress format. An empty format returns
// reader unchanged. The caller must close the result; closing does not close
// reader.
func OpenCompressed(reader io.Reader, format string) (io.ReadCloser, error) {
	switch format {
	case "":
		return io.NopCloser(reader), nil
	case Gzip:
		gr, err := gzip.NewReader(reader)
		if err != nil {
			return nil, err
		}
		return gr, nil
	case Zstd:
		dec, err := zstd.NewReader(reader)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	}
	return nil, errors.Newf("unknown compression format %q", format)
}
