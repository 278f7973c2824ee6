package dictfile

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/prefixdict"
)

var urls = []string{
	"http://a.example.com:8080/media/x/1.png",
	"http://a.example.com:8080/media/x/2.png",
	"http://a.example.com:8080/media/y/1.png",
	"http://a.example.com:8080/media/y/2.png",
	"http://a.example.com:8080/media/z/1.png",
	"http://a.example.com:8080/media/z/2%20b.png",
}

func compile(t *testing.T) *prefixdict.Dictionary {
	dict, err := prefixdict.CompileList("dictfile", urls)
	require.NoError(t, err)
	return dict
}

func TestWriteLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, compile(t)))
	want := Header +
		"\nA,1,a.example.com" +
		"\nA,2,http://" +
		"\nA,3,/media/" +
		"\n1,2>1>:\\8\\0\\8\\03>x/" +
		"\n2,2>1>:\\8\\0\\8\\03>y/" +
		"\n3,2>1>:\\8\\0\\8\\03>z/"
	assert.Equal(t, want, buf.String())
}

func TestWriteLoadRoundTrip(t *testing.T) {
	dict := compile(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, dict))
	resolver, err := Load(&buf, prefixdict.KeepEncoded)
	require.NoError(t, err)
	assert.Equal(t, len(dict.Compositions()), resolver.Len())
	for _, p := range dict.Prefixes() {
		got, ok := resolver.Resolve(p.CompositionID)
		require.True(t, ok)
		assert.Equal(t, p.Text, got)
	}
	u, err := resolver.Materialize(dict.ApplyEntry(urls[5]))
	require.NoError(t, err)
	assert.Equal(t, urls[5], u)
}

func TestLoadDecodePolicy(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, compile(t)))
	resolver, err := Load(&buf, prefixdict.DecodeOnMaterialize)
	require.NoError(t, err)
	u, err := resolver.Materialize("3->2%20b.png")
	require.NoError(t, err)
	assert.Equal(t, "http://a.example.com:8080/media/z/2 b.png", u)
}

func TestLoadLegacyTable(t *testing.T) {
	legacy := "#PREFIX_ID,#PREFIX\r\n1,https://cdn.example.com/audio/\r\n2,https://img.example.com/thumbs/\r\n"
	resolver, err := Load(strings.NewReader(legacy), prefixdict.KeepEncoded)
	require.NoError(t, err)
	u, err := resolver.Materialize("2->t.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/thumbs/t.jpg", u)
}

func TestReaderEntries(t *testing.T) {
	r := NewReader(strings.NewReader(Header + "\n\nA,1,https://\n1,1>a.org/\n"))
	var entries []Entry
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		entries = append(entries, e)
	}
	assert.Equal(t, []Entry{
		{Kind: AtomEntry, ID: 1, Content: "https://"},
		{Kind: CompositionEntry, ID: 1, Content: "1>a.org/"},
	}, entries)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, input, msg string
	}{
		{"missing separator", Header + "\n17", "line 2"},
		{"bad id", Header + "\nx,https://a.org/", "invalid ID"},
		{"zero id", Header + "\nA,0,https://", "invalid ID"},
		{"empty atom", Header + "\nA,3,", "empty text"},
		{"duplicate atom", Header + "\nA,1,a\nA,1,b", "duplicate atom ID 1"},
		{"duplicate composition", Header + "\n1,a/\n1,b/", "duplicate composition ID 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), prefixdict.KeepEncoded)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	dict := compile(t)
	var plain bytes.Buffer
	require.NoError(t, Write(&plain, dict))
	for _, format := range []string{Gzip, Zstd} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteCompressed(&buf, dict, format))
			r, err := OpenCompressed(&buf, format)
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, plain.String(), string(data))
			assert.NoError(t, r.Close())
			assert.NotEmpty(t, Extension(format))
		})
	}
	assert.Error(t, WriteCompressed(io.Discard, dict, "brotli"))
	_, err := OpenCompressed(&plain, "brotli")
	assert.Error(t, err)
}

func TestWriteEmptyDictionary(t *testing.T) {
	dict, err := prefixdict.CompileList("empty", nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, dict))
	assert.Equal(t, Header, buf.String())
	resolver, err := Load(&buf, prefixdict.KeepEncoded)
	require.NoError(t, err)
	assert.Zero(t, resolver.Len())
}

func TestOpenUncompressedCloses(t *testing.T) {
	r, err := OpenCompressed(strings.NewReader(Header), "")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, Header, string(data))
	assert.NoError(t, r.Close())
}

func TestLineBreaksInPrefixesRoundTrip(t *testing.T) {
	broken := []string{
		"https://a.example.com/x\ny/1.png",
		"https://a.example.com/x\ny/2.png",
		"https://a.example.com/x\r\nz/1.png",
		"https://a.example.com/plain/1.png",
	}
	dict, err := prefixdict.CompileList("breaks", broken)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, dict))
	assert.Equal(t, 1+len(dict.Atoms())+len(dict.Compositions()),
		strings.Count(buf.String(), "\n")+1, "every table row must be one line")

	resolver, err := Load(&buf, prefixdict.KeepEncoded)
	require.NoError(t, err)
	for _, u := range broken {
		got, err := resolver.Materialize(dict.ApplyEntry(u))
		require.NoError(t, err)
		assert.Equal(t, u, got)
	}
}

func TestWriteRejectsAtomWithLineBreak(t *testing.T) {
	dict, err := prefixdict.CompileList("breaks", []string{
		"x\ny://a/1.png",
		"x\ny://b/1.png",
	}, prefixdict.WithProtocols("x\ny://"), prefixdict.WithOverhead(0))
	require.NoError(t, err)
	require.NotEmpty(t, dict.Atoms())
	err = Write(io.Discard, dict)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line break")
}
