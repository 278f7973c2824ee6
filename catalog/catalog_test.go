package catalog

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/prefixdict"
)

const tracks = `id,title,circle,cv,tags,date,price,thumbnail,images,audios
1,One,c1,v1,t,2024,100,https://cdn1.example.com/img/1.jpg,"https://cdn1.example.com/img/1a.jpg,https://cdn1.example.com/img/1b.jpg",https://m.example.org/audio/1.mp3?x=1
2,Two,c2,v2,t,2024,200,https://cdn2.example.com/img/2.jpg,,https://m.example.org/audio/2.mp3
3,Three,c3,v3,t,2024,300,,https://cdn1.example.com/img/3a.jpg
`

func readTracks(t *testing.T) *Table {
	table, err := ReadTable(strings.NewReader(tracks))
	require.NoError(t, err)
	return table
}

func TestReadTable(t *testing.T) {
	table := readTracks(t)
	assert.Equal(t, "thumbnail", table.Header[7])
	require.Len(t, table.Rows, 3)
	assert.Len(t, table.Rows[2], 9)

	empty, err := ReadTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Rows)
}

func TestURLReader(t *testing.T) {
	r := NewURLReader(readTracks(t), DefaultColumns)
	var got []string
	for {
		u, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, u)
	}
	assert.Equal(t, []string{
		"https://cdn1.example.com/img/1.jpg",
		"https://cdn1.example.com/img/1a.jpg",
		"https://cdn1.example.com/img/1b.jpg",
		"https://m.example.org/audio/1.mp3?x=1",
		"https://cdn2.example.com/img/2.jpg",
		"https://m.example.org/audio/2.mp3",
		"https://cdn1.example.com/img/3a.jpg",
	}, got)
}

func TestCompileRewritesColumns(t *testing.T) {
	table := readTracks(t)
	dict, err := Compile("tracks", table, DefaultColumns)
	require.NoError(t, err)

	first, ok := dict.CompositionID("https://cdn1.example.com/img/")
	require.True(t, ok)
	assert.Equal(t, 1, first)
	assert.Equal(t, "1->1.jpg", table.Rows[0][7])
	assert.Equal(t, "1->1a.jpg,1->1b.jpg", table.Rows[0][8])
	assert.Equal(t, "", table.Rows[1][8])
	assert.Equal(t, "One", table.Rows[0][1])

	r := dict.Resolver()
	audio, err := r.Materialize(table.Rows[0][9])
	require.NoError(t, err)
	assert.Equal(t, "https://m.example.org/audio/1.mp3", audio)
}

func TestWriteTable(t *testing.T) {
	table := readTracks(t)
	_, err := Compile("tracks", table, DefaultColumns)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, table))
	again, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, table, again)
}

func TestCustomSeparator(t *testing.T) {
	table := &Table{Rows: [][]string{{"https://a.org/x/1.png|https://a.org/x/2.png"}}}
	columns := []Column{{Name: "media", Index: 0, Separator: "|"}}
	dict, err := Compile("pipes", table, columns, prefixdict.WithMatcher(prefixdict.MatcherTrie))
	require.NoError(t, err)
	assert.Equal(t, "1->1.png|1->2.png", table.Rows[0][0])
	assert.Len(t, dict.Prefixes(), 1)
}
