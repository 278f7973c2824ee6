// Package catalog rewrites the resource-URL columns of a CSV track table
// against a prefix dictionary.
package catalog

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/npillmayer/prefixdict"
)

// Column describes one resource-URL column of a track table.
type Column struct {
	Name      string `yaml:"name"`
	Index     int    `yaml:"index"`
	Separator string `yaml:"separator"`
}

func (c Column) sep() string {
	if c.Separator == "" {
		return ","
	}
	return c.Separator
}

// DefaultColumns is the resource layout of the track export: thumbnail,
// images and audios.
var DefaultColumns = []Column{
	{Name: "thumbnail", Index: 7, Separator: ","},
	{Name: "images", Index: 8, Separator: ","},
	{Name: "audios", Index: 9, Separator: ","},
}

// Table is a track table: a header row and data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads a CSV track table. The first record is the header.
func ReadTable(reader io.Reader) (*Table, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading track table")
	}
	t := &Table{}
	if len(records) == 0 {
		return t, nil
	}
	t.Header, t.Rows = records[0], records[1:]
	return t, nil
}

// WriteTable writes t as CSV.
func WriteTable(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if t.Header != nil {
		if err := cw.Write(t.Header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return errors.Wrap(err, "writing track table")
	}
	return nil
}

// URLReader streams every resource-URL entry of a table's columns, row by
// row. It implements prefixdict.URLReader.
type URLReader struct {
	table   *Table
	columns []Column
	row     int
	col     int
	pending []string
}

func NewURLReader(table *Table, columns []Column) *URLReader {
	return &URLReader{table: table, columns: columns}
}

// Next returns the next URL entry.
// It returns io.EOF when exhausted.
func (r *URLReader) Next() (string, error) {
	for len(r.pending) == 0 {
		if r.row >= len(r.table.Rows) {
			return "", io.EOF
		}
		if r.col >= len(r.columns) {
			r.row++
			r.col = 0
			continue
		}
		column := r.columns[r.col]
		r.col++
		row := r.table.Rows[r.row]
		if column.Index < 0 || column.Index >= len(row) || row[column.Index] == "" {
			continue
		}
		r.pending = strings.Split(row[column.Index], column.sep())
	}
	url := r.pending[0]
	r.pending = r.pending[1:]
	return url, nil
}

// Rewrite replaces every resource-URL entry in the table's columns by a
// reference into dict.
func (t *Table) Rewrite(dict *prefixdict.Dictionary, columns []Column) {
	for _, row := range t.Rows {
		for _, column := range columns {
			if column.Index < 0 || column.Index >= len(row) {
				continue
			}
			row[column.Index] = dict.ApplyField(row[column.Index], column.sep())
		}
	}
}

// Compile builds a dictionary from the resource columns of table and
// rewrites the table to reference it.
func Compile(name string, table *Table, columns []Column, opts ...prefixdict.Option) (*prefixdict.Dictionary, error) {
	dict, err := prefixdict.Compile(name, NewURLReader(table, columns), opts...)
	if err != nil {
		return nil, err
	}
	table.Rewrite(dict, columns)
	return dict, nil
}
