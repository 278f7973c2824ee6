package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/npillmayer/prefixdict"
	"github.com/npillmayer/prefixdict/dictfile"
)

func newInspectCmd(fs afero.Fs) *cobra.Command {
	var dictPath string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the atom and composition tables of a dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fs.Open(dictPath)
			if err != nil {
				return errors.Wrapf(err, "opening %s", dictPath)
			}
			defer f.Close()
			return inspect(cmd.OutOrStdout(), dictfile.NewReader(f))
		},
	}
	cmd.Flags().StringVar(&dictPath, "dict", "dist/"+prefixFile, "dictionary file")
	return cmd
}

func inspect(w io.Writer, r *dictfile.Reader) error {
	atoms := tablewriter.NewWriter(w)
	atoms.SetAutoFormatHeaders(false)
	atoms.SetAutoWrapText(false)
	atoms.SetHeader([]string{"atom", "text"})
	comps := tablewriter.NewWriter(w)
	comps.SetAutoFormatHeaders(false)
	comps.SetAutoWrapText(false)
	comps.SetHeader([]string{"composition", "expression"})
	nAtoms, nComps := 0, 0
	for {
		entry, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		row := []string{strconv.Itoa(entry.ID), entry.Content}
		if entry.Kind == dictfile.AtomEntry {
			atoms.Append(row)
			nAtoms++
		} else {
			comps.Append(row)
			nComps++
		}
	}
	atoms.Render()
	fmt.Fprintf(w, "(%s atoms)\n", humanize.Comma(int64(nAtoms)))
	comps.Render()
	fmt.Fprintf(w, "(%s compositions)\n", humanize.Comma(int64(nComps)))
	return nil
}

func printStats(w io.Writer, stats prefixdict.Stats) error {
	fmt.Fprintf(w, "%s unique URLs (%s occurrences), %s prefixes, %s atoms\n",
		humanize.Comma(int64(stats.URLs)), humanize.Comma(int64(stats.Occurrences)),
		humanize.Comma(int64(stats.Prefixes)), humanize.Comma(int64(stats.Atoms)))
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"encoding", "size", "saving"})
	table.Append([]string{"original", humanize.Bytes(uint64(stats.OriginalBytes)), "-"})
	table.Append([]string{"level-1", humanize.Bytes(uint64(stats.Level1Bytes)),
		fmt.Sprintf("%.2f%%", prefixdict.Saving(stats.OriginalBytes, stats.Level1Bytes))})
	table.Append([]string{"hierarchical", humanize.Bytes(uint64(stats.HierarchicalBytes)),
		fmt.Sprintf("%.2f%%", prefixdict.Saving(stats.OriginalBytes, stats.HierarchicalBytes))})
	table.Render()
	fmt.Fprintf(w, "hierarchical vs level-1: %.2f%%\n", prefixdict.Saving(stats.Level1Bytes, stats.HierarchicalBytes))
	return nil
}
