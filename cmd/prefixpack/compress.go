package main

import (
	"io"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/npillmayer/prefixdict"
	"github.com/npillmayer/prefixdict/catalog"
	"github.com/npillmayer/prefixdict/dictfile"
)

const (
	prefixFile = "prefix.csv"
	tracksFile = "tracks.csv"
)

func newCompressCmd(fs afero.Fs) *cobra.Command {
	var configPath, in, out, matcher, precompress string
	var mining miningFlags
	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Build prefix.csv and a rewritten tracks.csv from a track table",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(fs, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("matcher") {
				c.Matcher = matcher
			}
			if cmd.Flags().Changed("precompress") {
				c.Precompress = precompress
			}
			mining.apply(cmd.Flags(), c)
			if err := c.validate(); err != nil {
				return err
			}
			dict, err := compress(fs, c, in, out)
			if err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), dict.Stats())
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML build configuration")
	cmd.Flags().StringVar(&in, "in", "", "input track table (CSV)")
	cmd.Flags().StringVar(&out, "out", "dist", "output directory")
	cmd.Flags().StringVar(&matcher, "matcher", prefixdict.MatcherDAT, "atom matcher backend (dat|trie)")
	cmd.Flags().StringVar(&precompress, "precompress", "", "also write a compressed dictionary (gzip|zstd)")
	mining.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// miningFlags override the mining section of the build configuration.
type miningFlags struct {
	weighted     bool
	overhead     int
	minPathCount int
	maxPathDepth int
}

func (m *miningFlags) register(flags *pflag.FlagSet) {
	flags.BoolVar(&m.weighted, "weighted", false, "weight pattern tallies by prefix frequency")
	flags.IntVar(&m.overhead, "overhead", prefixdict.Overhead, "bytes an atom table entry costs")
	flags.IntVar(&m.minPathCount, "min-path-count", 0, "minimum tally of a path atom")
	flags.IntVar(&m.maxPathDepth, "max-path-depth", 0, "deepest path prefix mined")
}

// apply copies flags set on the command line into c.
func (m *miningFlags) apply(flags *pflag.FlagSet, c *config) {
	if flags.Changed("weighted") {
		c.Mining.Weighted = m.weighted
	}
	if flags.Changed("overhead") {
		c.Mining.Overhead = m.overhead
	}
	if flags.Changed("min-path-count") {
		c.Mining.MinPathCount = m.minPathCount
	}
	if flags.Changed("max-path-depth") {
		c.Mining.MaxPathDepth = m.maxPathDepth
	}
}

func compress(fs afero.Fs, c *config, in, out string) (*prefixdict.Dictionary, error) {
	f, err := fs.Open(in)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", in)
	}
	table, err := catalog.ReadTable(f)
	f.Close()
	if err != nil {
		return nil, err
	}
	dict, err := catalog.Compile(c.Name, table, c.Columns, c.options()...)
	if err != nil {
		return nil, err
	}
	if err := fs.MkdirAll(out, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", out)
	}
	err = writeFile(fs, filepath.Join(out, prefixFile), func(w io.Writer) error {
		return dictfile.Write(w, dict)
	})
	if err != nil {
		return nil, err
	}
	if c.Precompress != "" {
		path := filepath.Join(out, prefixFile+dictfile.Extension(c.Precompress))
		err = writeFile(fs, path, func(w io.Writer) error {
			return dictfile.WriteCompressed(w, dict, c.Precompress)
		})
		if err != nil {
			return nil, err
		}
	}
	err = writeFile(fs, filepath.Join(out, tracksFile), func(w io.Writer) error {
		return catalog.WriteTable(w, table)
	})
	return dict, err
}

func writeFile(fs afero.Fs, path string, write func(io.Writer) error) error {
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
