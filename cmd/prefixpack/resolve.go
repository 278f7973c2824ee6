package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/npillmayer/prefixdict"
	"github.com/npillmayer/prefixdict/dictfile"
)

func newResolveCmd(fs afero.Fs) *cobra.Command {
	var dictPath, filenames string
	cmd := &cobra.Command{
		Use:   "resolve REF...",
		Short: "Materialize id->filename references (or bare ids) into URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := filenamePolicy(filenames)
			if err != nil {
				return err
			}
			resolver, err := loadResolver(fs, dictPath, policy)
			if err != nil {
				return err
			}
			for _, arg := range args {
				u, err := resolveArg(resolver, arg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dictPath, "dict", "dist/"+prefixFile, "dictionary file")
	cmd.Flags().StringVar(&filenames, "filenames", "keep", "filename policy (keep|decode)")
	return cmd
}

func resolveArg(resolver *prefixdict.Resolver, arg string) (string, error) {
	if !strings.Contains(arg, prefixdict.ReferenceSeparator) {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return "", errors.Newf("not a reference or composition ID: %q", arg)
		}
		prefix, ok := resolver.Resolve(id)
		if !ok {
			return "", errors.Newf("unknown composition ID %d", id)
		}
		return prefix, nil
	}
	if _, ok := prefixdict.ParseReference(arg); !ok {
		return "", errors.Newf("malformed reference %q", arg)
	}
	return resolver.Materialize(arg)
}

func loadResolver(fs afero.Fs, path string, policy prefixdict.FilenamePolicy) (*prefixdict.Resolver, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	format := ""
	switch {
	case strings.HasSuffix(path, dictfile.Extension(dictfile.Gzip)):
		format = dictfile.Gzip
	case strings.HasSuffix(path, dictfile.Extension(dictfile.Zstd)):
		format = dictfile.Zstd
	}
	r, err := dictfile.OpenCompressed(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer r.Close()
	resolver, err := dictfile.Load(r, policy)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return resolver, nil
}
