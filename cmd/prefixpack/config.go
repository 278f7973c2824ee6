package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/npillmayer/prefixdict"
	"github.com/npillmayer/prefixdict/catalog"
	"github.com/npillmayer/prefixdict/dictfile"
)

// config is the YAML build configuration of the compress command.
type config struct {
	Name        string           `yaml:"name"`
	Columns     []catalog.Column `yaml:"columns"`
	Matcher     string           `yaml:"matcher"`
	Filenames   string           `yaml:"filenames"`
	Precompress string           `yaml:"precompress"`
	Mining      struct {
		Overhead         int      `yaml:"overhead"`
		Weighted         bool     `yaml:"weighted"`
		Protocols        []string `yaml:"protocols"`
		MinProtocolCount int      `yaml:"min_protocol_count"`
		MinDomainCount   int      `yaml:"min_domain_count"`
		MinPathCount     int      `yaml:"min_path_count"`
		MinPathLength    int      `yaml:"min_path_length"`
		MaxPathDepth     int      `yaml:"max_path_depth"`
	} `yaml:"mining"`
}

func defaultConfig() *config {
	return &config{
		Name:    "tracks",
		Columns: catalog.DefaultColumns,
		Matcher: prefixdict.MatcherDAT,
	}
}

func loadConfig(fs afero.Fs, path string) (*config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if len(c.Columns) == 0 {
		c.Columns = catalog.DefaultColumns
	}
	return c, c.validate()
}

func (c *config) validate() error {
	switch c.Matcher {
	case "", prefixdict.MatcherDAT, prefixdict.MatcherTrie:
	default:
		return errors.Newf("unknown matcher %q", c.Matcher)
	}
	if _, err := filenamePolicy(c.Filenames); err != nil {
		return err
	}
	for _, protocol := range c.Mining.Protocols {
		if protocol == "" || strings.ContainsAny(protocol, "\r\n") {
			return errors.Newf("invalid protocol %q", protocol)
		}
	}
	switch c.Precompress {
	case "", dictfile.Gzip, dictfile.Zstd:
	default:
		return errors.Newf("unknown precompression %q", c.Precompress)
	}
	return nil
}

func filenamePolicy(name string) (prefixdict.FilenamePolicy, error) {
	switch name {
	case "", "keep":
		return prefixdict.KeepEncoded, nil
	case "decode":
		return prefixdict.DecodeOnMaterialize, nil
	}
	return 0, errors.Newf("unknown filename policy %q", name)
}

// options translates the configuration into build options.
func (c *config) options() []prefixdict.Option {
	policy, _ := filenamePolicy(c.Filenames)
	opts := []prefixdict.Option{
		prefixdict.WithMatcher(c.Matcher),
		prefixdict.WithFilenamePolicy(policy),
	}
	if c.Mining.Overhead > 0 {
		opts = append(opts, prefixdict.WithOverhead(c.Mining.Overhead))
	}
	if c.Mining.Weighted {
		opts = append(opts, prefixdict.WithFrequencyWeighting())
	}
	if len(c.Mining.Protocols) > 0 {
		opts = append(opts, prefixdict.WithProtocols(c.Mining.Protocols...))
	}
	if c.Mining.MinProtocolCount > 0 {
		opts = append(opts, prefixdict.WithMinProtocolCount(c.Mining.MinProtocolCount))
	}
	if c.Mining.MinDomainCount > 0 {
		opts = append(opts, prefixdict.WithMinDomainCount(c.Mining.MinDomainCount))
	}
	if c.Mining.MinPathCount > 0 {
		opts = append(opts, prefixdict.WithMinPathCount(c.Mining.MinPathCount))
	}
	if c.Mining.MinPathLength > 0 {
		opts = append(opts, prefixdict.WithMinPathLength(c.Mining.MinPathLength))
	}
	if c.Mining.MaxPathDepth > 0 {
		opts = append(opts, prefixdict.WithMaxPathDepth(c.Mining.MaxPathDepth))
	}
	return opts
}
