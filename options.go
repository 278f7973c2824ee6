package prefixdict

// Overhead is the estimated cost in bytes of one dictionary table row. It is
// subtracted from every candidate's savings.
const Overhead = 10

// Matcher backends for longest-atom lookup.
const (
	MatcherDAT  = "dat"
	MatcherTrie = "trie"
)

// FilenamePolicy decides how stored filenames are treated when a final URL
// is materialized. Filenames are always stored exactly as found in the
// dataset; decoding, if any, happens exactly once in the Resolver.
type FilenamePolicy int

const (
	KeepEncoded         FilenamePolicy = iota // materialized URLs keep filenames as stored
	DecodeOnMaterialize                       // percent-decode the filename once when materializing
)

func (p FilenamePolicy) String() string {
	switch p {
	case KeepEncoded:
		return "keep"
	case DecodeOnMaterialize:
		return "decode"
	}
	return "unknown"
}

// Config holds the pattern mining thresholds and build options.
type Config struct {
	Overhead         int
	Protocols        []string
	MinProtocolCount int
	MinDomainCount   int
	MinPathCount     int
	MinPathLength    int
	MaxPathDepth     int
	Weighted         bool // tally by prefix frequency instead of prefix membership
	Matcher          string
	Filenames        FilenamePolicy
}

// DefaultConfig returns the thresholds used by the catalog build.
func DefaultConfig() *Config {
	return &Config{
		Overhead:         Overhead,
		Protocols:        []string{"http://", "https://", "ftp://"},
		MinProtocolCount: 2,
		MinDomainCount:   2,
		MinPathCount:     3,
		MinPathLength:    5,
		MaxPathDepth:     3,
		Matcher:          MatcherDAT,
		Filenames:        KeepEncoded,
	}
}

type Option func(*Config)

func WithOverhead(bytes int) Option {
	return func(c *Config) {
		c.Overhead = bytes
	}
}

func WithProtocols(protocols ...string) Option {
	return func(c *Config) {
		c.Protocols = append([]string(nil), protocols...)
	}
}

func WithMinProtocolCount(min int) Option {
	return func(c *Config) {
		c.MinProtocolCount = min
	}
}

func WithMinDomainCount(min int) Option {
	return func(c *Config) {
		c.MinDomainCount = min
	}
}

func WithMinPathCount(min int) Option {
	return func(c *Config) {
		c.MinPathCount = min
	}
}

func WithMinPathLength(min int) Option {
	return func(c *Config) {
		c.MinPathLength = min
	}
}

func WithMaxPathDepth(depth int) Option {
	return func(c *Config) {
		c.MaxPathDepth = depth
	}
}

// WithFrequencyWeighting makes every prefix contribute its aggregate
// frequency to a candidate's tally instead of 1.
func WithFrequencyWeighting() Option {
	return func(c *Config) {
		c.Weighted = true
	}
}

// WithMatcher selects the longest-match backend, MatcherDAT or MatcherTrie.
func WithMatcher(backend string) Option {
	return func(c *Config) {
		c.Matcher = backend
	}
}

func WithFilenamePolicy(policy FilenamePolicy) Option {
	return func(c *Config) {
		c.Filenames = policy
	}
}

func newConfig(opts []Option) *Config {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}
