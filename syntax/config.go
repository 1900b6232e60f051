package syntax

// Config controls pattern compilation.
//
// Example:
//
//	cfg := syntax.DefaultConfig()
//	cfg.RepeatLimit = 5 // '*' now means {0,5}
//	root, err := syntax.Compile(`[a-z]+`, cfg)
type Config struct {
	// RepeatLimit bounds the open-ended quantifiers so output stays finite:
	// '*' becomes {0,RepeatLimit}, '+' becomes {1,RepeatLimit} and
	// {m,} becomes {m,m+RepeatLimit}.
	// Default: 10
	RepeatLimit uint32

	// MaxRepeat is the largest count accepted inside {m} and {m,n}.
	// Default: 1000
	MaxRepeat uint32

	// MaxNestingDepth limits nested groups and alternations.
	// Default: 100
	MaxNestingDepth int

	// MaxClassSize limits the number of members in one character class.
	// Default: 4096
	MaxClassSize int
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{
		RepeatLimit:     10,
		MaxRepeat:       1000,
		MaxNestingDepth: 100,
		MaxClassSize:    4096,
	}
}

// withDefaults fills zero fields so a partially initialised Config is usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RepeatLimit == 0 {
		c.RepeatLimit = d.RepeatLimit
	}
	if c.MaxRepeat == 0 {
		c.MaxRepeat = d.MaxRepeat
	}
	if c.MaxNestingDepth == 0 {
		c.MaxNestingDepth = d.MaxNestingDepth
	}
	if c.MaxClassSize == 0 {
		c.MaxClassSize = d.MaxClassSize
	}
	return c
}
