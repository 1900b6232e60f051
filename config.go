package coregen

import "github.com/coregx/coregen/syntax"

// Config controls pattern compilation and the default output cap.
//
// Example:
//
//	config := coregen.DefaultConfig()
//	config.RepeatLimit = 4 // '*' now means {0,4}
//	p, err := coregen.CompileWithConfig(`[a-z]+`, config)
type Config struct {
	// RepeatLimit bounds the open-ended quantifiers '*', '+' and {m,}.
	// Default: 10
	RepeatLimit uint32

	// MaxRepeat is the largest count accepted inside {m} and {m,n}.
	// Default: 1000
	MaxRepeat uint32

	// MaxNestingDepth limits nested groups and alternations.
	// Default: 100
	MaxNestingDepth int

	// MaxClassSize limits the members of one character class.
	// Default: 4096
	MaxClassSize int

	// MaxLength is the output cap, in bytes, used by Pattern.Generate.
	// Default: 255
	MaxLength int
}

// DefaultConfig returns a configuration with the documented defaults.
func DefaultConfig() Config {
	sc := syntax.DefaultConfig()
	return Config{
		RepeatLimit:     sc.RepeatLimit,
		MaxRepeat:       sc.MaxRepeat,
		MaxNestingDepth: sc.MaxNestingDepth,
		MaxClassSize:    sc.MaxClassSize,
		MaxLength:       255,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - RepeatLimit: 1 to MaxRepeat
//   - MaxRepeat: 1 to 100,000
//   - MaxNestingDepth: 1 to 1,000
//   - MaxClassSize: 1 to 1,114,112
//   - MaxLength: 0 to 1 << 20
func (c Config) Validate() error {
	if c.MaxRepeat < 1 || c.MaxRepeat > 100_000 {
		return &ConfigError{Field: "MaxRepeat", Message: "must be between 1 and 100,000"}
	}
	if c.RepeatLimit < 1 || c.RepeatLimit > c.MaxRepeat {
		return &ConfigError{Field: "RepeatLimit", Message: "must be between 1 and MaxRepeat"}
	}
	if c.MaxNestingDepth < 1 || c.MaxNestingDepth > 1_000 {
		return &ConfigError{Field: "MaxNestingDepth", Message: "must be between 1 and 1,000"}
	}
	if c.MaxClassSize < 1 || c.MaxClassSize > 0x110000 {
		return &ConfigError{Field: "MaxClassSize", Message: "must be between 1 and 1,114,112"}
	}
	if c.MaxLength < 0 || c.MaxLength > 1<<20 {
		return &ConfigError{Field: "MaxLength", Message: "must be between 0 and 1,048,576"}
	}
	return nil
}

// WithRepeatLimit returns a copy with RepeatLimit set.
func (c Config) WithRepeatLimit(limit uint32) Config {
	c.RepeatLimit = limit
	return c
}

// WithMaxRepeat returns a copy with MaxRepeat set.
func (c Config) WithMaxRepeat(limit uint32) Config {
	c.MaxRepeat = limit
	return c
}

// WithMaxNestingDepth returns a copy with MaxNestingDepth set.
func (c Config) WithMaxNestingDepth(depth int) Config {
	c.MaxNestingDepth = depth
	return c
}

// WithMaxClassSize returns a copy with MaxClassSize set.
func (c Config) WithMaxClassSize(size int) Config {
	c.MaxClassSize = size
	return c
}

// WithMaxLength returns a copy with MaxLength set.
func (c Config) WithMaxLength(n int) Config {
	c.MaxLength = n
	return c
}

// Syntax returns the compiler settings of c.
func (c Config) Syntax() syntax.Config {
	return syntax.Config{
		RepeatLimit:     c.RepeatLimit,
		MaxRepeat:       c.MaxRepeat,
		MaxNestingDepth: c.MaxNestingDepth,
		MaxClassSize:    c.MaxClassSize,
	}
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "coregen: invalid config: " + e.Field + ": " + e.Message
}
