// Package coregen generates random strings from regex-like patterns.
//
// A pattern is compiled once into an immutable tree. Every call to Generate
// walks that tree with a caller-supplied random source and returns a string
// the pattern describes, capped at a maximum length.
//
// Basic usage:
//
//	p, err := coregen.Compile(`[A-Z]{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rng := coregen.NewRand(42)
//	fmt.Println(p.Generate(rng)) // e.g. "QFX-0193"
//
// Generation differs from matching in a few deliberate ways:
//   - '*', '+' and {m,} are bounded by Config.RepeatLimit (default 10)
//   - '.' and negated classes draw from printable ASCII only
//   - anchors and lookaround groups generate nothing
//   - escapes other than \d \w \s \D \W \S stand for the escaped character,
//     so \n is the letter n
//
// For many columns and rows at once see package batch.
package coregen

import (
	"math/rand/v2"

	"github.com/coregx/coregen/sample"
	"github.com/coregx/coregen/syntax"
)

// Pattern is a compiled generation pattern.
//
// A Pattern is immutable and safe for concurrent use, as long as each
// goroutine passes its own random source.
//
// Example:
//
//	p := coregen.MustCompile(`(cat|dog)s?`)
//	fmt.Println(p.Generate(coregen.NewRand(1)))
type Pattern struct {
	root    *syntax.Node
	pattern string
	config  Config
}

// Compile compiles a pattern with the default configuration.
//
// Example:
//
//	p, err := coregen.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Pattern, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern is invalid.
//
// Example:
//
//	var phone = coregen.MustCompile(`\(\d{3}\) \d{3}-\d{4}`)
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic("coregen: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := coregen.DefaultConfig().WithRepeatLimit(3)
//	p, err := coregen.CompileWithConfig(`x+`, config) // at most "xxx"
func CompileWithConfig(pattern string, config Config) (*Pattern, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	root, err := syntax.Compile(pattern, config.Syntax())
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	return &Pattern{
		root:    root,
		pattern: pattern,
		config:  config,
	}, nil
}

// Generate returns one random string of at most Config.MaxLength bytes.
func (p *Pattern) Generate(r sample.Rand) string {
	return sample.Generate(p.root, p.config.MaxLength, r)
}

// GenerateN returns one random string of at most maxLen bytes.
// Output longer than maxLen is cut at the last whole character that fits.
func (p *Pattern) GenerateN(maxLen int, r sample.Rand) string {
	return sample.Generate(p.root, maxLen, r)
}

// AppendGenerate appends one random string of at most maxLen bytes to dst.
func (p *Pattern) AppendGenerate(dst []byte, maxLen int, r sample.Rand) []byte {
	return sample.AppendGenerate(dst, p.root, maxLen, r)
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.pattern
}

// Root returns the compiled tree. It must not be modified.
func (p *Pattern) Root() *syntax.Node {
	return p.root
}

// Config returns the configuration the pattern was compiled with.
func (p *Pattern) Config() Config {
	return p.config
}

// LengthBounds returns the shortest and longest output, in bytes, the pattern
// can produce before the length cap applies.
func (p *Pattern) LengthBounds() (lo, hi int) {
	return syntax.SeqMinLen(p.root), syntax.SeqMaxLen(p.root)
}

// NewRand returns a deterministic random source for seed.
// It is not safe for concurrent use.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// QuoteMeta returns a pattern that generates exactly s.
//
// Example:
//
//	p := coregen.MustCompile(coregen.QuoteMeta("1+1=2"))
//	p.Generate(rng) // "1+1=2"
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
