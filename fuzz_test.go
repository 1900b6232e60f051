package coregen

import (
	"testing"
	"unicode/utf8"
)

// FuzzCompile checks that compilation never panics and that every compiled
// pattern generates valid UTF-8 within the length cap.
//
// Run with:
//
//	go test -fuzz=FuzzCompile -fuzztime=30s
func FuzzCompile(f *testing.F) {
	seeds := []string{
		`abc`, `\d+`, `[^a-z]{2,5}`, `(a|b|(c|d)*)+`, `{3}abc`, `x{y}`,
		`[`, `(`, `)`, `\`, `a{5,2}`, `(?P<n>x)`, `(?=a|b)c`, `a||b`,
		`[]a]`, `[a-]`, `é+`, `.{0,1000}`,
	}
	for _, s := range seeds {
		f.Add(s, uint64(1), 16)
	}

	f.Fuzz(func(t *testing.T, pattern string, seed uint64, maxLen int) {
		p, err := Compile(pattern)
		if err != nil {
			return
		}
		maxLen %= 512
		out := p.GenerateN(maxLen, NewRand(seed))
		if len(out) > max(maxLen, 0) {
			t.Fatalf("GenerateN(%d) on %q returned %d bytes", maxLen, pattern, len(out))
		}
		if utf8.ValidString(pattern) && !utf8.ValidString(out) {
			t.Fatalf("GenerateN on %q returned invalid UTF-8 %q", pattern, out)
		}
	})
}
