package batch

import "github.com/coregx/ahocorasick"

// excludeFilter rejects values containing any of a column's excluded
// strings. All strings are searched in one pass.
type excludeFilter struct {
	auto *ahocorasick.Automaton
}

// newExcludeFilter builds a filter, or returns nil when there is nothing to
// exclude.
func newExcludeFilter(exclude []string) (*excludeFilter, error) {
	if len(exclude) == 0 {
		return nil, nil
	}

	builder := ahocorasick.NewBuilder()
	for _, s := range exclude {
		if s == "" {
			return nil, ErrEmptyExclude
		}
		builder.AddPattern([]byte(s))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &excludeFilter{auto: auto}, nil
}

// rejects reports whether value contains an excluded string.
func (f *excludeFilter) rejects(value []byte) bool {
	return f != nil && f.auto.IsMatch(value)
}
