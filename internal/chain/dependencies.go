package chain

import "strings"

// Dependencies declares which names a component provides and which names it
// must run before or after. Names are either component names or phase names.
// Each list keeps first-seen order and holds no duplicates.
type Dependencies struct {
	Provides []string
	Before   []string
	After    []string
}

// NewDependencies normalizes the given lists, dropping empty names and duplicates.
func NewDependencies(provides, before, after []string) Dependencies {
	return Dependencies{
		Provides: uniq(provides),
		Before:   uniq(before),
		After:    uniq(after),
	}
}

// IsEmpty reports whether nothing is declared.
func (d Dependencies) IsEmpty() bool {
	return len(d.Provides) == 0 && len(d.Before) == 0 && len(d.After) == 0
}

// Union returns the dependencies of both, d's names first.
func (d Dependencies) Union(other Dependencies) Dependencies {
	return NewDependencies(
		append(append([]string{}, d.Provides...), other.Provides...),
		append(append([]string{}, d.Before...), other.Before...),
		append(append([]string{}, d.After...), other.After...),
	)
}

// WithProvided returns d with name added to Provides, first.
func (d Dependencies) WithProvided(name string) Dependencies {
	return NewDependencies(append([]string{name}, d.Provides...), d.Before, d.After)
}

func (d Dependencies) String() string {
	return "provides[" + strings.Join(d.Provides, ",") +
		"] before[" + strings.Join(d.Before, ",") +
		"] after[" + strings.Join(d.After, ",") + "]"
}

func uniq(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Phase is a named synthetic ordering anchor. Phases may order themselves
// relative to other phases through Before and After.
type Phase struct {
	Name         string
	Dependencies Dependencies
}

// NewPhase creates a phase ordered by the given before/after names.
func NewPhase(name string, before, after []string) Phase {
	return Phase{Name: name, Dependencies: NewDependencies(nil, before, after)}
}
