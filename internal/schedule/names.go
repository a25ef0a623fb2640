package schedule

import (
	"strings"
)

// CommonsState is the virtual pseudo-state grouping events tagged
// "commons" regardless of their literal network-state field.
const CommonsState = "Commons"

const commonsTag = "commons"

// NameMatcher reports whether two network-state names refer to the same
// community despite variant spellings
type NameMatcher interface {
	NamesMatch(a, b string) bool
}

// AliasMatcher is a NameMatcher backed by a canonical-name alias table.
// Names are folded (case, punctuation, whitespace) before lookup, so
// "EdgeCity" and "edge city" compare equal even without an alias entry.
type AliasMatcher struct {
	canonical map[string]string // folded variant -> canonical name
}

// Known variant spellings observed in the listing data. Extendable at
// runtime via AddAlias (the config file's alias directives feed this).
var defaultAliases = map[string][]string{
	"Zuzalu":         {"Zuzalu City", "Zuzalu Georgia"},
	"Edge City":      {"EdgeCity", "Edge City Lanna", "Edge Esmeralda"},
	"Prospera":       {"Próspera", "Prospera ZEDE"},
	"Network School": {"NS", "The Network School"},
	"Infinita":       {"Infinita City", "Vitalia"},
	"Aleph":          {"Aleph Crecimiento"},
}

// NewAliasMatcher returns a matcher seeded with the default alias table
func NewAliasMatcher() *AliasMatcher {
	m := &AliasMatcher{canonical: make(map[string]string)}
	for name, variants := range defaultAliases {
		m.AddAlias(name, variants...)
	}
	return m
}

// AddAlias registers variant spellings for a canonical name
func (m *AliasMatcher) AddAlias(canonical string, variants ...string) {
	m.canonical[foldName(canonical)] = canonical
	for _, v := range variants {
		m.canonical[foldName(v)] = canonical
	}
}

// NamesMatch implements NameMatcher
func (m *AliasMatcher) NamesMatch(a, b string) bool {
	return m.resolve(a) == m.resolve(b)
}

func (m *AliasMatcher) resolve(name string) string {
	folded := foldName(name)
	if canonical, ok := m.canonical[folded]; ok {
		return canonical
	}
	return folded
}

// foldName lowercases and strips punctuation so that spelling variants
// collide on the same key
func foldName(name string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
