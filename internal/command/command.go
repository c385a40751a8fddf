// Package command turns a typed line into a verb and arguments, tolerating small typos.
package command

import (
	"errors"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	ErrEmpty     = errors.New("empty command")
	ErrUnknown   = errors.New("unknown command")
	ErrAmbiguous = errors.New("ambiguous input")
	ErrNoMatch   = errors.New("no match")
	ErrMissing   = errors.New("missing argument")
)

// Def describes one command.
type Def struct {
	Canonical string
	Aliases   []string
	MinArgs   int
	Usage     string
}

// Intent is a parsed line.
type Intent struct {
	Raw  string
	Verb string
	Args []string
	// Rest is everything after the verb, with the original spacing and case.
	Rest string
	// Fuzzy is true when the verb was matched by edit distance rather than exactly.
	Fuzzy bool
}

// Registry holds the commands one screen understands.
type Registry struct {
	defs  []Def
	alias map[string]string
}

// NewRegistry registers defs in order.
func NewRegistry(defs ...Def) *Registry {
	r := &Registry{alias: make(map[string]string)}
	for _, d := range defs {
		r.Register(d)
	}
	return r
}

// Register adds a command. Later registrations win on alias clashes.
func (r *Registry) Register(d Def) {
	r.defs = append(r.defs, d)
	r.alias[normalise(d.Canonical)] = d.Canonical
	for _, a := range d.Aliases {
		r.alias[normalise(a)] = d.Canonical
	}
}

// Defs returns the registered commands in registration order.
func (r *Registry) Defs() []Def {
	return append([]Def(nil), r.defs...)
}

func (r *Registry) def(canonical string) Def {
	for _, d := range r.defs {
		if d.Canonical == canonical {
			return d
		}
	}
	return Def{}
}

// Parse resolves the first word of raw to a command.
// A leading slash is accepted, so "/quit" and "quit" are the same.
func (r *Registry) Parse(raw string) (Intent, error) {
	intent := Intent{Raw: raw}
	line := strings.TrimSpace(raw)
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return intent, ErrEmpty
	}

	head, rest, _ := strings.Cut(line, " ")
	intent.Rest = strings.TrimSpace(rest)
	intent.Args = strings.Fields(normalise(intent.Rest))

	word := normalise(head)
	if canonical, ok := r.alias[word]; ok {
		intent.Verb = canonical
	} else {
		keys := make([]string, 0, len(r.alias))
		for k := range r.alias {
			keys = append(keys, k)
		}
		best := nearest(word, keys)
		if len(best) == 0 {
			return intent, ErrUnknown
		}
		for _, k := range best[1:] {
			if r.alias[k] != r.alias[best[0]] {
				return intent, ErrAmbiguous
			}
		}
		intent.Verb = r.alias[best[0]]
		intent.Fuzzy = true
	}

	if d := r.def(intent.Verb); len(intent.Args) < d.MinArgs {
		return intent, ErrMissing
	}
	return intent, nil
}

// Match resolves input against candidate names: exact match, then unique prefix,
// then smallest edit distance within the limit for the candidate's length.
func Match(input string, candidates []string) (string, error) {
	in := normalise(input)
	if in == "" {
		return "", ErrNoMatch
	}

	normed := make(map[string]string, len(candidates))
	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		n := normalise(c)
		if _, dup := normed[n]; !dup {
			keys = append(keys, n)
		}
		normed[n] = c
	}

	if c, ok := normed[in]; ok {
		return c, nil
	}

	var prefixed []string
	for _, k := range keys {
		if strings.HasPrefix(k, in) {
			prefixed = append(prefixed, k)
		}
	}
	if len(prefixed) == 1 {
		return normed[prefixed[0]], nil
	}
	if len(prefixed) > 1 {
		return "", ErrAmbiguous
	}

	best := nearest(in, keys)
	switch len(best) {
	case 0:
		return "", ErrNoMatch
	case 1:
		return normed[best[0]], nil
	default:
		return "", ErrAmbiguous
	}
}

// nearest returns the keys at the smallest edit distance from word that is within
// the limit for the key's length, sorted.
func nearest(word string, keys []string) []string {
	type scored struct {
		key  string
		dist int
	}
	var hits []scored
	for _, k := range keys {
		d := levenshtein.ComputeDistance(word, k)
		if d > levenshteinLimit(len(k)) {
			continue
		}
		hits = append(hits, scored{k, d})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].key < hits[j].key
	})
	var out []string
	for _, h := range hits {
		if h.dist != hits[0].dist {
			break
		}
		out = append(out, h.key)
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalise(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
