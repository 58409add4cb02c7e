package form

import (
	"github.com/sahilm/fuzzy"
)

const maxSuggestions = 3

// suggest returns up to three configured names resembling input. Names are
// matched as fuzzy subsequences of the input and the other way round, so both
// abbreviations ("cam") and misspellings ("colour") find a candidate.
func suggest(input string, names []string) []string {
	if input == "" || len(names) == 0 {
		return nil
	}

	var out []string
	seen := map[string]struct{}{}
	add := func(name string) {
		if _, ok := seen[name]; ok || len(out) >= maxSuggestions {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, match := range fuzzy.Find(input, names) {
		add(match.Str)
	}
	for _, name := range names {
		if len(fuzzy.Find(name, []string{input})) > 0 {
			add(name)
		}
	}
	return out
}
