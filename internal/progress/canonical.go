package progress

import "strings"

// The same set file can be referenced with or without a root-relative
// prefix depending on how it was opened ("data/sets/a.json",
// "/sets/a.json", "sets/a.json"). All such surface forms must resolve to
// one logical progress record.

// Canonicalize maps an external alias (set id or path form) to the
// internal identity records are keyed by. Pure string normalization:
// prefix-stripping happens only here, never inside the store logic.
func Canonicalize(key string) string {
	k := strings.TrimPrefix(key, "/")
	k = strings.TrimPrefix(k, "data/")
	return k
}

// PathVariants returns the ordered list of key forms to probe in the
// backend for a given path. Earlier entries are the more likely forms;
// the first hit wins.
func PathVariants(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	base := strings.TrimPrefix(trimmed, "data/")

	candidates := []string{path, trimmed, base, "data/" + base, "/" + base}
	variants := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, v := range candidates {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		variants = append(variants, v)
	}
	return variants
}
