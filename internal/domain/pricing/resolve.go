package pricing

import "strings"

// matchTable is the minimal read-only catalog view the match engine needs.
// Both Catalog and ContextCatalog satisfy it.
type matchTable interface {
	Keys() []string
	hasKey(string) bool
	keyOperator(string) Operator
}

// separators that may follow a matched key prefix inside a longer name.
func isSeparator(c byte) bool {
	return c == '-' || c == '.' || c == '/' || c == ':'
}

// Resolve finds the best pricing record for a raw display name. It tries
// progressively more aggressive normalizations of the name, returning the
// first record any of them matches, or (nil, false) when none do. The result
// is a deterministic, total function of the catalog contents and the name.
func Resolve(cat *Catalog, rawName string) (*Record, bool) {
	key, ok := resolveKey(cat, rawName)
	if !ok {
		return nil, false
	}
	return cat.Get(key), true
}

// ResolveContext is the ContextCatalog counterpart of Resolve.
func ResolveContext(cat *ContextCatalog, rawName string) (*ContextRecord, bool) {
	key, ok := resolveKey(cat, rawName)
	if !ok {
		return nil, false
	}
	return cat.Get(key), true
}

// resolveKey runs the ordered fallback strategy: the plain normalized name,
// then suffix-stripped, date-stripped, thinking-stripped, and finally dates
// then thinking stripped. Variants that are empty or repeat an already
// attempted form are skipped, so the engine runs at most five times.
func resolveKey(cat matchTable, rawName string) (string, bool) {
	base := Normalize(rawName)
	dateless := StripDates(base)
	variants := [5]string{
		base,
		StripSuffixes(base),
		dateless,
		StripThinking(base),
		StripThinking(dateless),
	}

	attempted := make([]string, 0, len(variants))
	for _, v := range variants {
		if v == "" || contains(attempted, v) {
			continue
		}
		attempted = append(attempted, v)
		if key, ok := matchTerm(cat, v); ok {
			return key, true
		}
	}
	return "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// matchTerm runs the four inner matching stages for one normalized search
// term, in priority order: exact key, operator-based membership, query-is-
// longer-prefix, and key-is-longer-suffix.
func matchTerm(cat matchTable, term string) (string, bool) {
	if cat.hasKey(term) {
		return term, true
	}
	if key, ok := matchOperators(cat, term); ok {
		return key, true
	}
	if key, ok := matchQueryPrefix(cat, term); ok {
		return key, true
	}
	return matchKeySuffix(cat, term)
}

// matchOperators considers only entries whose operator is not Equals:
// Includes entries whose key the term contains, and StartsWith entries whose
// key the term starts with. The longest key wins; equal lengths fall back to
// catalog insertion order, first wins.
func matchOperators(cat matchTable, term string) (string, bool) {
	best := ""
	found := false
	for _, key := range cat.Keys() {
		matched := false
		switch cat.keyOperator(key) {
		case OperatorIncludes:
			matched = strings.Contains(term, key)
		case OperatorStartsWith:
			matched = strings.HasPrefix(term, key)
		}
		if matched && (!found || len(key) > len(best)) {
			best = key
			found = true
		}
	}
	return best, found
}

// matchQueryPrefix accepts keys the term starts with, provided the character
// following the key is a separator and the boundary is not a version
// continuation ("grok-4" must not match the term "grok-4.1"). The longest
// accepted key wins: when the query carries extra qualifiers, the most
// specific base model is preferred.
func matchQueryPrefix(cat matchTable, term string) (string, bool) {
	best := ""
	found := false
	for _, key := range cat.Keys() {
		if !strings.HasPrefix(term, key) {
			continue
		}
		if len(term) > len(key) {
			next := term[len(key)]
			if !isSeparator(next) {
				continue
			}
			if isVersionContinuation(term, key) {
				continue
			}
		}
		if !found || len(key) > len(best) {
			best = key
			found = true
		}
	}
	return best, found
}

// isVersionContinuation reports whether the term continues the key's version
// number: the key ends in a digit and the term follows it with "-<digit>" or
// ".<digit>".
func isVersionContinuation(term, key string) bool {
	next := term[len(key)]
	if next != '.' && next != '-' {
		return false
	}
	if len(term) <= len(key)+1 || !isDigit(term[len(key)+1]) {
		return false
	}
	return isDigit(key[len(key)-1])
}

// matchKeySuffix accepts keys that start with the term followed by a
// separator. The shortest accepted key wins: when the query is the bare name
// and several qualified variants exist, the least specific superset entry is
// preferred over an arbitrary qualified one.
func matchKeySuffix(cat matchTable, term string) (string, bool) {
	best := ""
	found := false
	for _, key := range cat.Keys() {
		if len(key) <= len(term) || !strings.HasPrefix(key, term) {
			continue
		}
		if !isSeparator(key[len(term)]) {
			continue
		}
		if !found || len(key) < len(best) {
			best = key
			found = true
		}
	}
	return best, found
}
