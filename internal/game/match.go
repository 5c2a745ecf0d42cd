package game

import "strings"

// uniqueMatch resolves target against names, case-insensitively. An exact
// match always wins; otherwise a prefix (of the whole name, or of any word
// when matchWords is set) must identify exactly one candidate.
func uniqueMatch(target string, names []string, matchWords bool) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(target))
	if needle == "" {
		return -1, false
	}

	found := -1
	for i, name := range names {
		candidate := strings.ToLower(strings.TrimSpace(name))
		if candidate == needle {
			return i, true
		}
		if !prefixMatches(candidate, needle, matchWords) {
			continue
		}
		if found != -1 {
			// ambiguous unless an exact match turns up later
			found = -2
			continue
		}
		found = i
	}
	if found < 0 {
		return -1, false
	}
	return found, true
}

func prefixMatches(candidate, needle string, matchWords bool) bool {
	if strings.HasPrefix(candidate, needle) {
		return true
	}
	if !matchWords {
		return false
	}
	for _, word := range strings.Fields(candidate) {
		if strings.HasPrefix(word, needle) {
			return true
		}
	}
	return false
}
