package reposearch

import "strings"

// nameFilter drops items whose name contains a substring, ignoring case
type nameFilter struct {
	needle string
}

func newNameFilter(ignore string) nameFilter {
	return nameFilter{needle: strings.ToLower(ignore)}
}

func (f nameFilter) active() bool {
	return f.needle != ""
}

func (f nameFilter) excludes(item RepositoryItem) bool {
	return f.active() && strings.Contains(strings.ToLower(item.Name), f.needle)
}

// apply returns the surviving items in their original order. It never
// aliases the input slice.
func (f nameFilter) apply(items []RepositoryItem) []RepositoryItem {
	kept := make([]RepositoryItem, 0, len(items))
	for _, item := range items {
		if !f.excludes(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

// sameTerm reports whether the ignore term would wipe out the query itself
func sameTerm(query, ignore string) bool {
	return ignore != "" && strings.EqualFold(query, ignore)
}
