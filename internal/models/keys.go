package models

import "strconv"

// Keyed is implemented by collection items that have an identity key.
type Keyed interface {
	Key() string
}

// Keys returns one key per item in order. The first occurrence of a key
// keeps it. Blank and repeated keys are suffixed with "~" and their
// ordinal, counting upwards until the key is unused, so the result is
// always unique.
func Keys[T Keyed](items []T) []string {
	keys := make([]string, len(items))
	used := make(map[string]bool, len(items))
	for i, item := range items {
		if k := item.Key(); k != "" && !used[k] {
			keys[i] = k
			used[k] = true
		}
	}
	for i, item := range items {
		if keys[i] != "" {
			continue
		}
		base := item.Key()
		for n := i; ; n++ {
			k := base + "~" + strconv.Itoa(n)
			if !used[k] {
				keys[i] = k
				used[k] = true
				break
			}
		}
	}
	return keys
}

// DuplicateKeys lists keys that occur more than once, in first-seen order.
func DuplicateKeys[T Keyed](items []T) []string {
	count := make(map[string]int, len(items))
	var order []string
	for _, item := range items {
		k := item.Key()
		if count[k] == 0 {
			order = append(order, k)
		}
		count[k]++
	}

	var dups []string
	for _, k := range order {
		if count[k] > 1 {
			dups = append(dups, k)
		}
	}
	return dups
}

// SectionKeyIssues reports duplicate item keys within each collection of
// a section, as human readable strings.
func SectionKeyIssues(s Section) []string {
	var issues []string
	add := func(collection string, dups []string) {
		for _, k := range dups {
			issues = append(issues, collection+": duplicate key "+strconv.Quote(k))
		}
	}

	switch v := s.(type) {
	case *ParagraphSection:
		add("tiles", DuplicateKeys(v.Tiles))
		add("specs", DuplicateKeys(v.Specs))
		add("faqs", DuplicateKeys(v.FAQs))
	case *MetricsSection:
		add("metrics", DuplicateKeys(v.Metrics))
	case *MediaTabsSection:
		add("media_tabs", DuplicateKeys(v.Tabs))
	case *FeaturesSection:
		add("features", DuplicateKeys(v.Features))
	case *ListSection:
		add("faqs", DuplicateKeys(v.FAQs))
	}
	return issues
}
