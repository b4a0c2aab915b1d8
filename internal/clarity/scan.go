package clarity

// firstMatch returns the first category in cats that matches normalized text.
func firstMatch(cats []Category, normalized string) (Category, bool) {
	for _, c := range cats {
		if c.Matches(normalized) {
			return c, true
		}
	}
	return Category{}, false
}

// allMatches returns every category in cats that matches, preserving order.
func allMatches(cats []Category, normalized string) []Category {
	var out []Category
	for _, c := range cats {
		if c.Matches(normalized) {
			out = append(out, c)
		}
	}
	return out
}
