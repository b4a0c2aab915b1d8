package clarity

import "strings"

// Category is one topic the engine can recognise in a situation description.
//
// Phrases are lower-case substring triggers; any one of them is enough.
// Requires lists substrings that must all be present as well, for categories
// that only apply when two signals appear together.
type Category struct {
	ID       string   `json:"id" yaml:"id"`
	Priority int      `json:"priority" yaml:"priority"`
	Order    int      `json:"order" yaml:"order"`
	Phrases  []string `json:"phrases" yaml:"phrases"`
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty"`

	Issue      string   `json:"issue,omitempty" yaml:"issue,omitempty"`
	Constraint string   `json:"constraint,omitempty" yaml:"constraint,omitempty"`
	Choices    []string `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Matches reports whether normalized text triggers the category.
func (c Category) Matches(normalized string) bool {
	for _, req := range c.Requires {
		if !strings.Contains(normalized, req) {
			return false
		}
	}
	for _, p := range c.Phrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// NamesIssue reports whether the category can be returned by the issue classifier.
func (c Category) NamesIssue() bool {
	return c.Issue != ""
}

func (c Category) clone() Category {
	out := c
	out.Phrases = append([]string(nil), c.Phrases...)
	if c.Requires != nil {
		out.Requires = append([]string(nil), c.Requires...)
	}
	if c.Choices != nil {
		out.Choices = append([]string(nil), c.Choices...)
	}
	return out
}
