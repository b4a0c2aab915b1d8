package clarity

import "strings"

const (
	summaryIssueHeader      = "Here’s what this situation looks like in plain terms:"
	summaryConstraintHeader = "What seems to be getting in the way:"
	summaryChoiceHeader     = "Next choices to get oriented and moving:"
	bullet                  = "- "
)

// Compose renders issue, constraints and choices into the fixed plain-text
// summary template. An empty list renders as a bare header.
func Compose(issue string, constraints, choices []string) string {
	var b strings.Builder
	b.WriteString(summaryIssueHeader)
	b.WriteString("\n\n")
	b.WriteString(issue)
	b.WriteString("\n\n")
	b.WriteString(summaryConstraintHeader)
	writeBullets(&b, constraints)
	b.WriteString("\n\n")
	b.WriteString(summaryChoiceHeader)
	writeBullets(&b, choices)
	return strings.TrimSpace(b.String())
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("\n")
		b.WriteString(bullet)
		b.WriteString(item)
	}
}
