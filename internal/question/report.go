package question

import (
	"fmt"
	"io"
	"strings"
)

const issueTextLimit = 50

// CategoryCount is the number of records in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Report summarizes a run for the operator. It has no effect on output data.
type Report struct {
	Total      int             `json:"total"`
	Categories []CategoryCount `json:"categories"`
	Issues     []Issue         `json:"issues"`
}

// BuildReport counts records per category in first-seen order and copies the
// issues with their texts truncated to 50 characters.
func BuildReport(records []Record, issues []Issue) Report {
	rep := Report{
		Total:      len(records),
		Categories: []CategoryCount{},
		Issues:     make([]Issue, 0, len(issues)),
	}
	for _, p := range PartitionByCategory(records) {
		rep.Categories = append(rep.Categories, CategoryCount{Category: p.Category, Count: len(p.Records)})
	}
	for _, is := range issues {
		rep.Issues = append(rep.Issues, Issue{
			Text:          truncate(is.Text, issueTextLimit),
			MissingFields: append([]string(nil), is.MissingFields...),
		})
	}
	return rep
}

// WriteText renders the human-readable summary.
func (r Report) WriteText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Total unique questions: %d\n", r.Total)
	b.WriteString("\nQuestions per category:\n")
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "%s: %d\n", c.Category, c.Count)
	}

	if len(r.Issues) == 0 {
		b.WriteString("\nNo questions with missing or empty fields found.\n")
	} else {
		b.WriteString("\nQuestions with missing or empty fields:\n")
		for _, is := range r.Issues {
			fmt.Fprintf(&b, "Question: %s... | Missing/Empty fields: [%s]\n", is.Text, strings.Join(is.MissingFields, ", "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
