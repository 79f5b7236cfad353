package question

// Issue describes a record that needed field defaults.
type Issue struct {
	Text          string   `json:"text"`
	MissingFields []string `json:"missing_fields"`
}

// Normalize returns cleaned copies of records with every required field
// populated, plus one Issue per record that needed defaults.
func Normalize(records []Record) ([]Record, []Issue) {
	cleaned := make([]Record, 0, len(records))
	var issues []Issue
	for _, r := range records {
		c := Record{
			Text:          r.Text,
			OptionA:       r.OptionA,
			OptionB:       r.OptionB,
			OptionC:       r.OptionC,
			OptionD:       r.OptionD,
			CorrectAnswer: r.CorrectAnswer,
			Category:      r.Category,
			Explanation:   r.Explanation,
		}

		missing := missingFields(r)
		for _, name := range missing {
			*c.field(name) = defaultFor(name)
		}
		cleaned = append(cleaned, c)

		if len(missing) > 0 {
			issues = append(issues, Issue{Text: c.Text, MissingFields: missing})
		}
	}
	return cleaned, issues
}

// Inspect lists the records that would need defaults without changing them.
func Inspect(records []Record) []Issue {
	var issues []Issue
	for _, r := range records {
		if missing := missingFields(r); len(missing) > 0 {
			issues = append(issues, Issue{Text: r.Text, MissingFields: missing})
		}
	}
	return issues
}

// missingFields uses the decode-time list for parsed records and falls back
// to empty-value checks for records built in code.
func missingFields(r Record) []string {
	if r.raw != nil {
		return r.Missing()
	}
	var missing []string
	for _, name := range RequiredFields {
		if r.Get(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func defaultFor(name string) string {
	switch name {
	case FieldCategory:
		return DefaultCategory
	case FieldExplanation:
		return DefaultExplanation
	}
	return ""
}

// CategoryOf returns the record's category, or DefaultCategory when empty.
func CategoryOf(r Record) string {
	if r.Category == "" {
		return DefaultCategory
	}
	return r.Category
}
