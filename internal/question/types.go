// Package question loads, deduplicates, normalizes and partitions quiz
// question banks stored as JSON.
package question

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Required field names, in output order.
const (
	FieldText          = "text"
	FieldOptionA       = "optionA"
	FieldOptionB       = "optionB"
	FieldOptionC       = "optionC"
	FieldOptionD       = "optionD"
	FieldCorrectAnswer = "correctAnswer"
	FieldCategory      = "category"
	FieldExplanation   = "explanation"
)

// Defaults substituted for missing fields during normalization.
const (
	DefaultCategory    = "Unknown"
	DefaultExplanation = "No explanation provided"
)

// RequiredFields lists every field a normalized record carries.
var RequiredFields = []string{
	FieldText,
	FieldOptionA,
	FieldOptionB,
	FieldOptionC,
	FieldOptionD,
	FieldCorrectAnswer,
	FieldCategory,
	FieldExplanation,
}

// Record is a single multiple-choice question.
type Record struct {
	Text          string `json:"text"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
	Category      string `json:"category"`
	Explanation   string `json:"explanation"`

	raw     json.RawMessage
	missing []string
}

// UnmarshalJSON decodes a question object. Absent, null and empty-string
// fields are remembered as missing; numbers and booleans keep their literal
// text. The original object bytes are retained for verbatim re-encoding.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("question is null")
	}

	*r = Record{raw: append(json.RawMessage(nil), data...)}
	for _, name := range RequiredFields {
		v, ok := scalarString(fields[name])
		if !ok {
			r.missing = append(r.missing, name)
			continue
		}
		*r.field(name) = v
	}
	return nil
}

// Raw returns the object the record was decoded from, or its canonical
// encoding for records built in code.
func (r Record) Raw() json.RawMessage {
	if r.raw != nil {
		return r.raw
	}
	b, _ := json.Marshal(r)
	return b
}

// Missing returns the required fields that were absent, null or empty in the
// source object.
func (r Record) Missing() []string {
	return append([]string(nil), r.missing...)
}

// Get returns a required field by its JSON name.
func (r *Record) Get(name string) string {
	if p := r.field(name); p != nil {
		return *p
	}
	return ""
}

func (r *Record) field(name string) *string {
	switch name {
	case FieldText:
		return &r.Text
	case FieldOptionA:
		return &r.OptionA
	case FieldOptionB:
		return &r.OptionB
	case FieldOptionC:
		return &r.OptionC
	case FieldOptionD:
		return &r.OptionD
	case FieldCorrectAnswer:
		return &r.CorrectAnswer
	case FieldCategory:
		return &r.Category
	case FieldExplanation:
		return &r.Explanation
	}
	return nil
}

// scalarString converts a raw JSON value to a string. It reports false for
// absent, null and empty-string values.
func scalarString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	}
	return string(raw), true
}
