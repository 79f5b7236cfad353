package question_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p-n-ai/quizbank/internal/question"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"Networks", "Networks.json"},
		{"Data Structures", "Data_Structures.json"},
		{"I/O", "I_O.json"},
		{`C:\Temp`, "C:_Temp.json"},
		{"Unknown", "Unknown.json"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := question.FileName(tt.category); got != tt.want {
				t.Errorf("FileName(%q) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestPartitionByCategory(t *testing.T) {
	records := []question.Record{
		{Text: "Q1", Category: "B"},
		{Text: "Q2", Category: "A"},
		{Text: "Q3", Category: "B"},
		{Text: "Q4"},
	}

	parts := question.PartitionByCategory(records)

	wantCats := []string{"B", "A", question.DefaultCategory}
	if len(parts) != len(wantCats) {
		t.Fatalf("PartitionByCategory() = %d parts, want %d", len(parts), len(wantCats))
	}

	total := 0
	seen := map[string]bool{}
	for i, p := range parts {
		if p.Category != wantCats[i] {
			t.Errorf("parts[%d].Category = %q, want %q", i, p.Category, wantCats[i])
		}
		for _, r := range p.Records {
			if seen[r.Text] {
				t.Errorf("record %q appears in more than one partition", r.Text)
			}
			seen[r.Text] = true
			total++
		}
	}
	if total != len(records) {
		t.Errorf("partitions hold %d records, want %d", total, len(records))
	}
	if parts[0].Records[1].Text != "Q3" {
		t.Errorf("partition B order = %q, want Q3 second", parts[0].Records[1].Text)
	}
}

func TestWritePartitions_Scenario(t *testing.T) {
	cleaned, _ := question.Normalize(question.Deduplicate(decode(t, scenarioInput), question.DedupeOptions{}))
	dir := filepath.Join(t.TempDir(), "category_files")

	paths, err := question.WritePartitions(dir, question.PartitionByCategory(cleaned))
	if err != nil {
		t.Fatalf("WritePartitions() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("WritePartitions() wrote %d files, want 2", len(paths))
	}

	for _, name := range []string{"A.json", "B.json"} {
		records, err := question.LoadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("LoadFile(%s) error = %v", name, err)
		}
		if len(records) != 1 {
			t.Errorf("%s holds %d records, want 1", name, len(records))
		}
	}
}

func TestEncodeJSON_Format(t *testing.T) {
	var buf bytes.Buffer
	records := []question.Record{{Text: "Qu'est-ce que <TCP> & «UDP»?", Category: "Réseaux"}}

	if err := question.EncodeJSON(&buf, records); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"<TCP> & «UDP»", "Réseaux", "\n        \"text\""} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !json.Valid(buf.Bytes()) {
		t.Error("output is not valid JSON")
	}
}

func TestWriteJSON_RawRecordsVerbatim(t *testing.T) {
	records := decode(t, `[{"text":"Q1","extra":{"source":"bank-1"}}]`)
	path := filepath.Join(t.TempDir(), "combined.json")

	if err := question.WriteJSON(path, question.RawRecords(records)); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	var got []map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("combined file not JSON: %v", err)
	}
	if len(got) != 1 || got[0]["extra"] == nil {
		t.Errorf("raw record not preserved: %s", data)
	}
	if _, ok := got[0]["category"]; ok {
		t.Errorf("raw write must not add defaulted fields: %s", data)
	}
}

func TestWriteJSON_EmptyIsList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := question.WriteJSON(path, question.Deduplicate(nil, question.DedupeOptions{})); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty output = %q, want []", data)
	}
}
