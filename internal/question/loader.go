package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrSourceRead marks a source that could not be read or is not valid JSON.
	ErrSourceRead = errors.New("unreadable source")
	// ErrSourceShape marks a source whose JSON root has the wrong shape.
	ErrSourceShape = errors.New("unexpected source shape")
	// ErrPrimaryInputMissing marks an absent flat-mode input file.
	ErrPrimaryInputMissing = errors.New("primary input missing")
)

const (
	listSchema = `{
	"type": "array",
	"items": {"type": "object"}
}`
	nestedSchema = `{
	"type": "array",
	"items": {
		"oneOf": [
			{"type": "object"},
			{"type": "array", "items": {"type": "object"}}
		]
	}
}`
)

var (
	listValidator   = mustSchema(listSchema)
	nestedValidator = mustSchema(nestedSchema)
)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("compiling source schema: %v", err))
	}
	return schema
}

// LoadDirectory reads every *.json file in dir, in file-name order, and
// returns their questions concatenated. Files named in exclude are ignored.
// Unreadable or mis-shaped files are logged and skipped; only a failure to
// list dir is returned.
func LoadDirectory(dir string, exclude ...string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing source directory: %w", err)
	}

	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var records []Record
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || skip[name] {
			continue
		}

		path := filepath.Join(dir, name)
		recs, err := LoadFile(path)
		if err != nil {
			slog.Warn("skipping question source", "path", path, "error", err)
			continue
		}
		records = append(records, recs...)
	}
	return records, nil
}

// LoadFile reads one file whose root is a list of question objects.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	if err := validate(listValidator, data); err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	return records, nil
}

// LoadFlat reads the single flat-mode input. Its root is a list whose items
// are question objects or lists of question objects; one level of nesting is
// flattened. Every failure is returned, since there is no other source.
func LoadFlat(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrPrimaryInputMissing, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	if err := validate(nestedValidator, data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}

	var records []Record
	for _, item := range items {
		if isArray(item) {
			var group []Record
			if err := json.Unmarshal(item, &group); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
			}
			records = append(records, group...)
			continue
		}

		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func validate(schema *gojsonschema.Schema, data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSourceShape, strings.Join(msgs, "; "))
}

func isArray(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
