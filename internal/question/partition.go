package question

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Partition is the subset of records sharing one category.
type Partition struct {
	Category string
	Records  []Record
}

var fileNameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// FileName returns the category file name: spaces and path separators
// become underscores.
func FileName(category string) string {
	return fileNameReplacer.Replace(category) + ".json"
}

// PartitionByCategory groups records by category in first-seen order.
func PartitionByCategory(records []Record) []Partition {
	index := make(map[string]int)
	var parts []Partition
	for _, r := range records {
		cat := CategoryOf(r)
		i, ok := index[cat]
		if !ok {
			i = len(parts)
			index[cat] = i
			parts = append(parts, Partition{Category: cat})
		}
		parts[i].Records = append(parts[i].Records, r)
	}
	return parts
}

// WritePartitions writes one file per partition under dir, creating dir if
// needed, and returns the written paths in partition order. Writing stops at
// the first failure; files already written are left in place.
func WritePartitions(dir string, parts []Partition) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		path := filepath.Join(dir, FileName(p.Category))
		if err := WriteJSON(path, p.Records); err != nil {
			return paths, fmt.Errorf("writing category %q: %w", p.Category, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
