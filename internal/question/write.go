package question

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// EncodeJSON writes v as UTF-8 JSON indented with four spaces. HTML
// characters and non-ASCII text are written verbatim.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// WriteJSON encodes v into the file at path, replacing any previous content.
func WriteJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	buf := bufio.NewWriter(f)
	if err := EncodeJSON(buf, v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return buf.Flush()
}

// RawRecords returns each record's original JSON object, for writing records
// back without normalization.
func RawRecords(records []Record) []json.RawMessage {
	raws := make([]json.RawMessage, len(records))
	for i, r := range records {
		raws[i] = r.Raw()
	}
	return raws
}
