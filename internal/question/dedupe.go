package question

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"
)

// DedupeOptions controls how question texts are compared.
type DedupeOptions struct {
	// NFCKeys compares texts after Unicode NFC normalization, so composed and
	// decomposed spellings of the same text collide. The kept record's text
	// is not rewritten.
	NFCKeys bool
}

// Deduplicate keeps the first record for each distinct text, in
// first-occurrence order. Records with an empty text are dropped.
func Deduplicate(records []Record, opts DedupeOptions) []Record {
	seen := make(map[string]struct{}, len(records))
	unique := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Text == "" {
			continue
		}
		key := r.Text
		if opts.NFCKeys {
			key = norm.NFC.String(key)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}

// Key returns a stable identifier for a question text: the hex BLAKE2b-256
// digest of its NFC form.
func Key(text string) string {
	sum := blake2b.Sum256([]byte(norm.NFC.String(text)))
	return hex.EncodeToString(sum[:])
}
