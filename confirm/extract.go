// Package confirm extracts structured service confirmations from assistant
// output.
//
// The model is instructed to emit, at most once per turn, a block of the
// literal form:
//
//	<service_confirmation>
//	Name: <value>
//	Phone: <value>
//	Details: <value>
//	Address: <value>
//	</service_confirmation>
//
// Tag spelling and field labels are exact and case-sensitive. The block is
// parsed with an explicit tag-and-line scan rather than a regex so that a
// partial or malformed block is a well-defined parse failure instead of an
// undefined match.
package confirm

import "strings"

const (
	openTag  = "<service_confirmation>"
	closeTag = "</service_confirmation>"

	// DefaultDetails is substituted when the Details field is empty or absent.
	DefaultDetails = "No especificado"
)

// Record is a parsed service confirmation. Name, Phone and Address must all
// be non-empty for the record to be committed to service history.
type Record struct {
	Name    string
	Phone   string
	Details string
	Address string
}

// findBlock locates the first closed confirmation block in text. It returns
// the block's start offset, its end offset (one past the closing tag), and
// the interior between the tags. ok is false when no closed block exists.
func findBlock(text string) (start, end int, inner string, ok bool) {
	start = strings.Index(text, openTag)
	if start == -1 {
		return 0, 0, "", false
	}
	rest := text[start+len(openTag):]
	rel := strings.Index(rest, closeTag)
	if rel == -1 {
		return 0, 0, "", false
	}
	inner = rest[:rel]
	end = start + len(openTag) + rel + len(closeTag)
	return start, end, inner, true
}

// Extract parses the first closed confirmation block out of text.
//
// ok is true only when the block exists and Name, Phone and Address are all
// non-empty after trimming. Details falls back to DefaultDetails when empty
// or absent; a missing required field makes the whole block invalid, which is
// not an error condition — the model may still be gathering information.
func Extract(text string) (Record, bool) {
	_, _, inner, found := findBlock(text)
	if !found {
		return Record{}, false
	}

	var rec Record
	for _, line := range strings.Split(inner, "\n") {
		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(label) {
		case "Name":
			rec.Name = value
		case "Phone":
			rec.Phone = value
		case "Details":
			rec.Details = value
		case "Address":
			rec.Address = value
		}
	}

	if rec.Name == "" || rec.Phone == "" || rec.Address == "" {
		return Record{}, false
	}
	if rec.Details == "" {
		rec.Details = DefaultDetails
	}
	return rec, true
}

// Redact removes the first closed confirmation block from text, leaving all
// other content byte-for-byte unchanged. Text without a closed block is
// returned as-is, so Redact is safe to apply speculatively while a block is
// still streaming.
func Redact(text string) string {
	start, end, _, found := findBlock(text)
	if !found {
		return text
	}
	return text[:start] + text[end:]
}

// HasOpenBlock reports whether text contains an opening tag that has not yet
// been closed. While a block is open it stays visible verbatim; once closed
// it disappears from the rendered view retroactively via Redact.
func HasOpenBlock(text string) bool {
	start := strings.Index(text, openTag)
	if start == -1 {
		return false
	}
	return !strings.Contains(text[start+len(openTag):], closeTag)
}
