// Package contract implements the two-layer gate for machine-generated
// metadata descriptions: a deterministic parser for the restricted YAML
// subset the output contract allows, a structural validator over the parsed
// fields, and a semantic validator over their content. All of it is pure:
// malformed input comes back as defect strings, never as a panic or error.
package contract

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse parses the restricted YAML subset into an ordered Document and a
// list of parse defects. Supported forms are top-level `key: value` lines,
// `key: []`, and `key:` followed by `- item` lines. Comments, nested
// structures and free text are defects, not errors.
func Parse(raw string) (*Document, []string) {
	doc := newDocument()
	var defects []string

	lines := contentLines(raw)

	for _, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), "#") {
			defects = append(defects, "Comments are not allowed in YAML output")
			break
		}
	}

	i := 0
	n := len(lines)
	for i < n {
		ln := lines[i]

		// Top-level keys start at column 0 and contain a separator.
		if strings.HasPrefix(ln, " ") || !strings.Contains(ln, ":") {
			defects = append(defects, fmt.Sprintf("Unexpected line format: '%s'", ln))
			i++
			continue
		}

		rawKey, rest, _ := strings.Cut(ln, ":")
		key := strings.TrimSpace(rawKey)
		value := strings.TrimSpace(rest)

		if doc.Has(key) {
			defects = append(defects, fmt.Sprintf("Duplicate key '%s'", key))
		}

		switch {
		case value == "[]":
			doc.set(key, FieldValue{Kind: KindEmptyList})
			i++

		case value == "":
			// Array block: collect `- item` continuation lines. An item
			// missing the space after the dash is a defect and is skipped
			// without ending the block.
			var items []string
			j := i + 1
			for j < n {
				stripped := strings.TrimLeftFunc(lines[j], unicode.IsSpace)
				if strings.HasPrefix(stripped, "-") && !strings.HasPrefix(stripped, "- ") {
					defects = append(defects, fmt.Sprintf("Invalid array item format: '%s'", lines[j]))
					j++
					continue
				}
				if strings.HasPrefix(stripped, "- ") {
					items = append(items, strings.TrimSpace(stripped[2:]))
					j++
					continue
				}
				break
			}
			if len(items) == 0 {
				doc.set(key, FieldValue{Kind: KindMalformed})
			} else {
				doc.set(key, FieldValue{Kind: KindItems, Items: items})
			}
			i = j

		default:
			doc.set(key, FieldValue{Kind: KindScalar, Scalar: unquote(value)})
			i++
		}
	}

	return doc, defects
}

// keyOrder re-derives the order of top-level key occurrences straight from
// the raw lines, independent of the parsed Document. Array item lines are
// skipped; every key-shaped line counts, including unknown keys, so that
// injected preamble text still breaks the order check. Lines that are
// neither keys nor array items nor comments are reported as defects.
func keyOrder(raw string) ([]string, []string) {
	var order []string
	var defects []string

	for _, ln := range contentLines(raw) {
		if strings.HasPrefix(strings.TrimLeftFunc(ln, unicode.IsSpace), "- ") {
			continue
		}
		if strings.HasPrefix(ln, " ") || !strings.Contains(ln, ":") {
			if !strings.HasPrefix(strings.TrimSpace(ln), "#") {
				defects = append(defects, fmt.Sprintf("Unexpected non-key line: '%s'", ln))
			}
			continue
		}
		rawKey, _, _ := strings.Cut(ln, ":")
		order = append(order, strings.TrimSpace(rawKey))
	}

	return order, defects
}

// contentLines splits raw text into lines with line endings removed and
// blank lines discarded.
func contentLines(raw string) []string {
	var out []string
	for _, ln := range strings.Split(raw, "\n") {
		ln = strings.TrimRight(ln, "\r")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		out = append(out, ln)
	}
	return out
}

// unquote strips exactly one matching pair of surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
