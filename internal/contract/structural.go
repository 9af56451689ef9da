package contract

import (
	"fmt"
	"strings"
)

// ValidateStructural checks the raw text against the output contract's
// shape: parseable subset, known fields only, all required fields present,
// correct per-field types, and correct field order. All checks run; the
// result carries every violation found.
func ValidateStructural(raw string) Result {
	doc, defects := Parse(raw)

	var errs []string
	errs = append(errs, defects...)

	for _, name := range doc.Names() {
		if !isKnownField(name) {
			errs = append(errs, fmt.Sprintf("Unknown field '%s' not permitted by contract", name))
		}
	}

	for _, name := range requiredFields {
		if !doc.Has(name) {
			errs = append(errs, fmt.Sprintf("Missing required field '%s'", name))
		}
	}

	if v, ok := doc.Get(FieldDescription); ok && v.Kind != KindScalar {
		errs = append(errs, "Field 'suggested_description' must be a string")
	}
	if v, ok := doc.Get(FieldConfidence); ok && v.Kind != KindScalar {
		errs = append(errs, "Field 'confidence' must be a string")
	}

	if v, ok := doc.Get(FieldSources); ok {
		if !v.IsList() {
			errs = append(errs, "Field 'used_sources' must be a non-empty array")
		} else {
			if v.Kind == KindEmptyList {
				errs = append(errs, "Field 'used_sources' must contain at least one item")
			}
			for idx, item := range v.Items {
				if strings.TrimSpace(item) == "" {
					errs = append(errs, fmt.Sprintf("used_sources[%d] must be a non-empty string", idx))
				}
			}
		}
	}

	if v, ok := doc.Get(FieldWarnings); ok && !v.IsList() {
		errs = append(errs, "Field 'warnings' must be an array when present")
	}

	// Order check works off the raw key occurrence order, not the cleaned
	// Document, so stray preamble keys break it too.
	seenOrder, orderDefects := keyOrder(raw)
	errs = append(errs, orderDefects...)

	var expected []string
	for _, name := range expectedOrder {
		if doc.Has(name) {
			expected = append(expected, name)
		}
	}
	if !equalStrings(seenOrder, expected) {
		errs = append(errs, "Field order must be: suggested_description, confidence, used_sources, warnings")
	}

	if len(errs) > 0 {
		return InvalidStructural(errs)
	}
	return Valid()
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
