// Package changedetect decides whether an asset's metadata has materially
// changed since it was last processed. It canonicalizes an asset record,
// hashes the canonical form, and compares the hash against prior state.
package changedetect

import (
	"fmt"
	"sort"
	"strings"
)

// Material fields participate in change detection; everything else is
// dropped before hashing.
var materialFields = map[string]bool{
	"id":              true,
	"sourceSystem":    true,
	"entityType":      true,
	"entityName":      true,
	"entityPath":      true,
	"description":     true,
	"businessMeaning": true,
	"domain":          true,
	"tags":            true,
	"content":         true,
	"relationships":   true,
	"columns":         true,
	"dataType":        true,
}

// Volatile fields change without a real content change and never affect
// the hash.
var volatileFields = map[string]bool{
	"lastUpdated":   true,
	"schemaVersion": true,
	"auditInfo":     true,
	"scanId":        true,
	"ingestionTime": true,
}

// MaterialFields returns the names of fields included in change detection.
func MaterialFields() []string {
	return sortedKeys(materialFields)
}

// VolatileFields returns the names of fields excluded from change detection.
func VolatileFields() []string {
	return sortedKeys(volatileFields)
}

// IsVolatileField reports whether a field is excluded from change
// detection. Underscore-prefixed fields are reserved and always volatile.
func IsVolatileField(name string) bool {
	return volatileFields[name] || strings.HasPrefix(name, "_")
}

// Normalize reduces an asset record to its canonical material form:
// material fields only, nil values dropped, tags sorted case-insensitively
// with duplicates removed, relationships deduplicated and sorted by id,
// columns deduplicated and sorted by name. A malformed collection shape is
// an error: it means the caller's data is corrupt, not that the asset is
// invalid.
func Normalize(asset map[string]any) (map[string]any, error) {
	normalized := make(map[string]any)

	for field := range materialFields {
		value, ok := asset[field]
		if !ok || value == nil {
			continue
		}

		switch field {
		case "tags":
			tags, err := normalizeTags(value)
			if err != nil {
				return nil, err
			}
			normalized[field] = tags
		case "relationships":
			rels, err := normalizeKeyedList(value, "relationships", "id")
			if err != nil {
				return nil, err
			}
			normalized[field] = rels
		case "columns":
			cols, err := normalizeKeyedList(value, "columns", "name")
			if err != nil {
				return nil, err
			}
			normalized[field] = cols
		default:
			normalized[field] = value
		}
	}

	return normalized, nil
}

func normalizeTags(value any) ([]string, error) {
	items, err := stringList(value, "tags")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(items))
	unique := make([]string, 0, len(items))
	for _, tag := range items {
		if !seen[tag] {
			seen[tag] = true
			unique = append(unique, tag)
		}
	}

	// Case-insensitive order, original case preserved. Ties on the folded
	// form fall back to byte order so the result is fully deterministic.
	sort.Slice(unique, func(i, j int) bool {
		li, lj := strings.ToLower(unique[i]), strings.ToLower(unique[j])
		if li != lj {
			return li < lj
		}
		return unique[i] < unique[j]
	})
	return unique, nil
}

// normalizeKeyedList deduplicates a list of records by an identifying
// sub-field (first occurrence wins) and sorts by it.
func normalizeKeyedList(value any, field, keyField string) ([]map[string]any, error) {
	list, ok := value.([]any)
	if !ok {
		if typed, isTyped := value.([]map[string]any); isTyped {
			list = make([]any, len(typed))
			for i, m := range typed {
				list[i] = m
			}
		} else {
			return nil, fmt.Errorf("%s must be a list, got %T", field, value)
		}
	}

	seen := make(map[string]bool, len(list))
	unique := make([]map[string]any, 0, len(list))
	for i, elem := range list {
		rec, ok := elem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not an object", field, i)
		}
		keyVal, ok := rec[keyField]
		if !ok {
			return nil, fmt.Errorf("%s[%d] lacks required '%s' field", field, i, keyField)
		}
		key := fmt.Sprint(keyVal)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, rec)
		}
	}

	sort.Slice(unique, func(i, j int) bool {
		return fmt.Sprint(unique[i][keyField]) < fmt.Sprint(unique[j][keyField])
	})
	return unique, nil
}

func stringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] is not a string, got %T", field, i, elem)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a list, got %T", field, value)
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
