package contract

// Field names recognized by the output contract, in the order they must
// appear. Everything else is rejected.
const (
	FieldDescription = "suggested_description"
	FieldConfidence  = "confidence"
	FieldSources     = "used_sources"
	FieldWarnings    = "warnings"
)

var (
	requiredFields = []string{FieldDescription, FieldConfidence, FieldSources}
	optionalFields = []string{FieldWarnings}
	expectedOrder  = []string{FieldDescription, FieldConfidence, FieldSources, FieldWarnings}
)

func isKnownField(name string) bool {
	for _, f := range requiredFields {
		if f == name {
			return true
		}
	}
	for _, f := range optionalFields {
		if f == name {
			return true
		}
	}
	return false
}

// Kind discriminates the shape of a parsed field value.
type Kind int

const (
	// KindScalar is a plain string value.
	KindScalar Kind = iota
	// KindEmptyList is the explicit empty array form `field: []`.
	KindEmptyList
	// KindItems is an array block with at least one collected item.
	KindItems
	// KindMalformed marks an array block that collected zero items. It is
	// deliberately distinct from KindEmptyList: a bare `field:` with no
	// items is a broken value, not an empty one.
	KindMalformed
)

// FieldValue is the tagged value of a single parsed field.
type FieldValue struct {
	Kind   Kind
	Scalar string
	Items  []string
}

// IsList reports whether the value has an array shape.
func (v FieldValue) IsList() bool {
	return v.Kind == KindEmptyList || v.Kind == KindItems
}

// Document is an insertion-ordered field map built by Parse. A duplicate
// key keeps its first position; the last-seen value wins.
type Document struct {
	names  []string
	values map[string]FieldValue
}

func newDocument() *Document {
	return &Document{values: make(map[string]FieldValue)}
}

func (d *Document) set(name string, v FieldValue) {
	if _, ok := d.values[name]; !ok {
		d.names = append(d.names, name)
	}
	d.values[name] = v
}

// Get returns the value of a field and whether it is present.
func (d *Document) Get(name string) (FieldValue, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Has reports whether a field is present.
func (d *Document) Has(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Names returns the field names in first-encountered order.
func (d *Document) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Len returns the number of distinct fields.
func (d *Document) Len() int {
	return len(d.names)
}
