package contract

// Result is the outcome of one validation stage. It is constructed once
// and never mutated; every applicable error is carried, not just the first.
type Result struct {
	IsValid          bool     `json:"is_valid"`
	StructuralErrors []string `json:"structural_errors"`
	SemanticErrors   []string `json:"semantic_errors"`
}

// Valid returns a passing result with no errors.
func Valid() Result {
	return Result{IsValid: true}
}

// InvalidStructural returns a failing result carrying structural errors.
func InvalidStructural(errs []string) Result {
	return Result{IsValid: false, StructuralErrors: append([]string(nil), errs...)}
}

// InvalidSemantic returns a failing result carrying semantic errors.
func InvalidSemantic(errs []string) Result {
	return Result{IsValid: false, SemanticErrors: append([]string(nil), errs...)}
}
