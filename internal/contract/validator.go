package contract

// Validate runs the two-layer gate over raw text and returns the
// structural and semantic results. Semantic rules only run when the
// structural stage passed; otherwise the semantic result is an untouched
// Valid placeholder, since field shapes are not guaranteed.
func Validate(raw string) (Result, Result) {
	structural := ValidateStructural(raw)
	if !structural.IsValid {
		return structural, Valid()
	}

	// Structural validation already parsed this text cleanly; a defect on
	// re-parse would mean the two stages disagree.
	doc, defects := Parse(raw)
	if len(defects) > 0 {
		return InvalidStructural(defects), Valid()
	}

	return structural, ValidateSemantic(doc)
}
