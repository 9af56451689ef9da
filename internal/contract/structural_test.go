package contract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"descgate/internal/contract"
)

const validText = "suggested_description: \"Annual sustainability report for 2024 detailing carbon emissions reductions.\"\n" +
	"confidence: high\n" +
	"used_sources:\n" +
	"- Document: sustainability-2024.pdf, Page 1\n" +
	"- Document: sustainability-2024.pdf, Page 5\n" +
	"warnings: []\n"

func TestValidateStructural_ValidDocument(t *testing.T) {
	res := contract.ValidateStructural(validText)
	assert.True(t, res.IsValid, strings.Join(res.StructuralErrors, "; "))
	assert.Empty(t, res.StructuralErrors)
	assert.Empty(t, res.SemanticErrors)
}

func TestValidateStructural_IndentedArrayItems(t *testing.T) {
	text := "suggested_description: \"Customer satisfaction dashboard with monthly trends.\"\n" +
		"confidence: medium\n" +
		"used_sources:\n" +
		"  - cx-dashboard.md, Section Overview\n" +
		"  - cx-dashboard.md, Appendix A\n"
	res := contract.ValidateStructural(text)
	assert.True(t, res.IsValid, strings.Join(res.StructuralErrors, "; "))
}

func TestValidateStructural_OptionalWarningsMayBeAbsent(t *testing.T) {
	text := "suggested_description: \"Customer churn analysis for Q3 with retention breakdown.\"\n" +
		"confidence: low\n" +
		"used_sources:\n" +
		"- churn-q3.xlsx, Sheet Summary\n"
	res := contract.ValidateStructural(text)
	assert.True(t, res.IsValid, strings.Join(res.StructuralErrors, "; "))
}

func TestValidateStructural_UnknownField(t *testing.T) {
	res := contract.ValidateStructural(validText + "extra_field: nope\n")
	assert.False(t, res.IsValid)
	assert.Contains(t, res.StructuralErrors, "Unknown field 'extra_field' not permitted by contract")
}

func TestValidateStructural_MissingRequiredFields(t *testing.T) {
	res := contract.ValidateStructural("warnings: []\n")
	assert.False(t, res.IsValid)
	assert.Contains(t, res.StructuralErrors, "Missing required field 'suggested_description'")
	assert.Contains(t, res.StructuralErrors, "Missing required field 'confidence'")
	assert.Contains(t, res.StructuralErrors, "Missing required field 'used_sources'")
}

func TestValidateStructural_DescriptionMustBeString(t *testing.T) {
	text := "suggested_description:\n" +
		"- not a string\n" +
		"confidence: high\n" +
		"used_sources:\n" +
		"- doc.pdf\n"
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.StructuralErrors, "Field 'suggested_description' must be a string")
}

func TestValidateStructural_UsedSourcesScalarRejected(t *testing.T) {
	text := "suggested_description: \"A complete description of the dataset.\"\n" +
		"confidence: high\n" +
		"used_sources: doc.pdf\n"
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.StructuralErrors, "Field 'used_sources' must be a non-empty array")
}

func TestValidateStructural_UsedSourcesEmptyArrayRejected(t *testing.T) {
	text := "suggested_description: \"A complete description of the dataset.\"\n" +
		"confidence: high\n" +
		"used_sources: []\n"
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.StructuralErrors, "Field 'used_sources' must contain at least one item")
}

func TestValidateStructural_MalformedArrayBlockRejected(t *testing.T) {
	text := "suggested_description: \"A complete description of the dataset.\"\n" +
		"confidence: high\n" +
		"used_sources:\n" +
		"warnings: []\n"
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.StructuralErrors, "Field 'used_sources' must be a non-empty array")
}

func TestValidateStructural_WarningsMustBeArray(t *testing.T) {
	text := "suggested_description: \"A complete description of the dataset.\"\n" +
		"confidence: high\n" +
		"used_sources:\n" +
		"- doc.pdf\n" +
		"warnings: just text\n"
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.StructuralErrors, "Field 'warnings' must be an array when present")
}

func TestValidateStructural_OrderViolation(t *testing.T) {
	// confidence before suggested_description, everything else intact.
	text := "confidence: high\n" +
		"suggested_description: \"Annual report detailing emissions and reductions.\"\n" +
		"used_sources:\n" +
		"- report.pdf, Page 1\n"
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)

	orderErrs := 0
	for _, e := range res.StructuralErrors {
		if e == "Field order must be: suggested_description, confidence, used_sources, warnings" {
			orderErrs++
		}
	}
	assert.Equal(t, 1, orderErrs, "exactly one order violation expected")
}

func TestValidateStructural_PreambleTextRejected(t *testing.T) {
	text := "This is my answer:\n" +
		"suggested_description: \"Quarterly revenue summary for 2025.\"\n" +
		"confidence: medium\n" +
		"used_sources:\n" +
		"- q1-2025-report.pdf, Page 2\n"
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)

	found := false
	for _, e := range res.StructuralErrors {
		if strings.Contains(e, "Unknown field") || strings.Contains(e, "Unexpected") ||
			strings.Contains(e, "Field order") {
			found = true
		}
	}
	assert.True(t, found, "preamble must surface as unknown field, unexpected line, or order violation")
}

func TestValidateStructural_DuplicateKeyDefectSurfaces(t *testing.T) {
	text := validText + "confidence: low\n"
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)

	found := false
	for _, e := range res.StructuralErrors {
		if strings.Contains(e, "Duplicate key 'confidence'") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateStructural_CommentOverlapNotDeduplicated(t *testing.T) {
	// A column-0 comment without a colon trips both the comment defect and
	// the unexpected-line checks. The overlap is intentional.
	text := "# stray comment\n" + validText
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.StructuralErrors, "Comments are not allowed in YAML output")

	unexpected := false
	for _, e := range res.StructuralErrors {
		if strings.Contains(e, "Unexpected line format: '# stray comment'") {
			unexpected = true
		}
	}
	assert.True(t, unexpected)
}

func TestValidateStructural_AllErrorsAccumulate(t *testing.T) {
	text := "extra_field: x\n" +
		"used_sources: []\n"
	res := contract.ValidateStructural(text)
	assert.False(t, res.IsValid)
	// Unknown field, three missing required (used_sources present), empty
	// array, and order violation all surface in one pass.
	assert.Contains(t, res.StructuralErrors, "Unknown field 'extra_field' not permitted by contract")
	assert.Contains(t, res.StructuralErrors, "Missing required field 'suggested_description'")
	assert.Contains(t, res.StructuralErrors, "Missing required field 'confidence'")
	assert.Contains(t, res.StructuralErrors, "Field 'used_sources' must contain at least one item")
	assert.Contains(t, res.StructuralErrors, "Field order must be: suggested_description, confidence, used_sources, warnings")
}
