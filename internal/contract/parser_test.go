package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"descgate/internal/contract"
)

func TestParse_ScalarAndQuoting(t *testing.T) {
	doc, defects := contract.Parse(
		"suggested_description: \"Quarterly revenue summary.\"\n" +
			"confidence: 'high'\n",
	)
	assert.Empty(t, defects)

	desc, ok := doc.Get("suggested_description")
	assert.True(t, ok)
	assert.Equal(t, contract.KindScalar, desc.Kind)
	assert.Equal(t, "Quarterly revenue summary.", desc.Scalar)

	conf, ok := doc.Get("confidence")
	assert.True(t, ok)
	assert.Equal(t, "high", conf.Scalar)
}

func TestParse_UnquotedScalarKept(t *testing.T) {
	doc, defects := contract.Parse("confidence: medium\n")
	assert.Empty(t, defects)
	v, _ := doc.Get("confidence")
	assert.Equal(t, "medium", v.Scalar)
}

func TestParse_MismatchedQuotesNotStripped(t *testing.T) {
	doc, defects := contract.Parse("confidence: \"high'\n")
	assert.Empty(t, defects)
	v, _ := doc.Get("confidence")
	assert.Equal(t, "\"high'", v.Scalar)
}

func TestParse_EmptyArrayForm(t *testing.T) {
	doc, defects := contract.Parse("warnings: []\n")
	assert.Empty(t, defects)
	v, _ := doc.Get("warnings")
	assert.Equal(t, contract.KindEmptyList, v.Kind)
}

func TestParse_ArrayBlock(t *testing.T) {
	doc, defects := contract.Parse(
		"used_sources:\n" +
			"  - report.pdf, Page 1\n" +
			"  - report.pdf, Page 2\n",
	)
	assert.Empty(t, defects)
	v, _ := doc.Get("used_sources")
	assert.Equal(t, contract.KindItems, v.Kind)
	assert.Equal(t, []string{"report.pdf, Page 1", "report.pdf, Page 2"}, v.Items)
}

func TestParse_ArrayBlockUnindentedItems(t *testing.T) {
	doc, defects := contract.Parse(
		"used_sources:\n" +
			"- Document: report.pdf, Page 1\n",
	)
	assert.Empty(t, defects)
	v, _ := doc.Get("used_sources")
	assert.Equal(t, contract.KindItems, v.Kind)
	assert.Equal(t, []string{"Document: report.pdf, Page 1"}, v.Items)
}

func TestParse_ArrayBlockZeroItemsIsMalformed(t *testing.T) {
	doc, defects := contract.Parse(
		"used_sources:\n" +
			"confidence: high\n",
	)
	assert.Empty(t, defects)

	v, ok := doc.Get("used_sources")
	assert.True(t, ok)
	assert.Equal(t, contract.KindMalformed, v.Kind)
	// Malformed is not the same thing as the explicit empty form.
	assert.NotEqual(t, contract.KindEmptyList, v.Kind)

	// The line that ended the block is still parsed as a top-level key.
	conf, ok := doc.Get("confidence")
	assert.True(t, ok)
	assert.Equal(t, "high", conf.Scalar)
}

func TestParse_InvalidArrayItemSkippedButBlockContinues(t *testing.T) {
	doc, defects := contract.Parse(
		"used_sources:\n" +
			"  -missing-space\n" +
			"  - good item\n",
	)
	assert.Len(t, defects, 1)
	assert.Contains(t, defects[0], "Invalid array item format")

	v, _ := doc.Get("used_sources")
	assert.Equal(t, []string{"good item"}, v.Items)
}

func TestParse_CommentIsDefect(t *testing.T) {
	_, defects := contract.Parse(
		"# a comment\n" +
			"confidence: high\n",
	)
	assert.Contains(t, defects, "Comments are not allowed in YAML output")
}

func TestParse_DuplicateKeyLastValueWins(t *testing.T) {
	doc, defects := contract.Parse(
		"confidence: low\n" +
			"confidence: high\n",
	)
	assert.Len(t, defects, 1)
	assert.Contains(t, defects[0], "Duplicate key 'confidence'")

	v, _ := doc.Get("confidence")
	assert.Equal(t, "high", v.Scalar)
	assert.Equal(t, 1, doc.Len())
}

func TestParse_UnexpectedLineFormat(t *testing.T) {
	_, defects := contract.Parse("no separator here\n")
	assert.Len(t, defects, 1)
	assert.Contains(t, defects[0], "Unexpected line format")
}

func TestParse_BlankLinesDiscarded(t *testing.T) {
	doc, defects := contract.Parse(
		"\nconfidence: high\n\n\nwarnings: []\n\n",
	)
	assert.Empty(t, defects)
	assert.Equal(t, []string{"confidence", "warnings"}, doc.Names())
}

func TestParse_EmptyInput(t *testing.T) {
	doc, defects := contract.Parse("")
	assert.Empty(t, defects)
	assert.Equal(t, 0, doc.Len())
}

func TestParse_InsertionOrderPreserved(t *testing.T) {
	doc, _ := contract.Parse(
		"confidence: high\n" +
			"suggested_description: \"A detailed description here.\"\n",
	)
	assert.Equal(t, []string{"confidence", "suggested_description"}, doc.Names())
}
