package contract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"descgate/internal/contract"
)

func TestValidate_ValidEndToEnd(t *testing.T) {
	text := "suggested_description: \"Annual report detailing emissions.\"\n" +
		"confidence: high\n" +
		"used_sources:\n" +
		"- Document: report.pdf, Page 1\n"
	structural, semantic := contract.Validate(text)
	assert.True(t, structural.IsValid, strings.Join(structural.StructuralErrors, "; "))
	assert.True(t, semantic.IsValid, strings.Join(semantic.SemanticErrors, "; "))
}

func TestValidate_StructuralFailureSkipsSemantic(t *testing.T) {
	text := "suggested_description: \"Annual report detailing emissions.\"\n" +
		"confidence: high\n" +
		"used_sources:\n" +
		"- Document: report.pdf, Page 1\n" +
		"extra_field: nope\n"
	structural, semantic := contract.Validate(text)
	assert.False(t, structural.IsValid)
	assert.Contains(t, structural.StructuralErrors, "Unknown field 'extra_field' not permitted by contract")

	// The semantic stage never ran; its result is the untouched placeholder.
	assert.True(t, semantic.IsValid)
	assert.Empty(t, semantic.SemanticErrors)
}

func TestValidate_SemanticFailureAfterStructuralPass(t *testing.T) {
	text := "suggested_description: \"This asset contains data\"\n" +
		"confidence: high\n" +
		"used_sources:\n" +
		"- Document: generic.txt, Line 1\n"
	structural, semantic := contract.Validate(text)
	assert.True(t, structural.IsValid)
	assert.False(t, semantic.IsValid)
	assert.Contains(t, semantic.SemanticErrors, "suggested_description is trivially generic")
}

func TestValidate_ResultsIndependentAcrossCalls(t *testing.T) {
	bad := "confidence: high\n"
	good := "suggested_description: \"Annual report detailing emissions.\"\n" +
		"confidence: high\n" +
		"used_sources:\n" +
		"- report.pdf, Page 1\n"

	s1, _ := contract.Validate(bad)
	s2, m2 := contract.Validate(good)
	assert.False(t, s1.IsValid)
	assert.True(t, s2.IsValid)
	assert.True(t, m2.IsValid)

	// The earlier failing call left no residue in the later result.
	assert.Empty(t, s2.StructuralErrors)
}
