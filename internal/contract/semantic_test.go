package contract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"descgate/internal/contract"
)

// parse is a helper producing a Document for semantic tests; the inputs
// here are all structurally clean.
func parse(t *testing.T, text string) *contract.Document {
	t.Helper()
	doc, defects := contract.Parse(text)
	assert.Empty(t, defects)
	return doc
}

func goodDoc(t *testing.T) *contract.Document {
	return parse(t, "suggested_description: \"Annual sustainability report for 2024 detailing carbon emissions reductions.\"\n"+
		"confidence: high\n"+
		"used_sources:\n"+
		"- Document: sustainability-2024.pdf, Page 1\n")
}

func TestValidateSemantic_ValidContent(t *testing.T) {
	res := contract.ValidateSemantic(goodDoc(t))
	assert.True(t, res.IsValid, strings.Join(res.SemanticErrors, "; "))
}

func TestValidateSemantic_DescriptionTooShort(t *testing.T) {
	doc := parse(t, "suggested_description: short\nconfidence: high\nused_sources:\n- a.pdf\n")
	res := contract.ValidateSemantic(doc)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.SemanticErrors, "suggested_description is too short (min 10 chars)")
}

func TestValidateSemantic_DescriptionTooLong(t *testing.T) {
	long := strings.Repeat("a", 501)
	doc := parse(t, "suggested_description: "+long+"\nconfidence: high\nused_sources:\n- a.pdf\n")
	res := contract.ValidateSemantic(doc)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.SemanticErrors, "suggested_description is too long (max 500 chars)")
}

func TestValidateSemantic_GenericDescription(t *testing.T) {
	for _, desc := range []string{
		"This asset contains data",
		"This asset contains data.",
		"this asset contains data",
		"A report.",
		"Dataset with information",
	} {
		doc := parse(t, "suggested_description: \""+desc+"\"\nconfidence: high\nused_sources:\n- a.pdf\n")
		res := contract.ValidateSemantic(doc)
		assert.False(t, res.IsValid, desc)
		assert.Contains(t, res.SemanticErrors, "suggested_description is trivially generic", desc)
	}
}

func TestValidateSemantic_GenericReportsOnlyOnce(t *testing.T) {
	doc := parse(t, "suggested_description: \"This asset contains data\"\nconfidence: high\nused_sources:\n- a.pdf\n")
	res := contract.ValidateSemantic(doc)

	count := 0
	for _, e := range res.SemanticErrors {
		if e == "suggested_description is trivially generic" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestValidateSemantic_ForbiddenConcepts(t *testing.T) {
	for _, desc := range []string{
		"Summary generated by an LLM for the finance team",
		"Report produced from a prompt over quarterly data",
		"ChatGPT description of the revenue dataset here",
		"Revenue model outputs for the planning group",
	} {
		doc := parse(t, "suggested_description: \""+desc+"\"\nconfidence: high\nused_sources:\n- a.pdf\n")
		res := contract.ValidateSemantic(doc)
		assert.False(t, res.IsValid, desc)
		assert.Contains(t, res.SemanticErrors,
			"suggested_description references forbidden concepts (LLM/prompt/system)", desc)
	}
}

func TestValidateSemantic_SpeculativeLanguage(t *testing.T) {
	for _, desc := range []string{
		"This dataset likely holds customer records from 2023",
		"Based on my knowledge, a finance report for Q1",
		"The table appears to track shipment events",
		"Figures may include provisional estimates",
	} {
		doc := parse(t, "suggested_description: \""+desc+"\"\nconfidence: high\nused_sources:\n- a.pdf\n")
		res := contract.ValidateSemantic(doc)
		assert.False(t, res.IsValid, desc)
		assert.Contains(t, res.SemanticErrors,
			"suggested_description uses speculative or disallowed phrasing (forbidden concepts)", desc)
	}
}

func TestValidateSemantic_ConfidenceClosedSet(t *testing.T) {
	for _, conf := range []string{"very_high", "High", "LOW", "certain", ""} {
		text := "suggested_description: \"Annual emissions report with reduction targets.\"\n" +
			"confidence: \"" + conf + "\"\n" +
			"used_sources:\n- a.pdf\n"
		doc, _ := contract.Parse(text)
		res := contract.ValidateSemantic(doc)
		assert.False(t, res.IsValid, conf)
		assert.Contains(t, res.SemanticErrors, "confidence must be one of: low, medium, high", conf)
	}

	for _, conf := range []string{"low", "medium", "high"} {
		doc := parse(t, "suggested_description: \"Annual emissions report with reduction targets.\"\n"+
			"confidence: "+conf+"\n"+
			"used_sources:\n- a.pdf\n")
		res := contract.ValidateSemantic(doc)
		assert.True(t, res.IsValid, conf)
	}
}

func TestValidateSemantic_ForbiddenSources(t *testing.T) {
	doc := parse(t, "suggested_description: \"Annual emissions report with reduction targets.\"\n"+
		"confidence: high\n"+
		"used_sources:\n"+
		"- general knowledge\n"+
		"- training data\n"+
		"- report.pdf, Page 3\n")
	res := contract.ValidateSemantic(doc)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.SemanticErrors, "used_sources[0] references forbidden source identifiers")
	assert.Contains(t, res.SemanticErrors, "used_sources[1] references forbidden source identifiers")
	for _, e := range res.SemanticErrors {
		assert.NotContains(t, e, "used_sources[2]")
	}
}

func TestValidateSemantic_MultipleIndependentFailures(t *testing.T) {
	doc := parse(t, "suggested_description: \"Based on my knowledge, this is a summary\"\n"+
		"confidence: very_high\n"+
		"used_sources:\n"+
		"- general knowledge\n")
	res := contract.ValidateSemantic(doc)
	assert.False(t, res.IsValid)

	joined := strings.Join(res.SemanticErrors, "\n")
	assert.Contains(t, joined, "speculative or disallowed phrasing")
	assert.Contains(t, joined, "confidence must be one of")
	assert.Contains(t, joined, "forbidden source identifiers")
}
