package contract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	descriptionMinLen = 10
	descriptionMaxLen = 500
)

// Terms naming the generation technology or process. A description that
// mentions how it was produced leaks implementation detail into the
// catalog and is rejected.
var forbiddenConceptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bLLM\b`),
	regexp.MustCompile(`(?i)\bprompt\b`),
	regexp.MustCompile(`(?i)\bpipeline\b`),
	regexp.MustCompile(`(?i)\bsystem\b`),
	regexp.MustCompile(`(?i)\bmodel\b`),
	regexp.MustCompile(`(?i)\bAI\b`),
	regexp.MustCompile(`(?i)\bChatGPT\b`),
	regexp.MustCompile(`(?i)\bOpenAI\b`),
	regexp.MustCompile(`(?i)\bAzure\s+OpenAI\b`),
	regexp.MustCompile(`(?i)\bAnthropic\b`),
	regexp.MustCompile(`(?i)\bClaude\b`),
	regexp.MustCompile(`(?i)\bGPT\b`),
	regexp.MustCompile(`(?i)\borchestrator\b`),
}

// Trivial phrasings that say nothing about the asset.
var genericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*This asset contains data\.?\s*$`),
	regexp.MustCompile(`(?i)^\s*Contains data\.?\s*$`),
	regexp.MustCompile(`(?i)^\s*A report\.?\s*$`),
	regexp.MustCompile(`(?i)^\s*Report about something\.?\s*$`),
	regexp.MustCompile(`(?i)^\s*Dataset\s*(with)?\s*information\.?\s*$`),
}

// Hedging phrasing that implies inference instead of grounded fact.
var speculativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bbased\s+on\s+my\s+knowledge\b`),
	regexp.MustCompile(`(?i)\bin\s+general\b`),
	regexp.MustCompile(`(?i)\btypically\b`),
	regexp.MustCompile(`(?i)\blikely\b`),
	regexp.MustCompile(`(?i)\bprobably\b`),
	regexp.MustCompile(`(?i)\bappears\s+to\b`),
	regexp.MustCompile(`(?i)\bmay\b`),
	regexp.MustCompile(`(?i)\bcould\b`),
}

// Source identifiers that cannot be attributed or retrieved.
var forbiddenSourcePattern = regexp.MustCompile(`(?i)general knowledge|training data|internet|wikipedia`)

var allowedConfidence = map[string]bool{
	"low":    true,
	"medium": true,
	"high":   true,
}

// ValidateSemantic checks the content of an already structurally valid
// Document. It trusts the field shapes and only judges what the fields
// say: description quality, the confidence label, and source provenance.
// All rules run; the result carries every violation found.
func ValidateSemantic(doc *Document) Result {
	var errs []string

	desc, hasDesc := scalarValue(doc, FieldDescription)
	if !hasDesc || strings.TrimSpace(desc) == "" {
		errs = append(errs, "suggested_description must be a non-empty string")
	} else {
		if utf8.RuneCountInString(desc) < descriptionMinLen {
			errs = append(errs, "suggested_description is too short (min 10 chars)")
		}
		if utf8.RuneCountInString(desc) > descriptionMaxLen {
			errs = append(errs, "suggested_description is too long (max 500 chars)")
		}
		// One error per category, not one per pattern.
		for _, pat := range genericPatterns {
			if pat.MatchString(desc) {
				errs = append(errs, "suggested_description is trivially generic")
				break
			}
		}
		for _, pat := range forbiddenConceptPatterns {
			if pat.MatchString(desc) {
				errs = append(errs, "suggested_description references forbidden concepts (LLM/prompt/system)")
				break
			}
		}
		for _, pat := range speculativePatterns {
			if pat.MatchString(desc) {
				errs = append(errs, "suggested_description uses speculative or disallowed phrasing (forbidden concepts)")
				break
			}
		}
	}

	conf, hasConf := scalarValue(doc, FieldConfidence)
	if !hasConf || !allowedConfidence[conf] {
		errs = append(errs, "confidence must be one of: low, medium, high")
	}

	srcs, ok := doc.Get(FieldSources)
	if !ok || srcs.Kind != KindItems {
		errs = append(errs, "used_sources must be a non-empty array")
	} else {
		for idx, s := range srcs.Items {
			if strings.TrimSpace(s) == "" {
				errs = append(errs, fmt.Sprintf("used_sources[%d] must be a non-empty string", idx))
				continue
			}
			if forbiddenSourcePattern.MatchString(s) {
				errs = append(errs, fmt.Sprintf("used_sources[%d] references forbidden source identifiers", idx))
			}
		}
	}

	if len(errs) > 0 {
		return InvalidSemantic(errs)
	}
	return Valid()
}

func scalarValue(doc *Document, name string) (string, bool) {
	v, ok := doc.Get(name)
	if !ok || v.Kind != KindScalar {
		return "", false
	}
	return v.Scalar, true
}
