package prompt

import (
	"regexp"
	"sort"
	"strings"

	_ "embed"
)

// Marker names understood by the analysis endpoints.
const (
	MarkerResumeText     = "RESUME_TEXT"
	MarkerJobDescription = "JOB_DESCRIPTION"
)

const (
	// AnalyzerSystemInstruction frames the model for standalone resume reviews.
	AnalyzerSystemInstruction = "You are an expert resume reviewer and career coach. " +
		"Analyze resumes objectively and respond with valid JSON only, without markdown or commentary."
	// MatcherSystemInstruction frames the model for resume to job comparisons.
	MatcherSystemInstruction = "You are an experienced technical recruiter. " +
		"Compare the candidate's resume with the job description and respond with valid JSON only, without markdown or commentary."
)

// DefaultAnalyzerTemplate is used by Analyze when the request carries no prompt.
//
//go:embed analyzer_default.md
var DefaultAnalyzerTemplate string

var markerExpr = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Marker returns the literal token for name, e.g. {{RESUME_TEXT}}.
func Marker(name string) string {
	return "{{" + name + "}}"
}

// Render replaces every occurrence of each known marker with its value in a
// single pass. Values are inserted literally, so markers inside a value are
// not expanded. Markers without a substitution are left untouched.
func Render(template string, substitutions map[string]string) string {
	if template == "" || len(substitutions) == 0 {
		return template
	}

	names := make([]string, 0, len(substitutions))
	for name := range substitutions {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		pairs = append(pairs, Marker(name), substitutions[name])
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

// Markers lists the distinct marker names found in template, in order of first appearance.
func Markers(template string) []string {
	matches := markerExpr.FindAllStringSubmatch(template, -1)
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// Unconsumed returns the markers present in template that have no substitution.
func Unconsumed(template string, substitutions map[string]string) []string {
	var missing []string
	for _, name := range Markers(template) {
		if _, ok := substitutions[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
