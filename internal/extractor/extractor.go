// Package extractor pulls the structured JSON payload out of a free-text
// model reply and checks it for the fields each analysis kind requires.
package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind identifies which analysis produced a reply.
type Kind string

const (
	KindAnalyzer Kind = "analyzer"
	KindMatcher  Kind = "matcher"
)

// RequiredField is the discriminator key a reply of this kind must carry.
func (k Kind) RequiredField() string {
	switch k {
	case KindAnalyzer:
		return "overallScore"
	case KindMatcher:
		return "matchPercentage"
	default:
		return ""
	}
}

const errorField = "error"

var (
	ErrNoJSONFound          = errors.New("no JSON object found in model response")
	ErrMalformedJSON        = errors.New("malformed JSON in model response")
	ErrMissingRequiredField = errors.New("model response is missing a required field")
	ErrUpstreamReported     = errors.New("model reported an error")
)

// Error is returned by Extract. Kind is one of the Err* sentinels above, so
// callers can use errors.Is on the returned value.
type Error struct {
	Kind    error
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Kind, ErrUpstreamReported) && e.Message != "":
		return e.Message
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() error { return e.Kind }

// Result is the validated payload. Fields keeps every key the model returned.
type Result struct {
	Kind   Kind
	Raw    string
	Fields map[string]any
}

// Number reads a numeric top-level field.
func (r *Result) Number(key string) (float64, bool) {
	v := gjson.Get(r.Raw, gjson.Escape(key))
	if v.Type != gjson.Number {
		return 0, false
	}
	return v.Float(), true
}

// Decode unmarshals the payload into target, typically one of the dto result views.
func (r *Result) Decode(target any) error {
	if err := json.Unmarshal([]byte(r.Raw), target); err != nil {
		return fmt.Errorf("decode %s result: %w", r.Kind, err)
	}
	return nil
}

// Extract locates the JSON object in raw and validates it for kind.
func Extract(raw string, kind Kind) (*Result, error) {
	span, ok := findJSONSpan(raw)
	if !ok {
		return nil, &Error{Kind: ErrNoJSONFound}
	}

	if !gjson.Valid(span) {
		return nil, &Error{Kind: ErrMalformedJSON, Err: errors.New("invalid JSON syntax")}
	}

	fields := map[string]any{}
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return nil, &Error{Kind: ErrMalformedJSON, Err: err}
	}

	if v, ok := fields[errorField]; ok {
		return nil, &Error{Kind: ErrUpstreamReported, Message: upstreamMessage(v, span)}
	}

	if field := kind.RequiredField(); field != "" {
		if _, ok := fields[field]; !ok {
			return nil, &Error{Kind: ErrMissingRequiredField, Field: field}
		}
	}

	return &Result{Kind: kind, Raw: span, Fields: fields}, nil
}

// findJSONSpan returns the text between the first '{' and the last '}'.
// Braces inside surrounding prose can mislead it; a balanced scanner can
// replace it without touching Extract.
func findJSONSpan(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < 0 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

func upstreamMessage(v any, span string) string {
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) != "" {
			return s
		}
		return "the model could not process the document"
	}
	return gjson.Get(span, errorField).Raw
}
