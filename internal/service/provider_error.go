package service

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

type ProviderErrorKind string

const (
	ProviderInvalidCredential    ProviderErrorKind = "invalid_credential"
	ProviderUpstream             ProviderErrorKind = "upstream"
	ProviderInvalidConfiguration ProviderErrorKind = "invalid_configuration"
)

// ProviderError is returned by every Provider on failure.
type ProviderError struct {
	Kind       ProviderErrorKind
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case ProviderInvalidCredential:
		return fmt.Sprintf("invalid API key for %s provider: %v", e.Provider, e.Err)
	case ProviderInvalidConfiguration:
		return fmt.Sprintf("LLM provider %q is not configured: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderError reports whether err carries a ProviderError of kind.
func IsProviderError(err error, kind ProviderErrorKind) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == kind
}

var credentialPattern = regexp.MustCompile(`(?i)api[ _]?key|unauthorized|authentication|permission denied|invalid key`)

// classifyError maps a backend failure to a ProviderError. status is the HTTP
// status when known, 0 otherwise.
func classifyError(provider string, status int, err error) *ProviderError {
	kind := ProviderUpstream
	if status == http.StatusUnauthorized || status == http.StatusForbidden ||
		(err != nil && credentialPattern.MatchString(err.Error())) {
		kind = ProviderInvalidCredential
	}
	return &ProviderError{Kind: kind, Provider: provider, StatusCode: status, Err: err}
}
