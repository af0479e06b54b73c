package domain

import (
	"errors"
	"fmt"
	"strings"
)

// FailureKind tags why a generation call did not produce usable content.
type FailureKind string

const (
	FailureNone     FailureKind = ""
	FailureQuota    FailureKind = "quota"
	FailureParse    FailureKind = "parse"
	FailureEmpty    FailureKind = "empty"
	FailureProvider FailureKind = "provider"
	FailureUnknown  FailureKind = "unknown"
)

// StatusResourceExhausted is the status string providers use for quota exhaustion.
const StatusResourceExhausted = "RESOURCE_EXHAUSTED"

// QuotaExceededError means the AI provider refused the call because the
// caller ran out of quota or hit a rate limit.
type QuotaExceededError struct {
	Provider string
	Msg      string
	Err      error
}

func (e QuotaExceededError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "quota exceeded"
	}
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s", e.Provider, msg)
	}
	return msg
}

func (e QuotaExceededError) Unwrap() error { return e.Err }

// ParseError is returned when a provider response is not valid structured data.
type ParseError struct {
	Target string
	Raw    string
	Err    error
}

func (e ParseError) Error() string {
	target := e.Target
	if target == "" {
		target = "response"
	}
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %v", target, e.Err)
	}
	return fmt.Sprintf("parse %s", target)
}

func (e ParseError) Unwrap() error { return e.Err }

// EmptyResponseError is returned when the provider answered without content.
type EmptyResponseError struct {
	What string
}

func (e EmptyResponseError) Error() string {
	if e.What == "" {
		return "empty response"
	}
	return fmt.Sprintf("empty %s response", e.What)
}

// ProviderError wraps any other provider failure (auth, network, 5xx).
type ProviderError struct {
	StatusCode int
	Status     string
	Code       string
	Msg        string
	Err        error
}

func (e ProviderError) Error() string {
	parts := []string{}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if e.Status != "" {
		parts = append(parts, "status_text="+e.Status)
	}
	if e.Code != "" {
		parts = append(parts, "code="+e.Code)
	}
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "provider error"
	}
	if len(parts) == 0 {
		return msg
	}
	return msg + " (" + strings.Join(parts, " ") + ")"
}

func (e ProviderError) Unwrap() error { return e.Err }

// IsQuotaExceeded reports whether err represents provider quota exhaustion.
// Typed errors decide first; untyped errors fall back to the status/message
// heuristics providers are known to produce.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}

	var quota QuotaExceededError
	if errors.As(err, &quota) {
		return true
	}

	var pe ProviderError
	if errors.As(err, &pe) {
		if pe.StatusCode == 429 || pe.Code == "429" || strings.EqualFold(pe.Status, StatusResourceExhausted) {
			return true
		}
	}

	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) && coded.StatusCode() == 429 {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "exhausted")
}

// ClassifyGeneration maps a generation failure to its FailureKind.
func ClassifyGeneration(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	if IsQuotaExceeded(err) {
		return FailureQuota
	}

	var parseErr ParseError
	var emptyErr EmptyResponseError
	var providerErr ProviderError
	switch {
	case errors.As(err, &parseErr):
		return FailureParse
	case errors.As(err, &emptyErr):
		return FailureEmpty
	case errors.As(err, &providerErr):
		return FailureProvider
	default:
		return FailureUnknown
	}
}
